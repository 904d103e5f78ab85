package field

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/wrobotics/field-randomizer/pkg/models"
)

// obstacleTestLayout is a fixed legal obstacle layout: the green mandatory
// card on X2 north, the T1/T2 pair card west, a single T1 green south and a
// single X1 red east. South keeps T3, T4 and X2 free for the parking lot,
// and west leaves Z4 clear for a clockwise start.
func obstacleTestLayout() *Layout {
	return &Layout{
		Challenge:    models.ChallengeObstacle,
		Direction:    models.DirectionClockwise,
		StartSection: SectionWest,
		StartZone:    Z4,
		Cards: map[Section]int{
			SectionNorth: 8,
			SectionWest:  21,
			SectionSouth: 0,
			SectionEast:  3,
		},
		ParkingSection: SectionSouth,
	}
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func pixelAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if got, want := r.template.Bounds(), image.Rect(0, 0, imageSize, imageSize); got != want {
		t.Errorf("template bounds %v, want %v", got, want)
	}

	// Outer wall frame and empty mat.
	if got := pixelAt(r.template, 5, 5); got != colorBlack {
		t.Errorf("outer wall pixel = %v, want black", got)
	}
	if got := pixelAt(r.template, 200, 200); got != colorWhite {
		t.Errorf("mat pixel = %v, want white", got)
	}
	// First arc of the north section.
	if got := pixelAt(r.template, 1200, 410); got != colorBlack {
		t.Errorf("first arc pixel = %v, want black", got)
	}
}

func TestRenderOpen(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	layout := &Layout{
		Challenge:    models.ChallengeOpen,
		Direction:    models.DirectionClockwise,
		StartSection: SectionNorth,
		StartZone:    Z6,
		Walls:        WallSides{North: true},
	}

	data, err := r.Render(layout)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := decodePNG(t, data)

	if got, want := img.Bounds(), image.Rect(0, 0, imageSize, imageSize); got != want {
		t.Fatalf("image bounds %v, want %v", got, want)
	}

	probes := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"start zone Z6", 1260, 210, colorGrey},
		{"moved north wall on the second arc", 1510, 610, colorBlack},
		{"old north wall position cleared", 1510, 1020, colorWhite},
		{"west wall on the central border", 1010, 1200, colorBlack},
		{"west wall reaches the moved north wall", 1010, 700, colorBlack},
		{"direction marker ring", 1860, 1510, colorBlue},
	}

	for _, p := range probes {
		if got := pixelAt(img, p.x, p.y); got != p.want {
			t.Errorf("%s: pixel (%d,%d) = %v, want %v", p.name, p.x, p.y, got, p.want)
		}
	}
}

func TestRenderObstacle(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	data, err := r.Render(obstacleTestLayout())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := decodePNG(t, data)

	green := Green.rgba()
	red := Red.rgba()

	probes := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"green obstacle on X2 north", 1510, 410, green},
		{"red obstacle on T2 west", 620, 2020, red},
		{"green obstacle on T1 south", 1010, 2410, green},
		{"red obstacle on X1 east", 2410, 1510, red},
		{"first parking barrier south", 2000, 2910, colorMagenta},
		{"second parking barrier south", 1680, 2910, colorMagenta},
		{"start zone Z4 west", 510, 1760, colorGrey},
		{"north wall on the central border", 1510, 1010, colorBlack},
	}

	for _, p := range probes {
		if got := pixelAt(img, p.x, p.y); got != p.want {
			t.Errorf("%s: pixel (%d,%d) = %v, want %v", p.name, p.x, p.y, got, p.want)
		}
	}
}

func TestRenderDirectionMarker(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	base := Layout{
		Challenge:    models.ChallengeOpen,
		StartSection: SectionNorth,
		StartZone:    Z5,
	}

	cw := base
	cw.Direction = models.DirectionClockwise
	ccw := base
	ccw.Direction = models.DirectionCounterClockwise

	cwData, err := r.Render(&cw)
	if err != nil {
		t.Fatalf("Render cw: %v", err)
	}
	ccwData, err := r.Render(&ccw)
	if err != nil {
		t.Fatalf("Render ccw: %v", err)
	}

	cwImg := decodePNG(t, cwData)
	ccwImg := decodePNG(t, ccwData)

	// Midpoint of the clockwise arrowhead stroke, off the ring itself.
	if got := pixelAt(cwImg, 1145, 1550); got != colorBlue {
		t.Errorf("cw arrowhead pixel = %v, want blue", got)
	}
	if got := pixelAt(ccwImg, 1145, 1550); got != colorWhite {
		t.Errorf("cw arrowhead position on a ccw field = %v, want white", got)
	}

	// Midpoint of the counter-clockwise arrowhead stroke.
	if got := pixelAt(ccwImg, 1550, 1145); got != colorBlue {
		t.Errorf("ccw arrowhead pixel = %v, want blue", got)
	}
	if got := pixelAt(cwImg, 1550, 1145); got != colorWhite {
		t.Errorf("ccw arrowhead position on a cw field = %v, want white", got)
	}

	// The ring is drawn for both directions.
	for name, img := range map[string]image.Image{"cw": cwImg, "ccw": ccwImg} {
		if got := pixelAt(img, 1860, 1510); got != colorBlue {
			t.Errorf("%s ring pixel = %v, want blue", name, got)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	layout := obstacleTestLayout()
	first, err := r.Render(layout)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := r.Render(layout)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("two renders of the same layout differ")
	}
}

func TestRenderLeavesTemplateUntouched(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	before := make([]byte, len(r.template.Pix))
	copy(before, r.template.Pix)

	if _, err := r.Render(obstacleTestLayout()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !bytes.Equal(before, r.template.Pix) {
		t.Error("Render wrote into the shared template")
	}
}

func TestRenderUnknownChallenge(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	_, err = r.Render(&Layout{Challenge: "slalom"})
	if !errors.Is(err, models.ErrUnsupportedChallengeType) {
		t.Fatalf("error = %v, want ErrUnsupportedChallengeType", err)
	}
}
