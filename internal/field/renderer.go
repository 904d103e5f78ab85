package field

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/fogleman/gg"

	"github.com/wrobotics/field-randomizer/pkg/models"
)

// Mat paint colors.
var (
	colorWhite   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBlack   = color.RGBA{A: 255}
	colorGrey    = color.RGBA{R: 192, G: 192, B: 192, A: 255} // start zone
	colorMagenta = color.RGBA{R: 255, B: 255, A: 255}         // parking barriers
	colorBlue    = color.RGBA{B: 255, A: 255}                 // direction marker
)

// Renderer composites layouts onto the base game mat template. The template
// is built once and only read afterwards, so a single Renderer is safe for
// concurrent use.
type Renderer struct {
	template *image.RGBA
}

// NewRenderer builds the mat template and PNG-encodes it once as a self
// check. An error means the service cannot produce a single valid image and
// must not start serving.
func NewRenderer() (*Renderer, error) {
	tpl := buildTemplate()
	if err := png.Encode(io.Discard, tpl); err != nil {
		return nil, fmt.Errorf("template self check: %w", err)
	}
	return &Renderer{template: tpl}, nil
}

// buildTemplate paints the empty mat: white field inside a black outer wall
// frame, plus the thin guide lines of every straightforward section.
func buildTemplate() *image.RGBA {
	tpl := image.NewRGBA(image.Rect(0, 0, imageSize, imageSize))
	dc := gg.NewContextForRGBA(tpl)

	dc.SetColor(colorBlack)
	dc.Clear()
	fillRect(dc, image.Rect(wallThickness, wallThickness, fieldSize+wallThickness, fieldSize+wallThickness), colorWhite)

	// Guide lines are identical for every section: the two arcs, the border
	// with the central section (its full-length line doubles as the side
	// radii of the neighbouring sections) and the middle radius.
	for _, s := range sections {
		fillRect(dc, s.rect(firstArc-thinLine/2, innerBorder, firstArc+thinLine/2, fieldSize-innerBorder), colorBlack)
		fillRect(dc, s.rect(secondArc-thinLine/2, innerBorder, secondArc+thinLine/2, fieldSize-innerBorder), colorBlack)
		fillRect(dc, s.rect(innerBorder-thinLine/2, 0, innerBorder+thinLine/2, fieldSize), colorBlack)
		fillRect(dc, s.rect(0, middleRadius-thinLine/2, innerBorder, middleRadius+thinLine/2), colorBlack)
	}

	return tpl
}

// fillRect paints an axis-aligned pixel rectangle. Integer bounds keep the
// fill free of anti-aliased edges.
func fillRect(dc *gg.Context, r image.Rectangle, c color.Color) {
	dc.SetColor(c)
	dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	dc.Fill()
}

// Render composites the layout onto a copy of the template and returns the
// PNG encoding. Rendering the same layout twice yields byte-identical
// output.
func (r *Renderer) Render(layout *Layout) ([]byte, error) {
	canvas := image.NewRGBA(r.template.Bounds())
	draw.Draw(canvas, canvas.Bounds(), r.template, image.Point{}, draw.Src)
	dc := gg.NewContextForRGBA(canvas)

	zone := startZoneCorners[layout.StartZone]
	tl, br := intersectionCoords[zone[0]], intersectionCoords[zone[1]]
	fillRect(dc, layout.StartSection.rect(tl.h, tl.w, br.h, br.w), colorGrey)

	switch layout.Challenge {
	case models.ChallengeOpen:
		drawInnerWalls(dc, layout.Walls)
	case models.ChallengeObstacle:
		drawParkingBarriers(dc, layout.ParkingSection)
		for _, s := range sections {
			if card, ok := layout.Cards[s]; ok {
				drawObstacles(dc, s, obstacleCards[card])
			}
		}
		drawInnerWalls(dc, WallSides{})
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedChallengeType, layout.Challenge)
	}

	drawDirectionMarker(dc, layout.Direction)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawInnerWalls paints the four inner walls. Moved sides sit on the second
// arc of their section, the others on the central section border.
func drawInnerWalls(dc *gg.Context, walls WallSides) {
	const b = wallThickness
	north, west := innerBorder, innerBorder
	south, east := fieldSize-innerBorder, fieldSize-innerBorder
	if walls.North {
		north = secondArc
	}
	if walls.West {
		west = secondArc
	}
	if walls.South {
		south = fieldSize - secondArc
	}
	if walls.East {
		east = fieldSize - secondArc
	}

	fillRect(dc, image.Rect(west-b/2+b, north-b/2+b, east+b/2+b, north+b/2+b), colorBlack)
	fillRect(dc, image.Rect(west-b/2+b, north-b/2+b, west+b/2+b, south+b/2+b), colorBlack)
	fillRect(dc, image.Rect(west-b/2+b, south-b/2+b, east+b/2+b, south+b/2+b), colorBlack)
	fillRect(dc, image.Rect(east-b/2+b, north-b/2+b, east+b/2+b, south+b/2+b), colorBlack)
}

// drawParkingBarriers paints the two parking lot barriers, flush with the
// outer edge of the section.
func drawParkingBarriers(dc *gg.Context, s Section) {
	first := innerBorder
	second := innerBorder + parkingBarrierThickness + parkingBarrierGap
	fillRect(dc, s.rect(0, first, parkingBarrierLength, first+parkingBarrierThickness), colorMagenta)
	fillRect(dc, s.rect(0, second, parkingBarrierLength, second+parkingBarrierThickness), colorMagenta)
}

// drawObstacles paints one obstacle card in the given section.
func drawObstacles(dc *gg.Context, s Section, obstacles []Obstacle) {
	for _, o := range obstacles {
		p := intersectionCoords[o.Position]
		r := s.rect(p.h-obstacleSize/2, p.w-obstacleSize/2, p.h+obstacleSize/2, p.w+obstacleSize/2)
		fillRect(dc, r, o.Color.rgba())
	}
}

// drawDirectionMarker paints the blue three-quarter arc in the central
// section with an arrowhead on the end matching the driving direction: on
// the left end pointing down for clockwise, on the top end pointing right
// for counter-clockwise.
func drawDirectionMarker(dc *gg.Context, direction models.Direction) {
	center := float64(fieldSize/2 + wallThickness)
	radius := float64(markerRadius)

	dc.SetColor(colorBlue)
	dc.SetLineWidth(markerStroke)
	dc.SetLineCap(gg.LineCapButt)
	dc.DrawArc(center, center, radius, gg.Radians(-90), gg.Radians(180))
	dc.Stroke()

	if direction == models.DirectionClockwise {
		dc.DrawLine(center-radius, center, center-radius-30, center+80)
		dc.Stroke()
		dc.DrawLine(center-radius, center, center-radius+50, center+75)
		dc.Stroke()
	} else {
		dc.DrawLine(center, center-radius, center+80, center-radius-30)
		dc.Stroke()
		dc.DrawLine(center, center-radius, center+75, center-radius+50)
		dc.Stroke()
	}
}
