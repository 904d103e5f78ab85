// Package field models the Future Engineers game mat: the fixed geometry of
// the mat, randomized layout generation for the open and obstacle challenge
// rounds, and rendering of layouts to PNG images.
package field

import "image"

// All coordinates are in pixels at 1 px = 1 mm. The mat is a 3 m by 3 m
// square enclosed by outer walls. The four straightforward sections share
// one layout, so element positions are defined once relative to the north
// section and mirrored into the others.
const (
	fieldSize     = 3000 // mat edge, outer walls excluded
	wallThickness = 10
	thinLine      = 2 // guide line thickness for arcs and radii

	// Distances from the outer edge of a straightforward section: the two
	// arcs crossing it and its border with the central section.
	firstArc    = 400
	secondArc   = 600
	innerBorder = 1000

	// Across-the-section position of the middle radius.
	middleRadius = fieldSize / 2

	// Obstacles are squares centered on an intersection.
	obstacleSize = 100

	// Driving direction marker in the central section.
	markerRadius = 350
	markerStroke = 20

	parkingBarrierThickness = 20
	parkingBarrierLength    = 200
	parkingBarrierGap       = 300 // between the two barriers
)

// imageSize is the rendered image edge, outer walls included.
const imageSize = fieldSize + 2*wallThickness

// Section identifies one of the four straightforward sections of the mat.
type Section int

const (
	SectionNorth Section = iota
	SectionWest
	SectionSouth
	SectionEast
)

// sections lists the straightforward sections in drawing order.
var sections = [...]Section{SectionNorth, SectionWest, SectionSouth, SectionEast}

func (s Section) String() string {
	switch s {
	case SectionNorth:
		return "north"
	case SectionWest:
		return "west"
	case SectionSouth:
		return "south"
	case SectionEast:
		return "east"
	}
	return "unknown"
}

// rect maps a rectangle given in section-relative coordinates to absolute
// image coordinates, outer walls included. Relative coordinates are those
// of the north section: h runs from the outer edge toward the center of the
// mat, w left to right. Corner order does not matter.
func (s Section) rect(h1, w1, h2, w2 int) image.Rectangle {
	hMin, hMax := minMax(h1, h2)
	wMin, wMax := minMax(w1, w2)
	const b = wallThickness
	switch s {
	case SectionNorth:
		return image.Rect(wMin+b, hMin+b, wMax+b, hMax+b)
	case SectionWest:
		return image.Rect(hMin+b, fieldSize-wMax+b, hMax+b, fieldSize-wMin+b)
	case SectionSouth:
		return image.Rect(fieldSize-wMax+b, fieldSize-hMax+b, fieldSize-wMin+b, fieldSize-hMin+b)
	case SectionEast:
		return image.Rect(fieldSize-hMax+b, wMin+b, fieldSize-hMin+b, wMax+b)
	}
	return image.Rectangle{}
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Intersection identifies a crossing of the section grid lines. T1..T4 and
// X1, X2 can hold obstacles; the remaining points are section corners used
// to bound the start zones.
type Intersection int

const (
	TopLeft Intersection = iota
	TopMiddle
	TopRight
	T4
	X2
	T3
	T2
	X1
	T1
	BottomLeft
	BottomMiddle
	BottomRight
)

// intersectionCoords holds the section-relative position of every
// intersection.
var intersectionCoords = [...]struct{ h, w int }{
	TopLeft:      {0, innerBorder},
	TopMiddle:    {0, middleRadius},
	TopRight:     {0, fieldSize - innerBorder},
	T4:           {firstArc, innerBorder},
	X2:           {firstArc, middleRadius},
	T3:           {firstArc, fieldSize - innerBorder},
	T2:           {secondArc, innerBorder},
	X1:           {secondArc, middleRadius},
	T1:           {secondArc, fieldSize - innerBorder},
	BottomLeft:   {innerBorder, innerBorder},
	BottomMiddle: {innerBorder, middleRadius},
	BottomRight:  {innerBorder, fieldSize - innerBorder},
}

var intersectionNames = [...]string{
	TopLeft:      "TopLeft",
	TopMiddle:    "TopMiddle",
	TopRight:     "TopRight",
	T4:           "T4",
	X2:           "X2",
	T3:           "T3",
	T2:           "T2",
	X1:           "X1",
	T1:           "T1",
	BottomLeft:   "BottomLeft",
	BottomMiddle: "BottomMiddle",
	BottomRight:  "BottomRight",
}

func (i Intersection) String() string {
	if i < 0 || int(i) >= len(intersectionNames) {
		return "unknown"
	}
	return intersectionNames[i]
}

// StartZone identifies one of the six vehicle starting zones of a
// straightforward section. Z1/Z2 border the central section, Z3/Z4 sit
// between the two arcs, Z5/Z6 border the outer wall.
type StartZone int

const (
	Z1 StartZone = iota
	Z2
	Z3
	Z4
	Z5
	Z6
)

// startZoneCorners bounds each zone by two of its corner intersections.
var startZoneCorners = [...][2]Intersection{
	Z1: {X1, BottomRight},
	Z2: {T2, BottomMiddle},
	Z3: {X2, T1},
	Z4: {T4, X1},
	Z5: {TopMiddle, T3},
	Z6: {TopLeft, X2},
}

func (z StartZone) String() string {
	if z < Z1 || z > Z6 {
		return "unknown"
	}
	return [...]string{"Z1", "Z2", "Z3", "Z4", "Z5", "Z6"}[z]
}
