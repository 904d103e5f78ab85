package field

import (
	"image/color"

	"github.com/wrobotics/field-randomizer/pkg/models"
)

// ObstacleColor is the color of a traffic sign obstacle. The vehicle must
// pass red signs on their right side and green signs on their left side.
type ObstacleColor int

const (
	Green ObstacleColor = iota
	Red
)

func (c ObstacleColor) String() string {
	if c == Red {
		return "red"
	}
	return "green"
}

// rgba returns the paint color of the obstacle on the mat.
func (c ObstacleColor) rgba() color.RGBA {
	if c == Red {
		return color.RGBA{R: 238, G: 39, B: 55, A: 255}
	}
	return color.RGBA{R: 68, G: 214, B: 44, A: 255}
}

// Obstacle is a traffic sign standing on an intersection of a section.
type Obstacle struct {
	Position Intersection
	Color    ObstacleColor
}

// obstacleCards lists the legal obstacle combinations for one section, one
// entry per card of the official randomization deck. Some two-obstacle
// combinations appear twice because the deck contains equal cards; dropping
// them would skew the draw.
var obstacleCards = [][]Obstacle{
	// Single obstacle cards.
	{{T1, Green}},
	{{T1, Red}},
	{{X1, Green}},
	{{X1, Red}},
	{{T2, Green}},
	{{T2, Red}},
	{{T3, Green}},
	{{T3, Red}},
	{{X2, Green}},
	{{X2, Red}},
	{{T4, Green}},
	{{T4, Red}},

	// T3 with T2.
	{{T3, Green}, {T2, Green}},
	{{T3, Green}, {T2, Red}},
	{{T3, Red}, {T2, Green}},
	{{T3, Red}, {T2, Red}},

	// T1 with T4.
	{{T1, Green}, {T4, Green}},
	{{T1, Green}, {T4, Red}},
	{{T1, Red}, {T4, Green}},
	{{T1, Red}, {T4, Red}},

	// T1 with T2.
	{{T1, Green}, {T2, Green}},
	{{T1, Green}, {T2, Red}},
	{{T1, Red}, {T2, Green}},
	{{T1, Green}, {T2, Red}},
	{{T1, Red}, {T2, Green}},
	{{T1, Red}, {T2, Red}},

	// T3 with T4.
	{{T3, Green}, {T4, Green}},
	{{T3, Green}, {T4, Red}},
	{{T3, Red}, {T4, Green}},
	{{T3, Green}, {T4, Red}},
	{{T3, Red}, {T4, Green}},
	{{T3, Red}, {T4, Red}},
}

// mandatoryCards holds, per color, the card that puts a single obstacle on
// X2. Every obstacle layout must carry one of the two.
var mandatoryCards = map[ObstacleColor]int{
	Green: 8,
	Red:   9,
}

// requiredCards are the opposite-color pair cards. One of them must be on
// the field so that a vehicle handling only one sign color cannot clear the
// round.
var requiredCards = []int{21, 22, 27, 28}

// blockedAhead lists, per driving direction and start zone, the
// intersections directly ahead of a vehicle starting in that zone. A card
// placing an obstacle there rules the zone out for its section.
var blockedAhead = map[models.Direction]map[StartZone][]Intersection{
	models.DirectionClockwise: {
		Z3: {T1, T3},
		Z4: {X1, X2},
	},
	models.DirectionCounterClockwise: {
		Z3: {X1, X2},
		Z4: {T2, T4},
	},
}

// parkingBlocked lists the intersections that must stay empty in the
// section holding the parking lot.
var parkingBlocked = []Intersection{T3, T4, X2}

// obstacleStartZones are the zones a vehicle may start from in the obstacle
// challenge.
var obstacleStartZones = []StartZone{Z3, Z4}
