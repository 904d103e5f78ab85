package field

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/wrobotics/field-randomizer/pkg/models"
)

// WallSides records which sides of the mat have their inner wall moved out
// to the second arc of the section. The zero value keeps every wall on the
// central section border.
type WallSides struct {
	North bool
	West  bool
	South bool
	East  bool
}

// On reports whether the wall on the given side is moved out.
func (w WallSides) On(s Section) bool {
	switch s {
	case SectionNorth:
		return w.North
	case SectionWest:
		return w.West
	case SectionSouth:
		return w.South
	case SectionEast:
		return w.East
	}
	return false
}

func (w *WallSides) set(s Section) {
	switch s {
	case SectionNorth:
		w.North = true
	case SectionWest:
		w.West = true
	case SectionSouth:
		w.South = true
	case SectionEast:
		w.East = true
	}
}

// Layout is one randomized field configuration. StartSection and StartZone
// are set for both challenges. Walls is used by the open challenge only;
// Cards and ParkingSection by the obstacle challenge only.
type Layout struct {
	Challenge models.ChallengeType
	Direction models.Direction

	StartSection Section
	StartZone    StartZone

	Walls WallSides

	// Cards maps each section to an index into the obstacle card table.
	Cards          map[Section]int
	ParkingSection Section
}

// Generator randomizes field layouts. It is not safe for concurrent use;
// give every goroutine its own Generator.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate produces a random layout for the given challenge and direction.
// An empty direction is randomized. Unknown challenge types or directions
// are rejected with the matching models sentinel error.
func (g *Generator) Generate(challenge models.ChallengeType, direction models.Direction) (*Layout, error) {
	switch direction {
	case models.DirectionClockwise, models.DirectionCounterClockwise:
	case "":
		direction = g.randomDirection()
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedDirection, direction)
	}

	switch challenge {
	case models.ChallengeOpen:
		return g.open(direction), nil
	case models.ChallengeObstacle:
		return g.obstacle(direction), nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedChallengeType, challenge)
}

func (g *Generator) randomDirection() models.Direction {
	if g.rng.IntN(2) == 0 {
		return models.DirectionClockwise
	}
	return models.DirectionCounterClockwise
}

// open randomizes an open challenge layout: 0 to 4 inner walls moved out to
// the second arc, plus a starting section and zone.
func (g *Generator) open(direction models.Direction) *Layout {
	var walls WallSides
	count := g.rng.IntN(len(sections) + 1)
	for _, i := range g.rng.Perm(len(sections))[:count] {
		walls.set(sections[i])
	}

	start := sections[g.rng.IntN(len(sections))]

	// A moved wall cuts the section off at the second arc, so the two zones
	// between the arc and the central section cannot hold the vehicle.
	zones := []StartZone{Z1, Z2, Z3, Z4, Z5, Z6}
	if walls.On(start) {
		zones = []StartZone{Z3, Z4, Z5, Z6}
	}

	return &Layout{
		Challenge:    models.ChallengeOpen,
		Direction:    direction,
		StartSection: start,
		StartZone:    zones[g.rng.IntN(len(zones))],
		Walls:        walls,
	}
}

// obstacle randomizes an obstacle challenge layout: four obstacle cards on
// four sections, a starting zone clear of obstacles ahead of the vehicle
// and a section fit for the parking lot.
func (g *Generator) obstacle(direction models.Direction) *Layout {
	blocked := blockedAhead[direction]

	var (
		chosen      [4]int
		startCards  []int // cards leaving at least one usable start zone
		parkCards   []int // cards whose section can hold the parking lot
		zoneChoices map[int][]StartZone
	)

	// Redraw until the combination satisfies the field rules: one mandatory
	// X2 card, one opposite-color pair card, color balance within one, more
	// than four obstacles, a usable start zone and a parking section.
	for {
		mandatory := mandatoryCards[Green]
		if g.rng.IntN(2) == 1 {
			mandatory = mandatoryCards[Red]
		}
		required := requiredCards[g.rng.IntN(len(requiredCards))]

		extra1 := mandatory
		for extra1 == mandatory || extra1 == required {
			extra1 = g.rng.IntN(len(obstacleCards))
		}
		extra2 := mandatory
		for extra2 == mandatory || extra2 == required || extra2 == extra1 {
			extra2 = g.rng.IntN(len(obstacleCards))
		}
		chosen = [4]int{mandatory, required, extra1, extra2}

		var total, green, red int
		startCards = nil
		parkCards = nil
		zoneChoices = make(map[int][]StartZone, len(chosen))

		for _, card := range chosen {
			obstacles := obstacleCards[card]
			total += len(obstacles)

			zoneBlocked := make(map[StartZone]bool, len(obstacleStartZones))
			parkingOK := true
			for _, o := range obstacles {
				if o.Color == Green {
					green++
				} else {
					red++
				}
				for _, z := range obstacleStartZones {
					if slices.Contains(blocked[z], o.Position) {
						zoneBlocked[z] = true
					}
				}
				if slices.Contains(parkingBlocked, o.Position) {
					parkingOK = false
				}
			}

			var usable []StartZone
			for _, z := range obstacleStartZones {
				if !zoneBlocked[z] {
					usable = append(usable, z)
				}
			}
			if len(usable) > 0 {
				zoneChoices[card] = usable
				startCards = append(startCards, card)
			}
			if parkingOK {
				parkCards = append(parkCards, card)
			}
		}

		balanced := green-red <= 1 && red-green <= 1
		if balanced && total > 4 && len(startCards) > 0 && len(parkCards) > 0 {
			break
		}
	}

	// Assign every card a distinct section.
	perm := g.rng.Perm(len(sections))
	cards := make(map[Section]int, len(chosen))
	sectionOf := make(map[int]Section, len(chosen))
	for i, card := range chosen {
		s := sections[perm[i]]
		cards[s] = card
		sectionOf[card] = s
	}

	startCard := startCards[g.rng.IntN(len(startCards))]
	zones := zoneChoices[startCard]
	parkCard := parkCards[g.rng.IntN(len(parkCards))]

	return &Layout{
		Challenge:      models.ChallengeObstacle,
		Direction:      direction,
		StartSection:   sectionOf[startCard],
		StartZone:      zones[g.rng.IntN(len(zones))],
		Cards:          cards,
		ParkingSection: sectionOf[parkCard],
	}
}
