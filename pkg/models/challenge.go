package models

import (
	"errors"
	"fmt"
)

// ErrUnsupportedChallengeType is returned when a request names a challenge
// the generator does not know.
var ErrUnsupportedChallengeType = errors.New("unsupported challenge type")

// ErrUnsupportedDirection is returned when a request names a driving
// direction other than cw or ccw.
var ErrUnsupportedDirection = errors.New("unsupported direction")

// ChallengeType selects which randomization rules apply to a field.
type ChallengeType string

const (
	ChallengeOpen     ChallengeType = "open"
	ChallengeObstacle ChallengeType = "obstacle"
)

// Direction is the driving direction of the vehicle around the field.
type Direction string

const (
	DirectionClockwise        Direction = "cw"
	DirectionCounterClockwise Direction = "ccw"
)

// ParseChallengeType maps a URL path segment to a ChallengeType. The round
// names used on scoreboards (qualification, final) are accepted as aliases
// for the challenge each round runs.
func ParseChallengeType(s string) (ChallengeType, error) {
	switch s {
	case "open", "qualification":
		return ChallengeOpen, nil
	case "obstacle", "final":
		return ChallengeObstacle, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedChallengeType, s)
}

// ParseDirection maps a URL path segment to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "cw":
		return DirectionClockwise, nil
	case "ccw":
		return DirectionCounterClockwise, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDirection, s)
}
