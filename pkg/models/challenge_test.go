package models

import (
	"errors"
	"testing"
)

func TestParseChallengeType(t *testing.T) {
	cases := []struct {
		in   string
		want ChallengeType
	}{
		{"open", ChallengeOpen},
		{"qualification", ChallengeOpen},
		{"obstacle", ChallengeObstacle},
		{"final", ChallengeObstacle},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseChallengeType(tc.in)
			if err != nil {
				t.Fatalf("ParseChallengeType(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}

	t.Run("unknown values are rejected", func(t *testing.T) {
		for _, in := range []string{"", "Open", "finals", "slalom", "open "} {
			_, err := ParseChallengeType(in)
			if err == nil {
				t.Errorf("ParseChallengeType(%q) succeeded, want error", in)
				continue
			}
			if !errors.Is(err, ErrUnsupportedChallengeType) {
				t.Errorf("ParseChallengeType(%q) error = %v, want ErrUnsupportedChallengeType", in, err)
			}
		}
	})
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
	}{
		{"cw", DirectionClockwise},
		{"ccw", DirectionCounterClockwise},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDirection(tc.in)
			if err != nil {
				t.Fatalf("ParseDirection(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}

	t.Run("unknown values are rejected", func(t *testing.T) {
		for _, in := range []string{"", "CW", "clockwise", "widdershins"} {
			_, err := ParseDirection(in)
			if err == nil {
				t.Errorf("ParseDirection(%q) succeeded, want error", in)
				continue
			}
			if !errors.Is(err, ErrUnsupportedDirection) {
				t.Errorf("ParseDirection(%q) error = %v, want ErrUnsupportedDirection", in, err)
			}
		}
	})
}
