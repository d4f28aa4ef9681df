package memory

import "fmt"

// Direction is the outcome of reviewing a term.
type Direction string

const (
	Strengthen Direction = "strengthen"
	Weaken     Direction = "weaken"
)

// ParseDirection accepts "strengthen" or "weaken".
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Strengthen, Weaken:
		return d, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidDirection)
}
