// Package memory provides the spaced-repetition state of a term: its familiarity level,
// the suspension table, and the rules that advance a level on a review outcome.
package memory

import (
	"fmt"
	"strconv"
	"time"
)

// Level is the familiarity level of a term. Only the six levels below exist.
type Level int

const (
	Level1 Level = iota + 1
	Level2
	Level3
	Level4
	Level5
	Level6
)

const (
	MinLevel = Level1
	MaxLevel = Level6
)

var _ fmt.Stringer = Level(0)

// AllLevels returns every level in ascending order.
func AllLevels() []Level {
	return []Level{Level1, Level2, Level3, Level4, Level5, Level6}
}

// Valid reports whether l is one of the six levels.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

func (l Level) String() string {
	if l.Valid() {
		return strconv.Itoa(int(l))
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel parses "1" through "6".
func ParseLevel(s string) (Level, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid level %q: %w", s, ErrInvalidLevel)
	}
	l := Level(n)
	if !l.Valid() {
		return 0, fmt.Errorf("invalid level %d: %w", n, ErrInvalidLevel)
	}
	return l, nil
}

// SuspendFrom returns the earliest time a term at this level may be reviewed again,
// counted from t. It panics if l is not a valid level.
func (l Level) SuspendFrom(t time.Time) time.Time {
	return l.Suspension().From(t)
}

// Suspension returns the suspension table entry for l. It panics if l is not a valid level.
func (l Level) Suspension() Suspension {
	if !l.Valid() {
		panic(fmt.Sprintf("memory: no suspension for %s", l))
	}
	return suspensionTable[l]
}

// LevelsOrAll returns levels, or every level when levels is empty.
// An empty selection means "no level filter", never "match nothing".
func LevelsOrAll(levels []Level) []Level {
	if len(levels) == 0 {
		return AllLevels()
	}
	return levels
}
