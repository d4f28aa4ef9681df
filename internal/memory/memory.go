package memory

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidLevel     = errors.New("level must be between 1 and 6")
	ErrInvalidDirection = errors.New("direction must be strengthen or weaken")
)

// Memory is the review state of one term.
type Memory struct {
	ID           int64     `db:"id" json:"id" yaml:"-"`
	TermID       int64     `db:"term_id" json:"term_id" yaml:"-"`
	Level        Level     `db:"level" json:"level" yaml:"level"`
	SuspendUntil time.Time `db:"suspend_until" json:"suspend_until" yaml:"suspend_until"`
}

// New returns the memory of a freshly created term.
func New(now time.Time) Memory {
	return Memory{
		Level:        MinLevel,
		SuspendUntil: now,
	}
}

// IsDue reports whether the term may be reviewed at t. The boundary is inclusive.
func (m Memory) IsDue(t time.Time) bool {
	return !m.SuspendUntil.After(t)
}

// Strengthen moves the memory one level up and suspends it for the new level's duration.
// At MaxLevel nothing changes and false is returned.
func (m Memory) Strengthen(now time.Time) (Memory, bool) {
	if m.Level >= MaxLevel {
		return m, false
	}
	return m.moveTo(m.Level+1, now), true
}

// Weaken moves the memory one level down and suspends it for the new level's duration.
// At MinLevel nothing changes and false is returned.
func (m Memory) Weaken(now time.Time) (Memory, bool) {
	if m.Level <= MinLevel {
		return m, false
	}
	return m.moveTo(m.Level-1, now), true
}

// Advance applies a review outcome.
func (m Memory) Advance(d Direction, now time.Time) (Memory, bool, error) {
	switch d {
	case Strengthen:
		next, changed := m.Strengthen(now)
		return next, changed, nil
	case Weaken:
		next, changed := m.Weaken(now)
		return next, changed, nil
	}
	return m, false, fmt.Errorf("%q: %w", string(d), ErrInvalidDirection)
}

func (m Memory) moveTo(l Level, now time.Time) Memory {
	m.Level = l
	m.SuspendUntil = l.SuspendFrom(now)
	return m
}

// Override sets the memory directly instead of deriving it from a review outcome.
type Override struct {
	Level        *Level     `json:"level,omitempty"`
	SuspendUntil *time.Time `json:"suspend_until,omitempty"`
}

// IsEmpty reports whether the override changes nothing.
func (o Override) IsEmpty() bool {
	return o.Level == nil && o.SuspendUntil == nil
}

// Validate checks that a provided level is in range.
func (o Override) Validate() error {
	if o.Level != nil && !o.Level.Valid() {
		return fmt.Errorf("invalid level %d: %w", int(*o.Level), ErrInvalidLevel)
	}
	return nil
}

// Apply returns m with the override applied. A level without a timestamp suspends the
// memory for that level's duration from now; an explicit timestamp is used as is.
func (o Override) Apply(m Memory, now time.Time) (Memory, error) {
	if err := o.Validate(); err != nil {
		return m, err
	}
	if o.Level != nil {
		m = m.moveTo(*o.Level, now)
	}
	if o.SuspendUntil != nil {
		m.SuspendUntil = *o.SuspendUntil
	}
	return m, nil
}
