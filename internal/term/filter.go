package term

import (
	"slices"
	"time"

	"github.com/at-ishikawa/memorizer/internal/memory"
)

// DueFilter selects terms for review.
//
// Until, when set, keeps terms whose suspension ends at or before it. Levels keeps terms at
// one of the listed levels; an empty list means every level. Tags, when non-empty, keeps terms
// carrying at least one of the listed tags.
type DueFilter struct {
	Until  *time.Time     `json:"until,omitempty"`
	Levels []memory.Level `json:"levels,omitempty"`
	Tags   []string       `json:"tags,omitempty"`
}

// Matches reports whether t is selected by the filter.
func (f DueFilter) Matches(t Term) bool {
	if !slices.Contains(memory.LevelsOrAll(f.Levels), t.Memory.Level) {
		return false
	}
	if f.Until != nil && !t.Memory.IsDue(*f.Until) {
		return false
	}
	if len(f.Tags) > 0 && !t.HasAnyTag(f.Tags) {
		return false
	}
	return true
}

// Validate checks the listed levels.
func (f DueFilter) Validate() error {
	for _, l := range f.Levels {
		if !l.Valid() {
			return memory.ErrInvalidLevel
		}
	}
	return nil
}
