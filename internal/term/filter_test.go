package term

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/memorizer/internal/memory"
)

func TestDueFilter_Matches(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Second)
	term := Term{
		Term:   "serendipity",
		Tags:   []Tag{{Tag: "toeic"}, {Tag: "noun"}},
		Memory: memory.Memory{Level: memory.Level2, SuspendUntil: now},
	}

	tests := []struct {
		name   string
		filter DueFilter
		want   bool
	}{
		{"empty filter", DueFilter{}, true},
		{"suspension equal to until", DueFilter{Until: &now}, true},
		{"suspension after until", DueFilter{Until: &before}, false},
		{"level listed", DueFilter{Levels: []memory.Level{memory.Level1, memory.Level2}}, true},
		{"level not listed", DueFilter{Levels: []memory.Level{memory.Level3}}, false},
		{"one tag matches", DueFilter{Tags: []string{"verb", "noun"}}, true},
		{"no tag matches", DueFilter{Tags: []string{"verb"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(term))
		})
	}
}

func TestDueFilter_Validate(t *testing.T) {
	assert.NoError(t, DueFilter{}.Validate())
	assert.NoError(t, DueFilter{Levels: memory.AllLevels()}.Validate())
	assert.ErrorIs(t, DueFilter{Levels: []memory.Level{memory.Level(0)}}.Validate(), memory.ErrInvalidLevel)
	assert.ErrorIs(t, DueFilter{Levels: []memory.Level{memory.Level(7)}}.Validate(), memory.ErrInvalidLevel)
}
