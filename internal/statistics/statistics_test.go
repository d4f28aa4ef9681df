package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
)

func TestCalculateStatistics(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	newTerm := func(level memory.Level, suspendUntil, createdAt time.Time) term.Term {
		return term.Term{CreatedAt: createdAt, Memory: memory.Memory{Level: level, SuspendUntil: suspendUntil}}
	}
	terms := []term.Term{
		newTerm(memory.Level1, now, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		newTerm(memory.Level1, now.Add(time.Minute), time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)),
		newTerm(memory.Level3, now.Add(-time.Hour), time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)),
		newTerm(memory.Level6, now.AddDate(1, 0, 0), time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)),
	}

	tests := []struct {
		name         string
		year, month  int
		wantPeriods  []PeriodStatistics
		wantNewTerms int
	}{
		{
			name: "no filter",
			wantPeriods: []PeriodStatistics{
				{Period: "2025-03", NewTerms: 2},
				{Period: "2025-01", NewTerms: 1},
				{Period: "2024-11", NewTerms: 1, Mastered: 1},
			},
			wantNewTerms: 4,
		},
		{
			name: "year",
			year: 2025,
			wantPeriods: []PeriodStatistics{
				{Period: "2025-03", NewTerms: 2},
				{Period: "2025-01", NewTerms: 1},
			},
			wantNewTerms: 3,
		},
		{
			name:         "year and month",
			year:         2025,
			month:        1,
			wantPeriods:  []PeriodStatistics{{Period: "2025-01", NewTerms: 1}},
			wantNewTerms: 1,
		},
		{
			name:        "no match",
			year:        2023,
			wantPeriods: []PeriodStatistics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatistics(terms, now, tt.year, tt.month)

			assert.Equal(t, tt.wantPeriods, got.Periods)
			assert.Equal(t, AggregateStatistics{Terms: 4, Due: 2, NewTerms: tt.wantNewTerms}, got.Aggregate)
			assert.Equal(t, []LevelStatistics{
				{Level: memory.Level1, Terms: 2, Due: 1},
				{Level: memory.Level2},
				{Level: memory.Level3, Terms: 1, Due: 1},
				{Level: memory.Level4},
				{Level: memory.Level5},
				{Level: memory.Level6, Terms: 1},
			}, got.Levels)
		})
	}
}

func TestCalculateStatistics_Empty(t *testing.T) {
	got := CalculateStatistics(nil, time.Now(), 0, 0)

	assert.Len(t, got.Levels, 6)
	assert.Empty(t, got.Periods)
	assert.Zero(t, got.Aggregate)
}
