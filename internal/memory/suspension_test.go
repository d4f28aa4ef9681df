package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevel_SuspendFrom(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		level Level
		from  time.Time
		want  time.Time
	}{
		{
			name:  "level 1 suspends for 20 minutes",
			level: Level1,
			from:  base,
			want:  time.Date(2024, 1, 1, 0, 20, 0, 0, time.UTC),
		},
		{
			name:  "level 2 suspends for 1 hour",
			level: Level2,
			from:  base,
			want:  time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
		},
		{
			name:  "level 3 suspends for 1 day",
			level: Level3,
			from:  base,
			want:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "level 4 suspends for 7 days",
			level: Level4,
			from:  base,
			want:  time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "level 5 suspends for 1 month",
			level: Level5,
			from:  base,
			want:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "level 6 suspends for 1 year",
			level: Level6,
			from:  base,
			want:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "month addition clamps to the end of a leap February",
			level: Level5,
			from:  time.Date(2024, 1, 31, 10, 30, 0, 0, time.UTC),
			want:  time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "month addition crosses the year boundary",
			level: Level5,
			from:  time.Date(2024, 12, 15, 8, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "year addition from Feb 29 clamps to Feb 28",
			level: Level6,
			from:  time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "keeps sub-second precision",
			level: Level1,
			from:  time.Date(2024, 1, 1, 0, 0, 0, 123456000, time.UTC),
			want:  time.Date(2024, 1, 1, 0, 20, 0, 123456000, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.level.SuspendFrom(tt.from)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestLevel_Suspension_InvalidLevelPanics(t *testing.T) {
	for _, l := range []Level{0, 7, -1} {
		assert.Panics(t, func() { l.Suspension() }, "level %d", int(l))
	}
}

func TestSuspension_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{level: Level1, want: "20 minutes"},
		{level: Level2, want: "1 hour"},
		{level: Level4, want: "7 days"},
		{level: Level6, want: "1 year"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.Suspension().String())
		})
	}
}
