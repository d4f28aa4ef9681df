package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/statistics"
)

func TestPrintStatistics(t *testing.T) {
	levels := make([]statistics.LevelStatistics, 0, 6)
	for _, l := range memory.AllLevels() {
		levels = append(levels, statistics.LevelStatistics{Level: l})
	}
	levels[0] = statistics.LevelStatistics{Level: memory.Level1, Terms: 12, Due: 3}

	t.Run("with periods", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, PrintStatistics(&out, statistics.StatisticsResult{
			Levels:    levels,
			Periods:   []statistics.PeriodStatistics{{Period: "2025-03", NewTerms: 12, Mastered: 0}},
			Aggregate: statistics.AggregateStatistics{Terms: 12, Due: 3, NewTerms: 12},
		}))

		assert.Equal(t, `Levels
level  terms  due
1      12     3
2      0      0
3      0      0
4      0      0
5      0      0
6      0      0
total  12     3

New terms
month    new  mastered
2025-03  12   0
total    12
`, out.String())
	})

	t.Run("without periods", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, PrintStatistics(&out, statistics.StatisticsResult{Levels: levels}))
		assert.Contains(t, out.String(), "No terms were added in this period.")
	})
}
