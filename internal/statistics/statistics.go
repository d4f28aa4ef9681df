// Package statistics summarizes the memory state and the growth of a vocabulary.
package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
)

// LevelStatistics counts the terms at one level.
type LevelStatistics struct {
	Level memory.Level
	Terms int
	Due   int // terms whose suspension has ended
}

// PeriodStatistics holds counts for a month, such as "2025-01".
type PeriodStatistics struct {
	Period   string
	NewTerms int
	// Mastered counts terms created in the period that are at the top level now.
	Mastered int
}

// AggregateStatistics holds totals across the whole vocabulary.
type AggregateStatistics struct {
	Terms    int
	Due      int
	NewTerms int // terms created within the year/month filter
}

// StatisticsResult holds per-level, per-period, and aggregate statistics.
type StatisticsResult struct {
	Levels    []LevelStatistics
	Periods   []PeriodStatistics
	Aggregate AggregateStatistics
}

// CalculateStatistics summarizes terms at now. Year and month filter the periods
// (0 means no filter); level counts always cover every term.
func CalculateStatistics(terms []term.Term, now time.Time, year, month int) StatisticsResult {
	levels := make(map[memory.Level]*LevelStatistics, len(memory.AllLevels()))
	for _, l := range memory.AllLevels() {
		levels[l] = &LevelStatistics{Level: l}
	}
	periods := make(map[string]*PeriodStatistics)

	var aggregate AggregateStatistics
	for _, t := range terms {
		aggregate.Terms++
		due := t.Memory.IsDue(now)
		if due {
			aggregate.Due++
		}
		if stats, ok := levels[t.Memory.Level]; ok {
			stats.Terms++
			if due {
				stats.Due++
			}
		}

		if t.CreatedAt.IsZero() {
			continue
		}
		created := t.CreatedAt.In(now.Location())
		if !matchesFilter(created.Year(), int(created.Month()), year, month) {
			continue
		}
		period := fmt.Sprintf("%d-%02d", created.Year(), int(created.Month()))
		if periods[period] == nil {
			periods[period] = &PeriodStatistics{Period: period}
		}
		periods[period].NewTerms++
		if t.Memory.Level == memory.MaxLevel {
			periods[period].Mastered++
		}
		aggregate.NewTerms++
	}

	return buildResult(levels, periods, aggregate)
}

func matchesFilter(createdYear, createdMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if createdYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return createdMonth == filterMonth
}

func buildResult(levels map[memory.Level]*LevelStatistics, periods map[string]*PeriodStatistics, aggregate AggregateStatistics) StatisticsResult {
	result := StatisticsResult{
		Levels:    make([]LevelStatistics, 0, len(levels)),
		Periods:   make([]PeriodStatistics, 0, len(periods)),
		Aggregate: aggregate,
	}
	for _, l := range memory.AllLevels() {
		result.Levels = append(result.Levels, *levels[l])
	}
	for _, p := range periods {
		result.Periods = append(result.Periods, *p)
	}

	// Sort by period descending (newest first)
	sort.Slice(result.Periods, func(i, j int) bool {
		return result.Periods[i].Period > result.Periods[j].Period
	})
	return result
}
