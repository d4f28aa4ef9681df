package vocabulary

import (
	"time"

	"github.com/at-ishikawa/memorizer/internal/config"
	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
)

// ReviewFilter builds the due filter of the review section. Without suspension every
// term of the selected levels and tags is due.
func ReviewFilter(cfg config.ReviewConfig, now time.Time) term.DueFilter {
	var filter term.DueFilter
	for _, l := range cfg.Levels {
		filter.Levels = append(filter.Levels, memory.Level(l))
	}
	if len(cfg.Tags) > 0 {
		filter.Tags = append([]string(nil), cfg.Tags...)
	}
	if cfg.UseSuspension {
		until := now
		filter.Until = &until
	}
	return filter
}
