package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/at-ishikawa/memorizer/internal/statistics"
)

// PrintStatistics writes the level table and the monthly table of result.
func PrintStatistics(w io.Writer, result statistics.StatisticsResult) error {
	bold := color.New(color.Bold)

	_, _ = bold.Fprintln(w, "Levels")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "level\tterms\tdue")
	for _, l := range result.Levels {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", l.Level, l.Terms, l.Due)
	}
	_, _ = fmt.Fprintf(tw, "total\t%d\t%d\n", result.Aggregate.Terms, result.Aggregate.Due)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("tw.Flush() > %w", err)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "New terms")
	if len(result.Periods) == 0 {
		_, _ = fmt.Fprintln(w, "No terms were added in this period.")
		return nil
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "month\tnew\tmastered")
	for _, p := range result.Periods {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", p.Period, p.NewTerms, p.Mastered)
	}
	_, _ = fmt.Fprintf(tw, "total\t%d\n", result.Aggregate.NewTerms)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("tw.Flush() > %w", err)
	}
	return nil
}
