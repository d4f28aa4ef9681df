package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memorizer/internal/cli"
	"github.com/at-ishikawa/memorizer/internal/config"
	"github.com/at-ishikawa/memorizer/internal/statistics"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze memorization progress",
	}
	cmd.AddCommand(newAnalyzeReportCommand())
	return cmd
}

func newAnalyzeReportCommand() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show terms per level and new terms per month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				terms, err := vocab.ListTerms(cmd.Context())
				if err != nil {
					return fmt.Errorf("ListTerms() > %w", err)
				}
				result := statistics.CalculateStatistics(terms, time.Now(), year, month)
				return cli.PrintStatistics(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Filter new terms by year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter new terms by month (1-12), requires --year")

	return cmd
}
