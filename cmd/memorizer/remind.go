package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memorizer/internal/config"
	"github.com/at-ishikawa/memorizer/internal/reminder"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

func newRemindCommand() *cobra.Command {
	var once bool

	command := &cobra.Command{
		Use:   "remind",
		Short: "Print a reminder whenever terms are due, every reminder.interval_minutes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVocabulary(func(cfg *config.Config, vocab vocabulary.Vocabulary) error {
				r := reminder.New(vocab, cfg, cmd.OutOrStdout(), slog.Default())
				if once {
					count, err := r.Check(cmd.Context())
					if err != nil {
						return fmt.Errorf("reminder.Check() > %w", err)
					}
					if count == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "No terms are due.")
					}
					return nil
				}

				ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer cancel()
				return r.Run(ctx)
			})
		},
	}

	command.Flags().BoolVar(&once, "once", false, "check once and exit")
	return command
}
