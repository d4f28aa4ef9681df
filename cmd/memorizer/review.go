package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memorizer/internal/cli"
	"github.com/at-ishikawa/memorizer/internal/config"
	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

func newReviewCommand() *cobra.Command {
	reviewCommand := &cobra.Command{
		Use:   "review",
		Short: "Record review outcomes of a term",
	}

	reviewCommand.AddCommand(newAdvanceCommand(memory.Strengthen, "Move a term one level up"))
	reviewCommand.AddCommand(newAdvanceCommand(memory.Weaken, "Move a term one level down"))
	reviewCommand.AddCommand(newReviewSetCommand())

	return reviewCommand
}

func newAdvanceCommand(d memory.Direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(d) + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				before, err := vocab.GetTerm(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("GetTerm() > %w", err)
				}
				after, err := vocab.AdvanceFamiliarity(cmd.Context(), id, d)
				if err != nil {
					return fmt.Errorf("AdvanceFamiliarity() > %w", err)
				}
				printLevelChange(cmd, *after, before.Memory.Level)
				return nil
			})
		},
	}
}

func printLevelChange(cmd *cobra.Command, t term.Term, before memory.Level) {
	if before == t.Memory.Level {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: level stays at %s\n", t.Term, t.Memory.Level)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: level %s -> %s, due %s\n",
		t.Term, before, t.Memory.Level, t.Memory.SuspendUntil.Local().Format("2006-01-02 15:04"))
}

func newReviewSetCommand() *cobra.Command {
	var level int
	var suspendUntil string

	command := &cobra.Command{
		Use:   "set <id>",
		Short: "Set the level or the suspension of a term directly",
		Long: "Set the level or the suspension of a term directly.\n" +
			"A level alone suspends the term for the duration of that level from now.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var override memory.Override
			if cmd.Flags().Changed("level") {
				l := memory.Level(level)
				override.Level = &l
			}
			if suspendUntil != "" {
				t, err := parseTime(suspendUntil)
				if err != nil {
					return err
				}
				override.SuspendUntil = &t
			}
			if override.IsEmpty() {
				return errors.New("pass --level, --suspend-until, or both")
			}

			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				before, err := vocab.GetTerm(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("GetTerm() > %w", err)
				}
				after, err := vocab.OverrideMemory(cmd.Context(), id, override)
				if err != nil {
					return fmt.Errorf("OverrideMemory() > %w", err)
				}
				printLevelChange(cmd, *after, before.Memory.Level)
				return nil
			})
		},
	}

	command.Flags().IntVar(&level, "level", 0, "level from 1 to 6")
	command.Flags().StringVar(&suspendUntil, "suspend-until", "", "RFC 3339 time until which the term is not due")
	return command
}

// dueFlags narrows the review section of the configuration from the command line.
type dueFlags struct {
	levels []int
	tags   []string
	all    bool
	until  string
}

func (f *dueFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&f.levels, "level", nil, "only these levels (default from review.levels)")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "only terms with any of these tags (default from review.tags)")
	cmd.Flags().BoolVar(&f.all, "all", false, "ignore suspensions")
	cmd.Flags().StringVar(&f.until, "until", "", "RFC 3339 time to evaluate suspensions at (default now)")
}

func (f *dueFlags) filter(cmd *cobra.Command, cfg *config.Config, now time.Time) (term.DueFilter, error) {
	review := cfg.Review
	if cmd.Flags().Changed("level") {
		review.Levels = f.levels
	}
	if cmd.Flags().Changed("tag") {
		review.Tags = f.tags
	}
	if f.until != "" {
		t, err := parseTime(f.until)
		if err != nil {
			return term.DueFilter{}, err
		}
		now = t
		review.UseSuspension = true
	}
	if f.all {
		review.UseSuspension = false
	}

	filter := vocabulary.ReviewFilter(review, now)
	if err := filter.Validate(); err != nil {
		return term.DueFilter{}, fmt.Errorf("--level: %w", err)
	}
	return filter, nil
}

func newDueCommand() *cobra.Command {
	var flags dueFlags

	command := &cobra.Command{
		Use:   "due",
		Short: "List the terms due for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVocabulary(func(cfg *config.Config, vocab vocabulary.Vocabulary) error {
				now := time.Now()
				filter, err := flags.filter(cmd, cfg, now)
				if err != nil {
					return err
				}
				terms, err := vocab.SelectDue(cmd.Context(), filter)
				if err != nil {
					return fmt.Errorf("SelectDue() > %w", err)
				}

				printer := cli.NewTermPrinter(cmd.OutOrStdout())
				for _, t := range terms {
					printer.PrintLine(t, now)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d term(s) due\n", len(terms))
				return nil
			})
		},
	}

	flags.register(command)
	return command
}

func newPlayCommand() *cobra.Command {
	var flags dueFlags
	var ordered bool

	command := &cobra.Command{
		Use:   "play",
		Short: "Review due terms interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVocabulary(func(cfg *config.Config, vocab vocabulary.Vocabulary) error {
				filter, err := flags.filter(cmd, cfg, time.Now())
				if err != nil {
					return err
				}

				reviewCLI, err := cli.NewReviewCLI(cmd.Context(), vocab, filter, cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if reviewCLI.GetTermCount() == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No terms to review.")
					return nil
				}
				if !ordered {
					reviewCLI.ShuffleTerms()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Starting review with %d terms\n\n", reviewCLI.GetTermCount())

				return reviewCLI.Run(cmd.Context(), reviewCLI)
			})
		},
	}

	flags.register(command)
	command.Flags().BoolVar(&ordered, "ordered", false, "review in id order instead of shuffling")
	return command
}
