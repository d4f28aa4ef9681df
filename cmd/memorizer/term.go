package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memorizer/internal/cli"
	"github.com/at-ishikawa/memorizer/internal/config"
	"github.com/at-ishikawa/memorizer/internal/term"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

func newTermCommand() *cobra.Command {
	termCommand := &cobra.Command{
		Use:   "term",
		Short: "Manage vocabulary terms",
	}

	termCommand.AddCommand(newTermAddCommand())
	termCommand.AddCommand(newTermShowCommand())
	termCommand.AddCommand(newTermListCommand())
	termCommand.AddCommand(newTermEditCommand())
	termCommand.AddCommand(newTermDeleteCommand())

	return termCommand
}

func newTermAddCommand() *cobra.Command {
	var input vocabulary.NewTerm
	var videos []string

	command := &cobra.Command{
		Use:   "add <term>",
		Short: "Add a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Term = args[0]
			input.Videos = parseVideos(videos)

			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				created, err := vocab.CreateTerm(cmd.Context(), input)
				if err != nil {
					return fmt.Errorf("CreateTerm() > %w", err)
				}
				if dropped := len(input.Videos) - len(created.Videos); dropped > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%d invalid video(s) were dropped\n", dropped)
				}
				cli.NewTermPrinter(cmd.OutOrStdout()).Print(*created, time.Now())
				return nil
			})
		},
	}

	command.Flags().StringVar(&input.Note, "note", "", "free text note")
	command.Flags().StringVar(&input.LookUp, "look-up", "", "what to look up for the term")
	command.Flags().StringVar(&input.Pronounce, "pronounce", "", "pronunciation")
	command.Flags().StringSliceVar(&input.Tags, "tag", nil, "tags of the term")
	command.Flags().StringArrayVar(&videos, "video", nil, "YouTube clip as url[,start[,end]]; repeatable")
	return command
}

func newTermShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				t, err := vocab.GetTerm(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("GetTerm() > %w", err)
				}
				cli.NewTermPrinter(cmd.OutOrStdout()).Print(*t, time.Now())
				return nil
			})
		},
	}
}

func newTermListCommand() *cobra.Command {
	var tags []string

	command := &cobra.Command{
		Use:   "list",
		Short: "List terms, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				terms, err := vocab.ListTerms(cmd.Context())
				if err != nil {
					return fmt.Errorf("ListTerms() > %w", err)
				}

				printer := cli.NewTermPrinter(cmd.OutOrStdout())
				now := time.Now()
				count := 0
				for _, t := range terms {
					if len(tags) > 0 && !t.HasAnyTag(tags) {
						continue
					}
					printer.PrintLine(t, now)
					count++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d term(s)\n", count)
				return nil
			})
		},
	}

	command.Flags().StringSliceVar(&tags, "tag", nil, "only list terms with any of these tags")
	return command
}

func newTermEditCommand() *cobra.Command {
	var (
		text, note, lookUp, pronounce string
		tags, videos                  []string
		clearTags, clearVideos        bool
	)

	command := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the given fields of a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			update := term.Update{ID: id}
			if flags.Changed("term") {
				update.Term = &text
			}
			if flags.Changed("note") {
				update.Note = &note
			}
			if flags.Changed("look-up") {
				update.LookUp = &lookUp
			}
			if flags.Changed("pronounce") {
				update.Pronounce = &pronounce
			}
			if flags.Changed("tag") || clearTags {
				replaced := append([]string{}, tags...)
				update.Tags = &replaced
			}
			if flags.Changed("video") || clearVideos {
				replaced := parseVideos(videos)
				update.Videos = &replaced
			}
			if update == (term.Update{ID: id}) {
				return errors.New("nothing to update; pass at least one field flag")
			}

			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				updated, err := vocab.UpdateTerm(cmd.Context(), update)
				if err != nil {
					return fmt.Errorf("UpdateTerm() > %w", err)
				}
				cli.NewTermPrinter(cmd.OutOrStdout()).Print(*updated, time.Now())
				return nil
			})
		},
	}

	command.Flags().StringVar(&text, "term", "", "new term text")
	command.Flags().StringVar(&note, "note", "", "new note")
	command.Flags().StringVar(&lookUp, "look-up", "", "new look up text")
	command.Flags().StringVar(&pronounce, "pronounce", "", "new pronunciation")
	command.Flags().StringSliceVar(&tags, "tag", nil, "replace the tags")
	command.Flags().StringArrayVar(&videos, "video", nil, "replace the videos; url[,start[,end]], repeatable")
	command.Flags().BoolVar(&clearTags, "clear-tags", false, "remove every tag")
	command.Flags().BoolVar(&clearVideos, "clear-videos", false, "remove every video")
	return command
}

func newTermDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete terms with their videos, tags, and memory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				if err := vocab.DeleteTerms(cmd.Context(), ids); err != nil {
					return fmt.Errorf("DeleteTerms() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d term(s)\n", len(ids))
				return nil
			})
		},
	}
}

func newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				tags, err := vocab.ListTags(cmd.Context())
				if err != nil {
					return fmt.Errorf("ListTags() > %w", err)
				}
				for _, tag := range tags {
					fmt.Fprintln(cmd.OutOrStdout(), tag)
				}
				return nil
			})
		},
	}
}
