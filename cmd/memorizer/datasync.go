package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memorizer/internal/config"
	"github.com/at-ishikawa/memorizer/internal/datasync"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.yml|file.xlsx>",
		Short: "Export every term with its memory state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := datasync.FormatFromPath(path)
			if err != nil {
				return err
			}

			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				records, err := datasync.NewExporter(vocab).Export(cmd.Context())
				if err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}

				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("os.Create(%s) > %w", path, err)
				}
				if err := datasync.Write(f, format, records); err != nil {
					_ = f.Close()
					return fmt.Errorf("datasync.Write() > %w", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("f.Close() > %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d term(s) to %s\n", len(records), path)
				return nil
			})
		},
	}
}

func newImportCommand() *cobra.Command {
	var opts datasync.ImportOptions

	command := &cobra.Command{
		Use:   "import <file.yml|file.xlsx>",
		Short: "Import terms as new terms, keeping their memory state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := datasync.FormatFromPath(path)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("os.Open(%s) > %w", path, err)
			}
			records, err := datasync.Read(f, format)
			_ = f.Close()
			if err != nil {
				return fmt.Errorf("datasync.Read(%s) > %w", path, err)
			}

			return withVocabulary(func(_ *config.Config, vocab vocabulary.Vocabulary) error {
				out := cmd.OutOrStdout()
				result, err := datasync.NewImporter(vocab, out).Import(cmd.Context(), records, opts)
				if err != nil {
					return fmt.Errorf("importer.Import() > %w", err)
				}

				fmt.Fprintln(out, "\nImport Summary:")
				if opts.DryRun {
					fmt.Fprintln(out, "  (dry-run mode, no changes made)")
				}
				fmt.Fprintf(out, "  Terms: %d new, %d skipped, %d invalid\n", result.TermsNew, result.TermsSkipped, result.TermsInvalid)
				return nil
			})
		},
	}

	command.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Preview changes without modifying the database")
	command.Flags().BoolVar(&opts.SkipExisting, "skip-existing", false, "Skip terms whose text is already stored")
	return command
}
