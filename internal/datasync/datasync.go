// Package datasync provides import/export of terms between files and a vocabulary.
package datasync

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/at-ishikawa/memorizer/internal/term"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

// ImportResult tracks counts of an import.
type ImportResult struct {
	TermsNew     int
	TermsSkipped int
	TermsInvalid int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
	// SkipExisting skips records whose term text is already stored, or appeared earlier in the file.
	SkipExisting bool
}

// Importer creates terms from records.
type Importer struct {
	vocab  vocabulary.Vocabulary
	writer io.Writer
	now    func() time.Time
}

// NewImporter creates a new Importer that reports each record to writer.
func NewImporter(vocab vocabulary.Vocabulary, writer io.Writer) *Importer {
	return &Importer{
		vocab:  vocab,
		writer: writer,
		now:    time.Now,
	}
}

// Import creates a term per record, keeping its memory state and creation time.
// Records rejected as invalid are reported and counted; any other failure stops the import.
func (imp *Importer) Import(ctx context.Context, records []Record, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	seen := make(map[string]bool)
	if opts.SkipExisting {
		existing, err := imp.vocab.ListTerms(ctx)
		if err != nil {
			return nil, fmt.Errorf("ListTerms() > %w", err)
		}
		for _, t := range existing {
			seen[t.Term] = true
		}
	}

	for _, r := range records {
		text := strings.TrimSpace(r.Term)
		if opts.SkipExisting && seen[text] {
			fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", text)
			result.TermsSkipped++
			continue
		}

		if opts.DryRun {
			if text == "" {
				fmt.Fprintf(imp.writer, "  [INVALID]  %q: term is required\n", r.Term)
				result.TermsInvalid++
				continue
			}
		} else {
			created, err := imp.vocab.CreateTerm(ctx, r.toNewTerm(imp.now()))
			if errors.Is(err, vocabulary.ErrInvalidInput) {
				fmt.Fprintf(imp.writer, "  [INVALID]  %q: %v\n", r.Term, err)
				result.TermsInvalid++
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("CreateTerm(%s) > %w", text, err)
			}
			text = created.Term
		}

		seen[text] = true
		fmt.Fprintf(imp.writer, "  [NEW]  %q\n", text)
		result.TermsNew++
	}

	return &result, nil
}

// Exporter reads every term of a vocabulary.
type Exporter struct {
	vocab vocabulary.Vocabulary
}

// NewExporter creates a new Exporter.
func NewExporter(vocab vocabulary.Vocabulary) *Exporter {
	return &Exporter{vocab: vocab}
}

// Export returns every term as a record, oldest first, so that importing the result
// recreates the terms in their original order.
func (e *Exporter) Export(ctx context.Context) ([]Record, error) {
	terms, err := e.vocab.ListTerms(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTerms() > %w", err)
	}
	slices.SortFunc(terms, func(a, b term.Term) int {
		return cmp.Compare(a.ID, b.ID)
	})

	records := make([]Record, 0, len(terms))
	for _, t := range terms {
		records = append(records, recordFromTerm(t))
	}
	return records, nil
}
