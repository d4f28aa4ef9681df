package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

// ReviewCLI manages the interactive session over the due terms
type ReviewCLI struct {
	*InteractiveReviewCLI
	printer *TermPrinter
	terms   []term.Term

	strengthened int
	weakened     int
	skipped      int
}

// NewReviewCLI loads the terms selected by filter and prepares a session over them.
func NewReviewCLI(
	ctx context.Context,
	vocab vocabulary.Vocabulary,
	filter term.DueFilter,
	stdin io.Reader,
	stdout io.Writer,
) (*ReviewCLI, error) {
	baseCLI := newInteractiveReviewCLI(vocab, stdin, stdout)

	terms, err := vocab.SelectDue(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("vocab.SelectDue() > %w", err)
	}

	return &ReviewCLI{
		InteractiveReviewCLI: baseCLI,
		printer:              NewTermPrinter(baseCLI.stdoutWriter),
		terms:                terms,
	}, nil
}

// ShuffleTerms shuffles the remaining terms
func (r *ReviewCLI) ShuffleTerms() {
	rand.Shuffle(len(r.terms), func(i, j int) {
		r.terms[i], r.terms[j] = r.terms[j], r.terms[i]
	})
}

// GetTermCount returns the number of remaining terms
func (r *ReviewCLI) GetTermCount() int {
	return len(r.terms)
}

func (r *ReviewCLI) nextTerm() *term.Term {
	if len(r.terms) == 0 {
		return nil
	}
	return &r.terms[0]
}

func (r *ReviewCLI) removeCurrentTerm() {
	if len(r.terms) > 0 {
		r.terms = r.terms[1:]
	}
}

// Session reviews one term.
func (r *ReviewCLI) Session(ctx context.Context) error {
	current := r.nextTerm()
	if current == nil {
		_, _ = fmt.Fprintln(r.stdoutWriter, "No more terms to review!")
		_, _ = fmt.Fprintf(r.stdoutWriter, "strengthened: %d, weakened: %d, skipped: %d\n",
			r.strengthened, r.weakened, r.skipped)
		return errEnd
	}

	r.printer.Print(*current, r.now())
	_, _ = r.bold.Fprint(r.stdoutWriter, "[s]trengthen [w]eaken [n]ext [q]uit: ")

	input, err := r.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(input) == "" {
			return errEnd
		}
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("error reading input: %w", err)
		}
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "s":
		updated, err := r.vocab.AdvanceFamiliarity(ctx, current.ID, memory.Strengthen)
		if err != nil {
			return fmt.Errorf("vocab.AdvanceFamiliarity(%d) > %w", current.ID, err)
		}
		r.strengthened++
		r.printOutcome(color.New(color.FgGreen), "✅", current.Memory, updated.Memory)
	case "w":
		updated, err := r.vocab.AdvanceFamiliarity(ctx, current.ID, memory.Weaken)
		if err != nil {
			return fmt.Errorf("vocab.AdvanceFamiliarity(%d) > %w", current.ID, err)
		}
		r.weakened++
		r.printOutcome(color.New(color.FgRed), "❌", current.Memory, updated.Memory)
	case "n":
		r.skipped++
	case "q":
		return errEnd
	default:
		_, _ = fmt.Fprintf(r.stdoutWriter, "Unknown input %q\n\n", strings.TrimSpace(input))
		return nil
	}

	_, _ = fmt.Fprintln(r.stdoutWriter)
	r.removeCurrentTerm()
	return nil
}

func (r *ReviewCLI) printOutcome(c *color.Color, mark string, before, after memory.Memory) {
	if before.Level == after.Level {
		_, _ = c.Fprintf(r.stdoutWriter, "%s level stays at %s, %s\n", mark, after.Level, describeDue(after.SuspendUntil, r.now()))
		return
	}
	_, _ = c.Fprintf(r.stdoutWriter, "%s level %s -> %s, %s\n", mark, before.Level, after.Level, describeDue(after.SuspendUntil, r.now()))
}
