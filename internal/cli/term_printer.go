package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/memorizer/internal/term"
)

// TermPrinter writes terms for humans.
type TermPrinter struct {
	w      io.Writer
	bold   *color.Color
	italic *color.Color
	faint  *color.Color
}

// NewTermPrinter creates a printer writing to w.
func NewTermPrinter(w io.Writer) *TermPrinter {
	return &TermPrinter{
		w:      w,
		bold:   color.New(color.Bold),
		italic: color.New(color.Italic),
		faint:  color.New(color.Faint),
	}
}

// Print writes every field of t. Times are shown relative to now.
func (p *TermPrinter) Print(t term.Term, now time.Time) {
	header := p.bold.Sprint(t.Term)
	if t.Pronounce != "" {
		header += " " + p.italic.Sprintf("[%s]", t.Pronounce)
	}
	if t.LookUp != "" {
		header += " " + p.faint.Sprintf("(look up: %s)", t.LookUp)
	}
	_, _ = fmt.Fprintf(p.w, "#%d %s\n", t.ID, header)

	if t.Note != "" {
		for _, line := range strings.Split(strings.TrimRight(t.Note, "\n"), "\n") {
			_, _ = fmt.Fprintf(p.w, "  %s\n", line)
		}
	}
	if len(t.Tags) > 0 {
		_, _ = fmt.Fprintf(p.w, "  tags: %s\n", strings.Join(t.TagNames(), ", "))
	}
	for _, v := range t.Videos {
		_, _ = fmt.Fprintf(p.w, "  video %d: %s (%s-%s)\n", v.Order+1, v.URL, v.Start, v.End)
	}
	_, _ = fmt.Fprintf(p.w, "  level %s, %s\n", t.Memory.Level, describeDue(t.Memory.SuspendUntil, now))
}

// PrintLine writes t as one line.
func (p *TermPrinter) PrintLine(t term.Term, now time.Time) {
	tags := ""
	if len(t.Tags) > 0 {
		tags = " " + p.faint.Sprintf("[%s]", strings.Join(t.TagNames(), ", "))
	}
	_, _ = fmt.Fprintf(p.w, "%5d  %s  L%s  %s%s\n",
		t.ID, p.bold.Sprint(t.Term), t.Memory.Level, describeDue(t.Memory.SuspendUntil, now), tags)
}

func describeDue(suspendUntil, now time.Time) string {
	if !suspendUntil.After(now) {
		return "due now"
	}
	return fmt.Sprintf("due %s (in %s)",
		suspendUntil.Local().Format("2006-01-02 15:04"),
		suspendUntil.Sub(now).Round(time.Minute))
}
