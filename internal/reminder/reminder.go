// Package reminder periodically reports how many terms are due for review.
package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/at-ishikawa/memorizer/internal/config"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

// Reminder counts the terms selected by the review configuration on a schedule.
type Reminder struct {
	vocab     vocabulary.Vocabulary
	review    config.ReviewConfig
	interval  time.Duration
	writer    io.Writer
	logger    *slog.Logger
	now       func() time.Time
	scheduler *gocron.Scheduler
}

// New creates a reminder that prints to writer every cfg.Reminder.IntervalMinutes.
func New(vocab vocabulary.Vocabulary, cfg *config.Config, writer io.Writer, logger *slog.Logger) *Reminder {
	if logger == nil {
		logger = slog.Default()
	}
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	return &Reminder{
		vocab:     vocab,
		review:    cfg.Review,
		interval:  time.Duration(cfg.Reminder.IntervalMinutes) * time.Minute,
		writer:    writer,
		logger:    logger,
		now:       time.Now,
		scheduler: scheduler,
	}
}

// Check counts due terms once and prints a reminder when there is at least one.
func (r *Reminder) Check(ctx context.Context) (int, error) {
	now := r.now()
	terms, err := r.vocab.SelectDue(ctx, vocabulary.ReviewFilter(r.review, now))
	if err != nil {
		return 0, fmt.Errorf("SelectDue() > %w", err)
	}

	count := len(terms)
	if count == 0 {
		r.logger.Debug("no terms due", "at", now)
		return 0, nil
	}
	r.logger.Info("terms due", "count", count, "at", now)
	fmt.Fprintf(r.writer, "[%s] %d %s due for review\n", now.Format("2006-01-02 15:04"), count, plural(count))
	return count, nil
}

func plural(count int) string {
	if count == 1 {
		return "term is"
	}
	return "terms are"
}

// Start schedules the check, running it once immediately. Failures are logged and the
// schedule keeps going.
func (r *Reminder) Start(ctx context.Context) error {
	_, err := r.scheduler.Every(r.interval).Do(func() {
		if _, err := r.Check(ctx); err != nil {
			r.logger.Error("reminder check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler.Every(%s).Do() > %w", r.interval, err)
	}

	r.scheduler.StartAsync()
	r.logger.Info("reminder started", "interval", r.interval)
	return nil
}

// Stop terminates the schedule.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
	r.logger.Info("reminder stopped")
}

// Run starts the reminder and blocks until ctx is done.
func (r *Reminder) Run(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	r.Stop()
	return nil
}
