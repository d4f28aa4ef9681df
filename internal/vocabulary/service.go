// Package vocabulary exposes the operations of the memorizer to its presentation layers:
// term management, review advancement, and due-term selection.
package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
)

// cacheTTL bounds how long a term read concurrently with a write can stay stale.
const cacheTTL = time.Minute

//go:generate mockgen -source=service.go -destination=../mocks/vocabulary/mock_vocabulary.go -package=mock_vocabulary Vocabulary

// Vocabulary is implemented by the local Service and by the HTTP client.
type Vocabulary interface {
	CreateTerm(ctx context.Context, n NewTerm) (*term.Term, error)
	GetTerm(ctx context.Context, id int64) (*term.Term, error)
	UpdateTerm(ctx context.Context, u term.Update) (*term.Term, error)
	DeleteTerms(ctx context.Context, ids []int64) error
	ListTerms(ctx context.Context) ([]term.Term, error)
	ListTags(ctx context.Context) ([]string, error)
	AdvanceFamiliarity(ctx context.Context, id int64, d memory.Direction) (*term.Term, error)
	OverrideMemory(ctx context.Context, id int64, o memory.Override) (*term.Term, error)
	SelectDue(ctx context.Context, filter term.DueFilter) ([]term.Term, error)
}

var _ Vocabulary = (*Service)(nil)

// Config configures a Service.
type Config struct {
	// CacheMaxTerms bounds the number of cached terms. Zero disables the cache.
	CacheMaxTerms int64
	Logger        *slog.Logger
}

// Service implements Vocabulary on a term.Repository.
type Service struct {
	repo      term.Repository
	cache     *ristretto.Cache[int64, term.Term]
	validator *inputValidator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a Service backed by repo.
func NewService(repo term.Repository, cfg Config) (*Service, error) {
	v, err := newInputValidator()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		repo:      repo,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
	if cfg.CacheMaxTerms > 0 {
		// every term costs 1, so MaxCost is a count of terms
		s.cache, err = ristretto.NewCache(&ristretto.Config[int64, term.Term]{
			NumCounters:        cfg.CacheMaxTerms * 10,
			MaxCost:            cfg.CacheMaxTerms,
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, fmt.Errorf("ristretto.NewCache() > %w", err)
		}
	}
	return s, nil
}

// Close releases the cache.
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// CreateTerm stores a new term. Invalid video clips are dropped and, unless n carries one,
// the term starts at level 1 and is due immediately.
func (s *Service) CreateTerm(ctx context.Context, n NewTerm) (*term.Term, error) {
	if err := s.validator.newTerm(n); err != nil {
		return nil, err
	}

	t := n.toTerm(s.now())
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, s.classify("repo.Create()", err)
	}
	s.logger.Debug("term created", "id", t.ID, "term", t.Term, "videos", len(t.Videos), "tags", len(t.Tags))
	return t, nil
}

// GetTerm returns a term with its videos, tags, and memory.
func (s *Service) GetTerm(ctx context.Context, id int64) (*term.Term, error) {
	if s.cache != nil {
		if t, ok := s.cache.Get(id); ok {
			return cloneTerm(t), nil
		}
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify("repo.FindByID()", err)
	}
	s.remember(*t)
	return t, nil
}

// UpdateTerm replaces the provided fields of a term and returns the stored result.
func (s *Service) UpdateTerm(ctx context.Context, u term.Update) (*term.Term, error) {
	if err := s.validator.update(u); err != nil {
		return nil, err
	}
	if u.Term != nil {
		trimmed := strings.TrimSpace(*u.Term)
		u.Term = &trimmed
	}

	s.forget(u.ID)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, s.classify("repo.Update()", err)
	}
	s.forget(u.ID)
	return s.reload(ctx, u.ID)
}

// DeleteTerms removes terms with everything they own. Unknown ids are ignored.
func (s *Service) DeleteTerms(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if id <= 0 {
			return invalidInput("id %d must be positive", id)
		}
	}
	s.forget(ids...)
	if err := s.repo.Delete(ctx, ids); err != nil {
		return s.classify("repo.Delete()", err)
	}
	// a read racing the delete may have cached the old row
	s.forget(ids...)
	s.logger.Debug("terms deleted", "ids", ids)
	return nil
}

// ListTerms returns every term, newest first.
func (s *Service) ListTerms(ctx context.Context) ([]term.Term, error) {
	terms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.classify("repo.FindAll()", err)
	}
	return terms, nil
}

// ListTags returns the distinct tag texts in ascending order.
func (s *Service) ListTags(ctx context.Context) ([]string, error) {
	tags, err := s.repo.FindAllTags(ctx)
	if err != nil {
		return nil, s.classify("repo.FindAllTags()", err)
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Tag)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// AdvanceFamiliarity applies a review outcome to a term's memory. Strengthening at the top
// level and weakening at the bottom level leave the memory unchanged.
func (s *Service) AdvanceFamiliarity(ctx context.Context, id int64, d memory.Direction) (*term.Term, error) {
	if _, err := memory.ParseDirection(string(d)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify("repo.FindByID()", err)
	}

	now := s.now()
	next, changed, err := t.Memory.Advance(d, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !changed {
		s.logger.Debug("familiarity unchanged", "id", id, "direction", d, "level", t.Memory.Level)
		s.remember(*t)
		return t, nil
	}

	s.forget(id)
	if err := s.repo.UpdateMemory(ctx, next); err != nil {
		return nil, s.classify("repo.UpdateMemory()", err)
	}
	s.forget(id)
	s.logger.Debug("familiarity advanced",
		"id", id,
		"direction", d,
		"from", t.Memory.Level,
		"to", next.Level,
		"suspend_until", next.SuspendUntil)
	return s.reload(ctx, id)
}

// OverrideMemory sets a term's level, suspension, or both. A level given alone suspends the
// term for that level's duration from now.
func (s *Service) OverrideMemory(ctx context.Context, id int64, o memory.Override) (*term.Term, error) {
	if o.IsEmpty() {
		return nil, invalidInput("either level or suspend_until is required")
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify("repo.FindByID()", err)
	}
	next, err := o.Apply(t.Memory, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.forget(id)
	if err := s.repo.UpdateMemory(ctx, next); err != nil {
		return nil, s.classify("repo.UpdateMemory()", err)
	}
	s.forget(id)
	s.logger.Debug("memory overridden", "id", id, "level", next.Level, "suspend_until", next.SuspendUntil)
	return s.reload(ctx, id)
}

// SelectDue returns the terms selected by filter, ordered by id.
func (s *Service) SelectDue(ctx context.Context, filter term.DueFilter) ([]term.Term, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	terms, err := s.repo.FindDue(ctx, filter)
	if err != nil {
		return nil, s.classify("repo.FindDue()", err)
	}
	return terms, nil
}

func (s *Service) reload(ctx context.Context, id int64) (*term.Term, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify("repo.FindByID()", err)
	}
	s.remember(*t)
	return t, nil
}

func (s *Service) remember(t term.Term) {
	if s.cache != nil {
		s.cache.SetWithTTL(t.ID, *cloneTerm(t), 1, cacheTTL)
	}
}

// cloneTerm copies t so that callers never share slices with a cached term.
func cloneTerm(t term.Term) *term.Term {
	t.Videos = slices.Clone(t.Videos)
	t.Tags = slices.Clone(t.Tags)
	return &t
}

func (s *Service) forget(ids ...int64) {
	if s.cache == nil {
		return
	}
	for _, id := range ids {
		s.cache.Del(id)
	}
}
