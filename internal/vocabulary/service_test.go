package vocabulary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/memorizer/internal/memory"
	mock_term "github.com/at-ishikawa/memorizer/internal/mocks/term"
	"github.com/at-ishikawa/memorizer/internal/term"
)

var testNow = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, repo term.Repository, cacheSize int64) (*Service, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	s, err := NewService(repo, Config{
		CacheMaxTerms: cacheSize,
		Logger:        slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	require.NoError(t, err)
	s.now = func() time.Time { return testNow }
	t.Cleanup(s.Close)
	return s, &logs
}

func storedTerm(id int64, level memory.Level) *term.Term {
	return &term.Term{
		ID:     id,
		Term:   fmt.Sprintf("term-%d", id),
		Memory: memory.Memory{ID: id * 10, TermID: id, Level: level, SuspendUntil: testNow.Add(-time.Hour)},
	}
}

func TestService_CreateTerm(t *testing.T) {
	tests := []struct {
		name      string
		input     NewTerm
		setup     func(repo *mock_term.MockRepository)
		wantErrIs error
		wantErrAs bool
	}{
		{
			name:  "stores a trimmed term at creation time",
			input: NewTerm{Term: "  serendipity ", Note: "luck", Tags: []string{"toeic"}},
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got *term.Term) error {
					assert.Equal(t, "serendipity", got.Term)
					assert.Equal(t, testNow, got.CreatedAt)
					assert.Equal(t, []string{"toeic"}, got.TagNames())
					assert.Zero(t, got.Memory.Level)
					got.ID = 1
					return nil
				})
			},
		},
		{
			name: "keeps an imported memory",
			input: NewTerm{
				Term:   "ubiquitous",
				Memory: &memory.Memory{Level: memory.Level4, SuspendUntil: testNow.Add(time.Hour)},
			},
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got *term.Term) error {
					assert.Equal(t, memory.Level4, got.Memory.Level)
					assert.Equal(t, testNow.Add(time.Hour), got.Memory.SuspendUntil)
					return nil
				})
			},
		},
		{
			name:  "a level without suspension is due at creation",
			input: NewTerm{Term: "abide", Memory: &memory.Memory{Level: memory.Level3}},
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got *term.Term) error {
					assert.Equal(t, memory.Level3, got.Memory.Level)
					assert.Equal(t, testNow, got.Memory.SuspendUntil)
					return nil
				})
			},
		},
		{
			name: "a level without suspension is due at the imported creation time",
			input: NewTerm{
				Term:      "abide",
				Memory:    &memory.Memory{Level: memory.Level2},
				CreatedAt: testNow.AddDate(0, -1, 0),
			},
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got *term.Term) error {
					assert.Equal(t, testNow.AddDate(0, -1, 0), got.CreatedAt)
					assert.Equal(t, testNow.AddDate(0, -1, 0), got.Memory.SuspendUntil)
					return nil
				})
			},
		},
		{
			name:      "empty term",
			input:     NewTerm{Term: ""},
			setup:     func(repo *mock_term.MockRepository) {},
			wantErrIs: ErrInvalidInput,
		},
		{
			name:      "blank term",
			input:     NewTerm{Term: " \t"},
			setup:     func(repo *mock_term.MockRepository) {},
			wantErrIs: ErrInvalidInput,
		},
		{
			name:      "invalid imported level",
			input:     NewTerm{Term: "word", Memory: &memory.Memory{Level: memory.Level(9)}},
			setup:     func(repo *mock_term.MockRepository) {},
			wantErrIs: ErrInvalidInput,
		},
		{
			name:  "storage failure",
			input: NewTerm{Term: "word"},
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("database is locked"))
			},
			wantErrAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_term.NewMockRepository(ctrl)
			tt.setup(repo)
			s, logs := newTestService(t, repo, 0)

			got, err := s.CreateTerm(context.Background(), tt.input)
			switch {
			case tt.wantErrIs != nil:
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, got)
			case tt.wantErrAs:
				var storageErr *StorageError
				require.ErrorAs(t, err, &storageErr)
				assert.Equal(t, "repo.Create()", storageErr.Op)
				assert.EqualError(t, errors.Unwrap(err), "database is locked")
				assert.Contains(t, logs.String(), "storage failure")
			default:
				require.NoError(t, err)
				assert.NotNil(t, got)
			}
		})
	}
}

func TestService_GetTerm(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_term.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(3)).Return(nil, fmt.Errorf("id=3: %w", term.ErrNotFound))
		s, logs := newTestService(t, repo, 10)

		_, err := s.GetTerm(context.Background(), 3)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotContains(t, logs.String(), "storage failure")
	})

	t.Run("served from cache until a write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_term.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level1), nil).Times(1)
		s, _ := newTestService(t, repo, 10)

		first, err := s.GetTerm(context.Background(), 1)
		require.NoError(t, err)
		s.cache.Wait()

		second, err := s.GetTerm(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		note := "changed"
		updated := storedTerm(1, memory.Level1)
		updated.Note = note
		repo.EXPECT().Update(gomock.Any(), term.Update{ID: 1, Note: &note}).Return(nil)
		repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(updated, nil)

		got, err := s.UpdateTerm(context.Background(), term.Update{ID: 1, Note: &note})
		require.NoError(t, err)
		assert.Equal(t, note, got.Note)
	})

	t.Run("delete invalidates the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_term.NewMockRepository(ctrl)
		gomock.InOrder(
			repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level1), nil),
			repo.EXPECT().Delete(gomock.Any(), []int64{1}).Return(nil),
			repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, term.ErrNotFound),
		)
		s, _ := newTestService(t, repo, 10)

		_, err := s.GetTerm(context.Background(), 1)
		require.NoError(t, err)
		s.cache.Wait()

		require.NoError(t, s.DeleteTerms(context.Background(), []int64{1}))
		_, err = s.GetTerm(context.Background(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("a read during a delete is not served afterwards", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_term.NewMockRepository(ctrl)
		s, _ := newTestService(t, repo, 10)
		gomock.InOrder(
			repo.EXPECT().Delete(gomock.Any(), []int64{1}).DoAndReturn(func(ctx context.Context, _ []int64) error {
				_, err := s.GetTerm(ctx, 1)
				require.NoError(t, err)
				s.cache.Wait()
				return nil
			}),
			repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level1), nil),
			repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, term.ErrNotFound),
		)

		require.NoError(t, s.DeleteTerms(context.Background(), []int64{1}))
		s.cache.Wait()
		_, err := s.GetTerm(context.Background(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("a read during an update is not served afterwards", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_term.NewMockRepository(ctrl)
		s, _ := newTestService(t, repo, 10)
		note := "changed"
		updated := storedTerm(1, memory.Level1)
		updated.Note = note
		gomock.InOrder(
			repo.EXPECT().Update(gomock.Any(), term.Update{ID: 1, Note: &note}).DoAndReturn(func(ctx context.Context, _ term.Update) error {
				_, err := s.GetTerm(ctx, 1)
				require.NoError(t, err)
				s.cache.Wait()
				return nil
			}),
			repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level1), nil),
			repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(updated, nil),
		)

		got, err := s.UpdateTerm(context.Background(), term.Update{ID: 1, Note: &note})
		require.NoError(t, err)
		assert.Equal(t, note, got.Note)
		s.cache.Wait()

		cached, err := s.GetTerm(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, note, cached.Note)
	})

	t.Run("callers do not share slices with the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_term.NewMockRepository(ctrl)
		stored := storedTerm(1, memory.Level1)
		stored.Tags = []term.Tag{{ID: 1, TermID: 1, Tag: "toeic"}}
		stored.Videos = []term.Video{{ID: 1, TermID: 1, URL: "https://www.youtube.com/watch?v=abc", Start: "0:01", End: "0:05"}}
		repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(stored, nil).Times(1)
		s, _ := newTestService(t, repo, 10)

		first, err := s.GetTerm(context.Background(), 1)
		require.NoError(t, err)
		s.cache.Wait()
		first.Tags[0].Tag = "mutated"
		first.Videos[0].URL = "mutated"

		second, err := s.GetTerm(context.Background(), 1)
		require.NoError(t, err)
		second.Tags[0].Tag = "mutated again"

		third, err := s.GetTerm(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "toeic", third.Tags[0].Tag)
		assert.Equal(t, "https://www.youtube.com/watch?v=abc", third.Videos[0].URL)
	})
}

func TestService_UpdateTerm_Validation(t *testing.T) {
	blank := "  "
	tests := []struct {
		name   string
		update term.Update
	}{
		{"missing id", term.Update{}},
		{"blank term", term.Update{ID: 1, Term: &blank}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			s, _ := newTestService(t, mock_term.NewMockRepository(ctrl), 0)

			_, err := s.UpdateTerm(context.Background(), tt.update)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_AdvanceFamiliarity(t *testing.T) {
	tests := []struct {
		name      string
		direction memory.Direction
		setup     func(repo *mock_term.MockRepository)
		wantLevel memory.Level
		wantErrIs error
	}{
		{
			name:      "strengthen moves up one level and suspends from now",
			direction: memory.Strengthen,
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level2), nil)
				repo.EXPECT().UpdateMemory(gomock.Any(), memory.Memory{
					ID: 10, TermID: 1, Level: memory.Level3, SuspendUntil: testNow.AddDate(0, 0, 1),
				}).Return(nil)
				repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level3), nil)
			},
			wantLevel: memory.Level3,
		},
		{
			name:      "weaken moves down one level",
			direction: memory.Weaken,
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level2), nil)
				repo.EXPECT().UpdateMemory(gomock.Any(), memory.Memory{
					ID: 10, TermID: 1, Level: memory.Level1, SuspendUntil: testNow.Add(20 * time.Minute),
				}).Return(nil)
				repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level1), nil)
			},
			wantLevel: memory.Level1,
		},
		{
			name:      "strengthen at the top level writes nothing",
			direction: memory.Strengthen,
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level6), nil)
			},
			wantLevel: memory.Level6,
		},
		{
			name:      "weaken at the bottom level writes nothing",
			direction: memory.Weaken,
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level1), nil)
			},
			wantLevel: memory.Level1,
		},
		{
			name:      "missing term is not mutated",
			direction: memory.Strengthen,
			setup: func(repo *mock_term.MockRepository) {
				repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, term.ErrNotFound)
			},
			wantErrIs: ErrNotFound,
		},
		{
			name:      "unknown direction",
			direction: memory.Direction("sideways"),
			setup:     func(repo *mock_term.MockRepository) {},
			wantErrIs: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_term.NewMockRepository(ctrl)
			tt.setup(repo)
			s, _ := newTestService(t, repo, 0)

			got, err := s.AdvanceFamiliarity(context.Background(), 1, tt.direction)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, got.Memory.Level)
		})
	}
}

func TestService_OverrideMemory(t *testing.T) {
	level5 := memory.Level5
	invalid := memory.Level(0)
	explicit := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		override   memory.Override
		wantMemory *memory.Memory
		wantErrIs  error
	}{
		{
			name:       "level alone derives the suspension",
			override:   memory.Override{Level: &level5},
			wantMemory: &memory.Memory{ID: 10, TermID: 1, Level: memory.Level5, SuspendUntil: testNow.AddDate(0, 1, 0)},
		},
		{
			name:       "explicit timestamp wins",
			override:   memory.Override{Level: &level5, SuspendUntil: &explicit},
			wantMemory: &memory.Memory{ID: 10, TermID: 1, Level: memory.Level5, SuspendUntil: explicit},
		},
		{
			name:       "timestamp alone keeps the level",
			override:   memory.Override{SuspendUntil: &explicit},
			wantMemory: &memory.Memory{ID: 10, TermID: 1, Level: memory.Level2, SuspendUntil: explicit},
		},
		{
			name:      "level out of range",
			override:  memory.Override{Level: &invalid},
			wantErrIs: ErrInvalidInput,
		},
		{
			name:      "nothing to override",
			override:  memory.Override{},
			wantErrIs: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_term.NewMockRepository(ctrl)
			if tt.wantMemory != nil {
				reloaded := storedTerm(1, tt.wantMemory.Level)
				reloaded.Memory = *tt.wantMemory
				gomock.InOrder(
					repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(storedTerm(1, memory.Level2), nil),
					repo.EXPECT().UpdateMemory(gomock.Any(), *tt.wantMemory).Return(nil),
					repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(reloaded, nil),
				)
			}
			s, _ := newTestService(t, repo, 0)

			got, err := s.OverrideMemory(context.Background(), 1, tt.override)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tt.wantMemory, got.Memory)
		})
	}
}

func TestService_SelectDue(t *testing.T) {
	until := testNow
	filter := term.DueFilter{Until: &until, Levels: []memory.Level{memory.Level1}, Tags: []string{"toeic"}}

	t.Run("passes the filter to the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_term.NewMockRepository(ctrl)
		repo.EXPECT().FindDue(gomock.Any(), filter).Return([]term.Term{*storedTerm(1, memory.Level1)}, nil)
		s, _ := newTestService(t, repo, 0)

		got, err := s.SelectDue(context.Background(), filter)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("rejects unknown levels", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		s, _ := newTestService(t, mock_term.NewMockRepository(ctrl), 0)

		_, err := s.SelectDue(context.Background(), term.DueFilter{Levels: []memory.Level{7}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_term.NewMockRepository(ctrl)
		repo.EXPECT().FindDue(gomock.Any(), gomock.Any()).Return(nil, errors.New("no such table: terms"))
		s, _ := newTestService(t, repo, 0)

		_, err := s.SelectDue(context.Background(), term.DueFilter{})
		var storageErr *StorageError
		assert.ErrorAs(t, err, &storageErr)
	})
}

func TestService_ListTags(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_term.NewMockRepository(ctrl)
	repo.EXPECT().FindAllTags(gomock.Any()).Return([]term.Tag{
		{ID: 1, TermID: 1, Tag: "verb"},
		{ID: 2, TermID: 2, Tag: "toeic"},
		{ID: 3, TermID: 3, Tag: "verb"},
	}, nil)
	s, _ := newTestService(t, repo, 0)

	got, err := s.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"toeic", "verb"}, got)
}

func TestService_DeleteTerms_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, _ := newTestService(t, mock_term.NewMockRepository(ctrl), 0)

	err := s.DeleteTerms(context.Background(), []int64{1, 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
