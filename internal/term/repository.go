package term

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/memorizer/internal/memory"
)

//go:generate mockgen -source=repository.go -destination=../mocks/term/mock_repository.go -package=mock_term Repository

// Repository defines operations for managing terms and the records they own.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Term, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Term, error)
	FindAll(ctx context.Context) ([]Term, error)
	FindDue(ctx context.Context, filter DueFilter) ([]Term, error)
	FindAllTags(ctx context.Context) ([]Tag, error)
	Create(ctx context.Context, term *Term) error
	Update(ctx context.Context, update Update) error
	UpdateMemory(ctx context.Context, m memory.Memory) error
	Delete(ctx context.Context, ids []int64) error
}

// DBRepository implements Repository with sqlx. It works with the sqlite3, mysql,
// and postgres drivers.
type DBRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db, now: time.Now}
}

// dbTime normalizes a timestamp so that stored values compare consistently in every driver.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// FindByID returns a term with its videos, tags, and memory.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Term, error) {
	var t Term
	err := r.db.GetContext(ctx, &t, r.db.Rebind("SELECT * FROM terms WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("id=%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(term) > %w", err)
	}
	terms := []Term{t}
	if err := r.loadRelations(ctx, terms); err != nil {
		return nil, err
	}
	return &terms[0], nil
}

// FindByIDs returns the existing terms among ids, ordered by id.
func (r *DBRepository) FindByIDs(ctx context.Context, ids []int64) ([]Term, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT * FROM terms WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(terms) > %w", err)
	}
	var terms []Term
	if err := r.db.SelectContext(ctx, &terms, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(terms by ids) > %w", err)
	}
	if err := r.loadRelations(ctx, terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// FindAll returns every term, newest first.
func (r *DBRepository) FindAll(ctx context.Context) ([]Term, error) {
	var terms []Term
	if err := r.db.SelectContext(ctx, &terms, "SELECT * FROM terms ORDER BY id DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(terms) > %w", err)
	}
	if err := r.loadRelations(ctx, terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// FindDue returns the terms selected by filter, ordered by id.
func (r *DBRepository) FindDue(ctx context.Context, filter DueFilter) ([]Term, error) {
	query := `SELECT t.* FROM terms t
		JOIN memories m ON m.term_id = t.id
		WHERE m.level IN (?)`
	args := []any{memory.LevelsOrAll(filter.Levels)}
	if filter.Until != nil {
		query += " AND m.suspend_until <= ?"
		args = append(args, dbTime(*filter.Until))
	}
	if len(filter.Tags) > 0 {
		query += " AND EXISTS (SELECT 1 FROM tags g WHERE g.term_id = t.id AND g.tag IN (?))"
		args = append(args, filter.Tags)
	}
	query += " ORDER BY t.id"

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(due terms) > %w", err)
	}
	var terms []Term
	if err := r.db.SelectContext(ctx, &terms, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due terms) > %w", err)
	}
	if err := r.loadRelations(ctx, terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// FindAllTags returns every tag row.
func (r *DBRepository) FindAllTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, "SELECT * FROM tags ORDER BY id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(tags) > %w", err)
	}
	return tags, nil
}

// Create inserts a term with its accepted videos, tags, and memory in a transaction.
// Invalid videos are dropped. A zero memory is replaced by a level 1 memory due at creation.
func (r *DBRepository) Create(ctx context.Context, t *Term) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = r.now()
	}
	t.CreatedAt = dbTime(t.CreatedAt)
	t.UpdatedAt = t.CreatedAt
	if t.Memory.Level == 0 {
		t.Memory = memory.New(t.CreatedAt)
	}
	if !t.Memory.Level.Valid() {
		return fmt.Errorf("level %d: %w", int(t.Memory.Level), memory.ErrInvalidLevel)
	}
	t.Memory.SuspendUntil = dbTime(t.Memory.SuspendUntil)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	termID, err := insertID(ctx, tx,
		"INSERT INTO terms (term, note, look_up, pronounce, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		t.Term, t.Note, t.LookUp, t.Pronounce, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insertID(term) > %w", err)
	}

	videos, err := insertVideos(ctx, tx, termID, t.Videos)
	if err != nil {
		return err
	}
	tags, err := insertTags(ctx, tx, termID, NormalizeTags(t.TagNames()))
	if err != nil {
		return err
	}

	memoryID, err := insertID(ctx, tx,
		"INSERT INTO memories (term_id, level, suspend_until) VALUES (?, ?, ?)",
		termID, t.Memory.Level, t.Memory.SuspendUntil)
	if err != nil {
		return fmt.Errorf("insertID(memory) > %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}

	t.ID = termID
	t.Videos = videos
	t.Tags = tags
	t.Memory.ID = memoryID
	t.Memory.TermID = termID
	return nil
}

// Update replaces the provided fields and collections of a term in a transaction.
func (r *DBRepository) Update(ctx context.Context, u Update) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind("SELECT COUNT(*) FROM terms WHERE id = ?"), u.ID); err != nil {
		return fmt.Errorf("tx.GetContext(term count) > %w", err)
	}
	if count == 0 {
		return fmt.Errorf("id=%d: %w", u.ID, ErrNotFound)
	}

	if u.hasScalarFields() || u.Videos != nil || u.Tags != nil {
		sets := []string{"updated_at = ?"}
		args := []any{dbTime(r.now())}
		for _, field := range []struct {
			column string
			value  *string
		}{
			{"term", u.Term},
			{"note", u.Note},
			{"look_up", u.LookUp},
			{"pronounce", u.Pronounce},
		} {
			if field.value == nil {
				continue
			}
			sets = append(sets, field.column+" = ?")
			args = append(args, *field.value)
		}
		args = append(args, u.ID)
		query := "UPDATE terms SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("tx.ExecContext(update term) > %w", err)
		}
	}

	if u.Videos != nil {
		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM videos WHERE term_id = ?"), u.ID); err != nil {
			return fmt.Errorf("tx.ExecContext(delete videos) > %w", err)
		}
		if _, err := insertVideos(ctx, tx, u.ID, *u.Videos); err != nil {
			return err
		}
	}

	if u.Tags != nil {
		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM tags WHERE term_id = ?"), u.ID); err != nil {
			return fmt.Errorf("tx.ExecContext(delete tags) > %w", err)
		}
		if _, err := insertTags(ctx, tx, u.ID, NormalizeTags(*u.Tags)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// UpdateMemory stores the level and suspension of the memory owned by m.TermID.
func (r *DBRepository) UpdateMemory(ctx context.Context, m memory.Memory) error {
	if !m.Level.Valid() {
		return fmt.Errorf("level %d: %w", int(m.Level), memory.ErrInvalidLevel)
	}
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE memories SET level = ?, suspend_until = ? WHERE term_id = ?"),
		m.Level, dbTime(m.SuspendUntil), m.TermID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update memory) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("memory of term_id=%d: %w", m.TermID, ErrNotFound)
	}
	return nil
}

// Delete removes terms together with their memories, videos, and tags in a transaction.
func (r *DBRepository) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []struct {
		table string
		query string
	}{
		{"memories", "DELETE FROM memories WHERE term_id IN (?)"},
		{"videos", "DELETE FROM videos WHERE term_id IN (?)"},
		{"tags", "DELETE FROM tags WHERE term_id IN (?)"},
		{"terms", "DELETE FROM terms WHERE id IN (?)"},
	} {
		query, args, err := sqlx.In(stmt.query, ids)
		if err != nil {
			return fmt.Errorf("sqlx.In(%s) > %w", stmt.table, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("tx.ExecContext(delete %s) > %w", stmt.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

func insertVideos(ctx context.Context, tx *sqlx.Tx, termID int64, videos []Video) ([]Video, error) {
	accepted := AcceptedVideos(videos)
	for i := range accepted {
		accepted[i].TermID = termID
		id, err := insertID(ctx, tx,
			"INSERT INTO videos (term_id, url, start_time, end_time, sort_order) VALUES (?, ?, ?, ?, ?)",
			termID, accepted[i].URL, accepted[i].Start, accepted[i].End, accepted[i].Order)
		if err != nil {
			return nil, fmt.Errorf("insertID(video) > %w", err)
		}
		accepted[i].ID = id
	}
	return accepted, nil
}

func insertTags(ctx context.Context, tx *sqlx.Tx, termID int64, names []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		id, err := insertID(ctx, tx, "INSERT INTO tags (term_id, tag) VALUES (?, ?)", termID, name)
		if err != nil {
			return nil, fmt.Errorf("insertID(tag) > %w", err)
		}
		tags = append(tags, Tag{ID: id, TermID: termID, Tag: name})
	}
	return tags, nil
}

// insertID runs an INSERT and returns the generated id.
// PostgreSQL has no LastInsertId, so the id is read back with RETURNING there.
func insertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	if tx.DriverName() == "postgres" {
		var id int64
		if err := tx.QueryRowxContext(ctx, tx.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("tx.QueryRowxContext() > %w", err)
		}
		return id, nil
	}

	result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("tx.ExecContext() > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("result.LastInsertId() > %w", err)
	}
	return id, nil
}

func (r *DBRepository) loadRelations(ctx context.Context, terms []Term) error {
	if len(terms) == 0 {
		return nil
	}

	termIDs := make([]int64, len(terms))
	termMap := make(map[int64]*Term, len(terms))
	for i := range terms {
		termIDs[i] = terms[i].ID
		termMap[terms[i].ID] = &terms[i]
	}

	query, args, err := sqlx.In("SELECT * FROM videos WHERE term_id IN (?) ORDER BY sort_order", termIDs)
	if err != nil {
		return fmt.Errorf("sqlx.In(videos) > %w", err)
	}
	var videos []Video
	if err := r.db.SelectContext(ctx, &videos, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.SelectContext(videos) > %w", err)
	}
	for _, v := range videos {
		t := termMap[v.TermID]
		t.Videos = append(t.Videos, v)
	}

	query, args, err = sqlx.In("SELECT * FROM tags WHERE term_id IN (?) ORDER BY id", termIDs)
	if err != nil {
		return fmt.Errorf("sqlx.In(tags) > %w", err)
	}
	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.SelectContext(tags) > %w", err)
	}
	for _, tag := range tags {
		t := termMap[tag.TermID]
		t.Tags = append(t.Tags, tag)
	}

	query, args, err = sqlx.In("SELECT * FROM memories WHERE term_id IN (?)", termIDs)
	if err != nil {
		return fmt.Errorf("sqlx.In(memories) > %w", err)
	}
	var memories []memory.Memory
	if err := r.db.SelectContext(ctx, &memories, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.SelectContext(memories) > %w", err)
	}
	for _, m := range memories {
		termMap[m.TermID].Memory = m
	}

	return nil
}
