// Package term provides the vocabulary term model and its repository.
package term

import (
	"errors"
	"time"

	"github.com/at-ishikawa/memorizer/internal/memory"
)

// ErrNotFound is returned when a term, or a record owned by it, does not exist.
var ErrNotFound = errors.New("term not found")

// Term is a word or phrase being memorized.
type Term struct {
	ID        int64         `db:"id" json:"id" yaml:"-"`
	Term      string        `db:"term" json:"term" yaml:"term"`
	Note      string        `db:"note" json:"note" yaml:"note,omitempty"`
	LookUp    string        `db:"look_up" json:"look_up" yaml:"look_up,omitempty"`
	Pronounce string        `db:"pronounce" json:"pronounce" yaml:"pronounce,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at" yaml:"updated_at"`
	Videos    []Video       `db:"-" json:"videos" yaml:"videos,omitempty"`
	Tags      []Tag         `db:"-" json:"tags" yaml:"-"`
	Memory    memory.Memory `db:"-" json:"memory" yaml:"memory"`
}

// Video is an example clip of a term.
type Video struct {
	ID     int64  `db:"id" json:"id" yaml:"-"`
	TermID int64  `db:"term_id" json:"term_id" yaml:"-"`
	URL    string `db:"url" json:"url" yaml:"url"`
	Start  string `db:"start_time" json:"start" yaml:"start"`
	End    string `db:"end_time" json:"end" yaml:"end"`
	Order  int    `db:"sort_order" json:"order" yaml:"-"`
}

// Tag is a free text label of a term.
type Tag struct {
	ID     int64  `db:"id" json:"id"`
	TermID int64  `db:"term_id" json:"term_id"`
	Tag    string `db:"tag" json:"tag"`
}

// TagNames returns the tag texts in stored order.
func (t Term) TagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Tag)
	}
	return names
}

// HasAnyTag reports whether the term carries at least one of tags.
func (t Term) HasAnyTag(tags []string) bool {
	for _, own := range t.Tags {
		for _, want := range tags {
			if own.Tag == want {
				return true
			}
		}
	}
	return false
}

// Update replaces the provided fields of a term. Nil fields are left unchanged;
// a non-nil Videos or Tags replaces the whole collection.
type Update struct {
	ID        int64     `json:"id"`
	Term      *string   `json:"term,omitempty"`
	Note      *string   `json:"note,omitempty"`
	LookUp    *string   `json:"look_up,omitempty"`
	Pronounce *string   `json:"pronounce,omitempty"`
	Videos    *[]Video  `json:"videos,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
}

func (u Update) hasScalarFields() bool {
	return u.Term != nil || u.Note != nil || u.LookUp != nil || u.Pronounce != nil
}
