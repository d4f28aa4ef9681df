package datasync

import (
	"time"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
	"github.com/at-ishikawa/memorizer/internal/vocabulary"
)

// Document is the top level of an exported YAML file.
type Document struct {
	Terms []Record `yaml:"terms"`
}

// Record is one term as it is written to a file. Ids are never exported, so an
// import always creates new terms.
type Record struct {
	Term         string       `yaml:"term"`
	Note         string       `yaml:"note,omitempty"`
	LookUp       string       `yaml:"look_up,omitempty"`
	Pronounce    string       `yaml:"pronounce,omitempty"`
	Tags         []string     `yaml:"tags,omitempty"`
	Videos       []term.Video `yaml:"videos,omitempty"`
	Level        memory.Level `yaml:"level,omitempty"`
	SuspendUntil time.Time    `yaml:"suspend_until,omitempty"`
	CreatedAt    time.Time    `yaml:"created_at,omitempty"`
}

func recordFromTerm(t term.Term) Record {
	r := Record{
		Term:         t.Term,
		Note:         t.Note,
		LookUp:       t.LookUp,
		Pronounce:    t.Pronounce,
		Level:        t.Memory.Level,
		SuspendUntil: t.Memory.SuspendUntil.UTC(),
		CreatedAt:    t.CreatedAt.UTC(),
	}
	if len(t.Tags) > 0 {
		r.Tags = t.TagNames()
	}
	for _, v := range t.Videos {
		r.Videos = append(r.Videos, term.Video{URL: v.URL, Start: v.Start, End: v.End})
	}
	return r
}

// toNewTerm converts r into the input of CreateTerm. A record without a level starts
// as a new term; a level without a suspension is due immediately.
func (r Record) toNewTerm(now time.Time) vocabulary.NewTerm {
	n := vocabulary.NewTerm{
		Term:      r.Term,
		Note:      r.Note,
		LookUp:    r.LookUp,
		Pronounce: r.Pronounce,
		Videos:    r.Videos,
		Tags:      r.Tags,
		CreatedAt: r.CreatedAt,
	}
	if r.Level != 0 {
		suspendUntil := r.SuspendUntil
		if suspendUntil.IsZero() {
			suspendUntil = now
		}
		n.Memory = &memory.Memory{Level: r.Level, SuspendUntil: suspendUntil}
	}
	return n
}
