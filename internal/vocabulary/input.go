package vocabulary

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
)

// NewTerm is the input of CreateTerm.
type NewTerm struct {
	Term      string         `json:"term" yaml:"term" validate:"required"`
	Note      string         `json:"note,omitempty" yaml:"note,omitempty"`
	LookUp    string         `json:"look_up,omitempty" yaml:"look_up,omitempty"`
	Pronounce string         `json:"pronounce,omitempty" yaml:"pronounce,omitempty"`
	Videos    []term.Video   `json:"videos,omitempty" yaml:"videos,omitempty"`
	Tags      []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Memory    *memory.Memory `json:"memory,omitempty" yaml:"memory,omitempty"`
	// CreatedAt keeps the original creation time of imported terms. Zero means now.
	CreatedAt time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}

// toTerm builds the term to store. A zero CreatedAt becomes now, and a memory with a level
// but no suspension is due at the creation time.
func (n NewTerm) toTerm(now time.Time) *term.Term {
	t := &term.Term{
		Term:      strings.TrimSpace(n.Term),
		Note:      n.Note,
		LookUp:    n.LookUp,
		Pronounce: n.Pronounce,
		Videos:    n.Videos,
		CreatedAt: n.CreatedAt,
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	for _, tag := range n.Tags {
		t.Tags = append(t.Tags, term.Tag{Tag: tag})
	}
	if n.Memory != nil {
		t.Memory = memory.Memory{Level: n.Memory.Level, SuspendUntil: n.Memory.SuspendUntil}
		if t.Memory.Level != 0 && t.Memory.SuspendUntil.IsZero() {
			t.Memory.SuspendUntil = t.CreatedAt
		}
	}
	return t
}

type inputValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newInputValidator() (*inputValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("enTranslations.RegisterDefaultTranslations() > %w", err)
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &inputValidator{validate: validate, translator: trans}, nil
}

func (v *inputValidator) newTerm(n NewTerm) error {
	n.Term = strings.TrimSpace(n.Term)
	if err := v.structErr(n); err != nil {
		return err
	}
	if n.Memory != nil && !n.Memory.Level.Valid() {
		return invalidInput("memory level %d is not between 1 and 6", int(n.Memory.Level))
	}
	return nil
}

func (v *inputValidator) update(u term.Update) error {
	if u.ID <= 0 {
		return invalidInput("id must be positive")
	}
	if u.Term != nil && strings.TrimSpace(*u.Term) == "" {
		return invalidInput("term is a required field")
	}
	return nil
}

func (v *inputValidator) structErr(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate.Struct() > %w", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, e.Translate(v.translator))
	}
	return invalidInput("%s", strings.Join(msgs, ", "))
}
