package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/idlab-discover/salarypred-cli/internal/apperr"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
)

// RecordForm asks for every field of a record. Numeric fields are text inputs
// checked against the field's range; categorical fields are selects over the
// fitted vocabulary.
type RecordForm struct {
	vocab  func(field string) []string
	values map[string]*string
}

// NewRecordForm prefills the form from initial.
func NewRecordForm(initial schema.Record, vocab func(field string) []string) *RecordForm {
	f := &RecordForm{vocab: vocab, values: make(map[string]*string, schema.Len())}
	names := schema.Names()
	for i, v := range initial.Values() {
		s := v
		f.values[names[i]] = &s
	}
	return f
}

func (f *RecordForm) groups() []*huh.Group {
	groups := []*huh.Group{
		huh.NewGroup(huh.NewNote().
			Title("📥 Enter Employee Details").
			Description("Predict if an employee earns more than 50K\nusing demographic and job-related details.").
			Next(true).
			NextLabel("Start")),
	}
	for _, fd := range schema.Fields() {
		groups = append(groups, huh.NewGroup(f.field(fd)))
	}
	return groups
}

func (f *RecordForm) field(fd schema.Field) huh.Field {
	title := fd.Icon + " " + fd.Title
	if fd.Kind == schema.Categorical {
		classes := f.vocab(fd.Name)
		return huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(classes...)...).
			Height(min(len(classes)+2, 10)).
			Filtering(true).
			Value(f.values[fd.Name])
	}
	desc := "any whole number"
	if fd.HasRange {
		desc = fmt.Sprintf("%d to %d", fd.Min, fd.Max)
	}
	return huh.NewInput().
		Title(title).
		Description(desc).
		Value(f.values[fd.Name]).
		Validate(ValidateNumber(fd))
}

// ValidateNumber checks that s is an integer inside the field's range.
func ValidateNumber(fd schema.Field) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		return fd.CheckRange(v)
	}
}

// Run shows the form and returns the completed record. Aborting the form
// returns apperr.ErrCancelled.
func (f *RecordForm) Run(ctx context.Context) (schema.Record, error) {
	err := huh.NewForm(f.groups()...).
		WithTheme(huh.ThemeCharm()).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return schema.Record{}, apperr.ErrCancelled
	}
	if err != nil {
		return schema.Record{}, err
	}
	return f.Record()
}

// Record converts the current answers.
func (f *RecordForm) Record() (schema.Record, error) {
	var rec schema.Record
	for _, fd := range schema.Fields() {
		raw := strings.TrimSpace(*f.values[fd.Name])
		if fd.Kind == schema.Categorical {
			rec.SetCategory(fd.Name, raw)
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return schema.Record{}, fmt.Errorf("%s: %q is not a whole number", fd.Name, raw)
		}
		rec.SetNumeric(fd.Name, v)
	}
	if err := rec.Validate(); err != nil {
		return schema.Record{}, err
	}
	return rec, nil
}
