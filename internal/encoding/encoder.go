// Package encoding holds the fitted label encoders for the categorical fields.
//
// An Encoder is a fixed bijection between a field's vocabulary and the
// integers 0..n-1, in the order the vocabulary was fitted. Encoders are never
// mutated after they are built, so a Registry can be shared freely.
package encoding

import (
	"fmt"
	"strconv"
)

// UnknownCategoryError reports a value outside a field's fitted vocabulary.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %s for field %q", strconv.Quote(e.Value), e.Field)
}

// Encoder maps one field's vocabulary to integer codes.
type Encoder struct {
	field   string
	classes []string
	index   map[string]int
}

// NewEncoder builds an encoder from the fitted vocabulary. Empty vocabularies
// and duplicate entries are rejected since the mapping must be a bijection.
func NewEncoder(field string, classes []string) (*Encoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("encoder %q: empty vocabulary", field)
	}
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if prev, dup := index[c]; dup {
			return nil, fmt.Errorf("encoder %q: duplicate class %q at positions %d and %d", field, c, prev, i)
		}
		index[c] = i
	}
	cp := make([]string, len(classes))
	copy(cp, classes)
	return &Encoder{field: field, classes: cp, index: index}, nil
}

// Field is the column this encoder was fitted on.
func (e *Encoder) Field() string { return e.field }

// Len is the vocabulary size.
func (e *Encoder) Len() int { return len(e.classes) }

// Classes returns a copy of the vocabulary in fitted order.
func (e *Encoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Encode returns the code for value or an *UnknownCategoryError.
func (e *Encoder) Encode(value string) (int, error) {
	code, ok := e.index[value]
	if !ok {
		return 0, &UnknownCategoryError{Field: e.field, Value: value}
	}
	return code, nil
}

// EncodeAll encodes a column, stopping at the first unknown value. The
// returned index is the position of the failing value, or -1.
func (e *Encoder) EncodeAll(values []string) ([]int, int, error) {
	out := make([]int, len(values))
	for i, v := range values {
		code, err := e.Encode(v)
		if err != nil {
			return nil, i, err
		}
		out[i] = code
	}
	return out, -1, nil
}

// Category is a value that has been checked against its field's vocabulary.
type Category struct {
	field string
	value string
	code  int
}

func (c Category) Field() string  { return c.field }
func (c Category) Value() string  { return c.value }
func (c Category) Code() int      { return c.code }
func (c Category) String() string { return c.value }
