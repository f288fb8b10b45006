// Package transform turns raw field values into the encoded row layout the
// classifier was trained on.
package transform

import (
	"fmt"
	"math"
	"strconv"

	"github.com/idlab-discover/salarypred-cli/internal/encoding"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
)

// Parser validates categorical values. *encoding.Registry implements it.
type Parser interface {
	Parse(field, value string) (encoding.Category, error)
}

// NumericError reports a value that is not an integer in a numeric field.
type NumericError struct {
	Field string
	Value string
	Err   error
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("field %q: %q is not an integer", e.Field, e.Value)
}

func (e *NumericError) Unwrap() error { return e.Err }

// Encode validates rec and returns its encoded row in schema order. Numeric
// ranges are checked first; categorical values go through p.
func Encode(p Parser, rec schema.Record) (schema.EncodedRecord, error) {
	if err := rec.Validate(); err != nil {
		return schema.EncodedRecord{}, err
	}
	out := schema.EncodedRecord{
		Names:  schema.Names(),
		Values: make([]int64, schema.Len()),
	}
	for i, f := range schema.Fields() {
		switch f.Kind {
		case schema.Numeric:
			v, _ := rec.Numeric(f.Name)
			out.Values[i] = v
		case schema.Categorical:
			raw, _ := rec.Category(f.Name)
			c, err := p.Parse(f.Name, raw)
			if err != nil {
				return schema.EncodedRecord{}, err
			}
			out.Values[i] = int64(c.Code())
		}
	}
	return out, nil
}

// Cell converts one raw value of a known field. Unknown fields are an error.
func Cell(p Parser, field, raw string) (int64, error) {
	f, _, ok := schema.Lookup(field)
	if !ok {
		return 0, fmt.Errorf("unknown field %q", field)
	}
	if f.Kind == schema.Categorical {
		c, err := p.Parse(field, raw)
		if err != nil {
			return 0, err
		}
		return int64(c.Code()), nil
	}
	return parseInt(field, raw)
}

// parseInt accepts base-10 integers and integral floats such as "30.0",
// which spreadsheet exports commonly produce.
func parseInt(field, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		return v, nil
	}
	f, ferr := strconv.ParseFloat(raw, 64)
	if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > 1<<53 {
		return 0, &NumericError{Field: field, Value: raw, Err: err}
	}
	return int64(f), nil
}
