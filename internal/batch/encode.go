package batch

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/idlab-discover/salarypred-cli/internal/encoding"
	"github.com/idlab-discover/salarypred-cli/internal/label"
	"github.com/idlab-discover/salarypred-cli/internal/schema"
	"github.com/idlab-discover/salarypred-cli/internal/transform"
)

// Encode turns a cleaned frame into the model matrix, columns in schema order.
//
// Categorical columns are encoded first, in header order; the first value
// outside a vocabulary aborts with *EncodingError. Numeric columns are parsed
// afterwards and a non-integer aborts with *MalformedBatchError. Columns that
// are not part of the schema are ignored. A frame without rows yields a nil
// matrix.
func Encode(reg *encoding.Registry, f *Frame) (*mat.Dense, error) {
	if err := RequireColumns(f); err != nil {
		return nil, err
	}
	n := f.Len()
	if n == 0 {
		return nil, nil
	}
	width := schema.Len()
	data := make([]float64, n*width)

	for c, name := range f.Header {
		field, col, ok := schema.Lookup(name)
		if !ok || field.Kind != schema.Categorical {
			continue
		}
		enc, ok := reg.Encoder(name)
		if !ok {
			return nil, fmt.Errorf("no encoder for field %q", name)
		}
		codes, at, err := enc.EncodeAll(f.Values(name))
		if err != nil {
			return nil, cellError(f, name, at, f.Rows[at][c], err)
		}
		for r, code := range codes {
			data[r*width+col] = float64(code)
		}
	}

	for c, name := range f.Header {
		field, col, ok := schema.Lookup(name)
		if !ok || field.Kind != schema.Numeric {
			continue
		}
		for r, row := range f.Rows {
			v, err := transform.Cell(reg, name, row[c])
			if err != nil {
				return nil, cellError(f, name, r, row[c], err)
			}
			data[r*width+col] = float64(v)
		}
	}
	return mat.NewDense(n, width, data), nil
}

// RequireColumns fails unless every schema field is a column of f.
func RequireColumns(f *Frame) error {
	var missing []string
	for _, name := range schema.Names() {
		if f.Column(name) < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MalformedBatchError{Row: -1, Reason: fmt.Sprintf("missing required columns %v", missing)}
	}
	return nil
}

// Annotate returns the rows of original whose Index appears in kept, untouched,
// with labels in a PredictedClass column. An existing PredictedClass column is
// overwritten rather than duplicated.
func Annotate(original *Frame, kept []int, labels []label.Label) (*Frame, error) {
	if len(kept) != len(labels) {
		return nil, fmt.Errorf("annotate: %d rows but %d labels", len(kept), len(labels))
	}
	byIndex := make(map[int]int, len(original.Index))
	for i, idx := range original.Index {
		byIndex[idx] = i
	}

	out := &Frame{Header: append([]string(nil), original.Header...)}
	target := out.Column(label.Column)
	if target < 0 {
		out.Header = append(out.Header, label.Column)
	}
	for i, idx := range kept {
		src, ok := byIndex[idx]
		if !ok {
			return nil, fmt.Errorf("annotate: row %d not in original frame", idx)
		}
		row := append([]string(nil), original.Rows[src]...)
		if target < 0 {
			row = append(row, labels[i].String())
		} else {
			row[target] = labels[i].String()
		}
		out.Rows = append(out.Rows, row)
		out.Index = append(out.Index, idx)
	}
	return out, nil
}
