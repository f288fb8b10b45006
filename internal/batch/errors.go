package batch

import (
	"fmt"
	"strconv"
)

// EncodingError aborts a batch when a categorical column holds a value outside
// its vocabulary. Row is the 0-based data row in the uploaded file.
type EncodingError struct {
	Column string
	Value  string
	Row    int
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding failed: column %q, row %d: value %s is not in the fitted vocabulary",
		e.Column, e.Row+1, strconv.Quote(e.Value))
}

func (e *EncodingError) Unwrap() error { return e.Err }

// MalformedBatchError aborts a batch whose input cannot be read or does not
// fit the schema. Row is -1 when the problem is not tied to a row.
type MalformedBatchError struct {
	Row    int
	Column string
	Reason string
	Err    error
}

func (e *MalformedBatchError) Error() string {
	msg := "malformed batch input"
	if e.Row >= 0 {
		msg += fmt.Sprintf(": row %d", e.Row+1)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(": column %q", e.Column)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedBatchError) Unwrap() error { return e.Err }
