// Package batch reads, cleans and encodes uploaded CSV files of records.
package batch

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Frame is a header plus string rows. Index holds the position of each row in
// the file it was read from, so rows can be traced back after cleaning.
type Frame struct {
	Header []string
	Rows   [][]string
	Index  []int
}

// Len is the number of data rows.
func (f *Frame) Len() int { return len(f.Rows) }

// Column returns the position of name in the header, or -1.
func (f *Frame) Column(name string) int {
	return slices.Index(f.Header, name)
}

// Values returns one column, or nil when it does not exist.
func (f *Frame) Values(name string) []string {
	c := f.Column(name)
	if c < 0 {
		return nil
	}
	out := make([]string, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r[c]
	}
	return out
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses a header line followed by data rows. Every row must have as
// many cells as the header. A leading UTF-8 byte order mark is skipped.
func ReadCSV(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)
	if lead, _ := br.Peek(len(utf8BOM)); bytes.Equal(lead, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MalformedBatchError{Row: -1, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &MalformedBatchError{Row: -1, Reason: "cannot read header", Err: err}
	}
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if seen[h] {
			return nil, &MalformedBatchError{Row: -1, Column: h, Reason: "duplicate column"}
		}
		seen[h] = true
	}

	f := &Frame{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			row := len(f.Rows)
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &MalformedBatchError{Row: row, Reason: fmt.Sprintf("line %d", pe.Line), Err: pe.Err}
			}
			return nil, &MalformedBatchError{Row: row, Reason: "read error", Err: err}
		}
		f.Index = append(f.Index, len(f.Rows))
		f.Rows = append(f.Rows, rec)
	}
	return f, nil
}

// WriteCSV writes the frame with a header line, UTF-8, "\n" line endings.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(f.Rows); err != nil {
		return err
	}
	return cw.Error()
}
