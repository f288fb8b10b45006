package batch

import "strings"

// missingMarkers are the cell values treated as missing, matching the
// defaults of common dataframe CSV readers.
var missingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(cell string) bool {
	_, ok := missingMarkers[cell]
	return ok
}

// Clean returns a copy of f without rows that have any missing cell, with
// every remaining cell trimmed of surrounding whitespace. Rows are never
// imputed. The returned frame keeps f's Index values for surviving rows.
func Clean(f *Frame) *Frame {
	out := &Frame{Header: f.Header}
	for i, row := range f.Rows {
		if hasMissing(row) {
			continue
		}
		trimmed := make([]string, len(row))
		for j, c := range row {
			trimmed[j] = strings.TrimSpace(c)
		}
		out.Rows = append(out.Rows, trimmed)
		out.Index = append(out.Index, f.Index[i])
	}
	return out
}

func hasMissing(row []string) bool {
	for _, c := range row {
		if IsMissing(c) {
			return true
		}
	}
	return false
}
