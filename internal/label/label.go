// Package label maps raw classifier output to the two income classes.
package label

import (
	"fmt"
	"strconv"
)

// Label is one of the two income classes.
type Label string

const (
	LowIncome  Label = "<=50K"
	HighIncome Label = ">50K"
)

// Column is the header appended to batch output.
const Column = "PredictedClass"

const (
	colorHigh = "#2ECC71"
	colorLow  = "#E74C3C"
)

// LabelMappingError reports a model output that is neither class.
type LabelMappingError struct {
	Raw string
}

func (e *LabelMappingError) Error() string {
	return fmt.Sprintf("cannot map model output %s to an income class (expected 0, 1, %q or %q)",
		strconv.Quote(e.Raw), LowIncome, HighIncome)
}

// Map converts a raw prediction. Integer codes follow 0 -> "<=50K",
// 1 -> ">50K"; the symbolic names map to themselves. Anything else fails.
func Map(raw string) (Label, error) {
	switch raw {
	case "0", string(LowIncome):
		return LowIncome, nil
	case "1", string(HighIncome):
		return HighIncome, nil
	}
	return "", &LabelMappingError{Raw: raw}
}

// MapAll maps every prediction, failing on the first unmappable one.
func MapAll(raw []string) ([]Label, error) {
	out := make([]Label, len(raw))
	for i, r := range raw {
		l, err := Map(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = l
	}
	return out, nil
}

func (l Label) String() string { return string(l) }

// High reports whether l is the >50K class.
func (l Label) High() bool { return l == HighIncome }

// Display is the user-facing result text.
func (l Label) Display() string {
	if l.High() {
		return "💰 >50K (High Income)"
	}
	return "🧾 <=50K (Low Income)"
}

// Color is the hex background used when rendering the result.
func (l Label) Color() string {
	if l.High() {
		return colorHigh
	}
	return colorLow
}
