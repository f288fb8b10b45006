// Package schema defines the record layout the income classifier was trained on.
//
// Field order and names are part of the model contract: encoded rows are
// always produced in the order returned by Fields.
package schema

import "fmt"

// Kind distinguishes integer inputs from label-encoded categories.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field names as they appear in CSV headers and model artifacts.
const (
	Age            = "age"
	Workclass      = "workclass"
	Fnlwgt         = "fnlwgt"
	EducationalNum = "educational-num"
	MaritalStatus  = "marital-status"
	Occupation     = "occupation"
	Relationship   = "relationship"
	Race           = "race"
	Gender         = "gender"
	CapitalGain    = "capital-gain"
	CapitalLoss    = "capital-loss"
	HoursPerWeek   = "hours-per-week"
	NativeCountry  = "native-country"
)

// Field describes one input column.
type Field struct {
	Name  string
	Kind  Kind
	Title string
	Icon  string

	// HasRange enables the Min/Max check for numeric fields.
	HasRange bool
	Min      int64
	Max      int64
	Default  int64
}

var fields = []Field{
	{Name: Age, Kind: Numeric, Title: "Age", Icon: "🧓", HasRange: true, Min: 18, Max: 70, Default: 30},
	{Name: Workclass, Kind: Categorical, Title: "Workclass", Icon: "🏢"},
	{Name: Fnlwgt, Kind: Numeric, Title: "Final Weight (fnlwgt)", Icon: "⚖️", Default: 100000},
	{Name: EducationalNum, Kind: Numeric, Title: "Education Level (numeric)", Icon: "🎓", HasRange: true, Min: 1, Max: 16, Default: 10},
	{Name: MaritalStatus, Kind: Categorical, Title: "Marital Status", Icon: "💍"},
	{Name: Occupation, Kind: Categorical, Title: "Occupation", Icon: "💼"},
	{Name: Relationship, Kind: Categorical, Title: "Relationship", Icon: "👥"},
	{Name: Race, Kind: Categorical, Title: "Race", Icon: "🌎"},
	{Name: Gender, Kind: Categorical, Title: "Gender", Icon: "⚧️"},
	{Name: CapitalGain, Kind: Numeric, Title: "Capital Gain", Icon: "📈"},
	{Name: CapitalLoss, Kind: Numeric, Title: "Capital Loss", Icon: "📉"},
	{Name: HoursPerWeek, Kind: Numeric, Title: "Hours per Week", Icon: "⏱️", HasRange: true, Min: 1, Max: 100, Default: 40},
	{Name: NativeCountry, Kind: Categorical, Title: "Native Country", Icon: "🗺️"},
}

var byName = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f.Name] = i
	}
	return m
}()

// Fields returns a copy of the schema in model order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Len is the number of columns in an encoded row.
func Len() int { return len(fields) }

// Names returns the column names in model order.
func Names() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

// Lookup returns the field and its position in model order.
func Lookup(name string) (Field, int, bool) {
	i, ok := byName[name]
	if !ok {
		return Field{}, -1, false
	}
	return fields[i], i, true
}

// IsCategorical reports whether name is a known categorical field.
func IsCategorical(name string) bool {
	f, _, ok := Lookup(name)
	return ok && f.Kind == Categorical
}

// CategoricalNames returns the categorical fields in model order.
func CategoricalNames() []string {
	var out []string
	for _, f := range fields {
		if f.Kind == Categorical {
			out = append(out, f.Name)
		}
	}
	return out
}

// CheckRange returns a *RangeError when v falls outside the field's bounds.
func (f Field) CheckRange(v int64) error {
	if !f.HasRange {
		return nil
	}
	if v < f.Min || v > f.Max {
		return &RangeError{Field: f.Name, Value: v, Min: f.Min, Max: f.Max}
	}
	return nil
}

// RangeError reports a numeric input outside the range offered by the form.
type RangeError struct {
	Field    string
	Value    int64
	Min, Max int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s=%d is out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}
