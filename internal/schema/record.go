package schema

import (
	"errors"
	"strconv"
)

// Record holds one subject's raw attribute values.
type Record struct {
	Age            int64
	Workclass      string
	Fnlwgt         int64
	EducationalNum int64
	MaritalStatus  string
	Occupation     string
	Relationship   string
	Race           string
	Gender         string
	CapitalGain    int64
	CapitalLoss    int64
	HoursPerWeek   int64
	NativeCountry  string
}

// Values returns the raw values in model order, numbers in base 10.
func (r Record) Values() []string {
	return []string{
		strconv.FormatInt(r.Age, 10),
		r.Workclass,
		strconv.FormatInt(r.Fnlwgt, 10),
		strconv.FormatInt(r.EducationalNum, 10),
		r.MaritalStatus,
		r.Occupation,
		r.Relationship,
		r.Race,
		r.Gender,
		strconv.FormatInt(r.CapitalGain, 10),
		strconv.FormatInt(r.CapitalLoss, 10),
		strconv.FormatInt(r.HoursPerWeek, 10),
		r.NativeCountry,
	}
}

// Numeric returns the value of a numeric field.
func (r Record) Numeric(name string) (int64, bool) {
	switch name {
	case Age:
		return r.Age, true
	case Fnlwgt:
		return r.Fnlwgt, true
	case EducationalNum:
		return r.EducationalNum, true
	case CapitalGain:
		return r.CapitalGain, true
	case CapitalLoss:
		return r.CapitalLoss, true
	case HoursPerWeek:
		return r.HoursPerWeek, true
	}
	return 0, false
}

// Category returns the value of a categorical field.
func (r Record) Category(name string) (string, bool) {
	switch name {
	case Workclass:
		return r.Workclass, true
	case MaritalStatus:
		return r.MaritalStatus, true
	case Occupation:
		return r.Occupation, true
	case Relationship:
		return r.Relationship, true
	case Race:
		return r.Race, true
	case Gender:
		return r.Gender, true
	case NativeCountry:
		return r.NativeCountry, true
	}
	return "", false
}

// SetCategory assigns a categorical field by name.
func (r *Record) SetCategory(name, value string) bool {
	switch name {
	case Workclass:
		r.Workclass = value
	case MaritalStatus:
		r.MaritalStatus = value
	case Occupation:
		r.Occupation = value
	case Relationship:
		r.Relationship = value
	case Race:
		r.Race = value
	case Gender:
		r.Gender = value
	case NativeCountry:
		r.NativeCountry = value
	default:
		return false
	}
	return true
}

// SetNumeric assigns a numeric field by name.
func (r *Record) SetNumeric(name string, v int64) bool {
	switch name {
	case Age:
		r.Age = v
	case Fnlwgt:
		r.Fnlwgt = v
	case EducationalNum:
		r.EducationalNum = v
	case CapitalGain:
		r.CapitalGain = v
	case CapitalLoss:
		r.CapitalLoss = v
	case HoursPerWeek:
		r.HoursPerWeek = v
	default:
		return false
	}
	return true
}

// Validate checks every numeric field against its range and joins the failures.
func (r Record) Validate() error {
	var errs []error
	for _, f := range fields {
		if f.Kind != Numeric {
			continue
		}
		v, _ := r.Numeric(f.Name)
		if err := f.CheckRange(v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DefaultRecord returns the form defaults. vocab supplies the first category of
// each categorical field; fields missing from vocab stay empty.
func DefaultRecord(vocab func(field string) []string) Record {
	var r Record
	for _, f := range fields {
		switch f.Kind {
		case Numeric:
			r.SetNumeric(f.Name, f.Default)
		case Categorical:
			if vocab == nil {
				continue
			}
			if classes := vocab(f.Name); len(classes) > 0 {
				r.SetCategory(f.Name, classes[0])
			}
		}
	}
	return r
}

// EncodedRecord is one model-ready row.
type EncodedRecord struct {
	Names  []string
	Values []int64
}

// Floats converts the row for the model's matrix input.
func (e EncodedRecord) Floats() []float64 {
	out := make([]float64, len(e.Values))
	for i, v := range e.Values {
		out[i] = float64(v)
	}
	return out
}
