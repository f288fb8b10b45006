package encoding

import (
	"fmt"
	"io"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/idlab-discover/salarypred-cli/internal/schema"
)

// Registry is the set of encoders keyed by field name.
type Registry struct {
	encoders map[string]*Encoder
}

// NewRegistry builds a registry from already constructed encoders.
func NewRegistry(encoders ...*Encoder) (*Registry, error) {
	r := &Registry{encoders: make(map[string]*Encoder, len(encoders))}
	for _, e := range encoders {
		if e == nil {
			continue
		}
		if _, dup := r.encoders[e.field]; dup {
			return nil, fmt.Errorf("duplicate encoder for field %q", e.field)
		}
		r.encoders[e.field] = e
	}
	return r, nil
}

// FromVocabulary is a convenience for building a registry from plain slices.
func FromVocabulary(vocab map[string][]string) (*Registry, error) {
	encs := make([]*Encoder, 0, len(vocab))
	for _, field := range sortedKeys(vocab) {
		e, err := NewEncoder(field, vocab[field])
		if err != nil {
			return nil, err
		}
		encs = append(encs, e)
	}
	return NewRegistry(encs...)
}

// ParseRegistry decodes a YAML (or JSON) document mapping each field name to
// its ordered vocabulary, e.g.
//
//	workclass: [Federal-gov, Local-gov, Private]
//	gender: [Female, Male]
//
// Every categorical schema field must have an encoder. Encoders for fields
// outside the schema are kept but never used by the model.
func ParseRegistry(rd io.Reader) (*Registry, error) {
	var vocab map[string][]string
	dec := yaml.NewDecoder(rd)
	if err := dec.Decode(&vocab); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("decode encoders: empty document")
		}
		return nil, fmt.Errorf("decode encoders: %w", err)
	}

	r, err := FromVocabulary(vocab)
	if err != nil {
		return nil, err
	}
	if err := r.Require(schema.CategoricalNames()...); err != nil {
		return nil, err
	}
	for _, f := range r.Fields() {
		if !schema.IsCategorical(f) {
			logf("encoder %q does not match a categorical field; it will not be used", f)
		}
	}
	return r, nil
}

// Require fails when any of the named fields has no encoder.
func (r *Registry) Require(fields ...string) error {
	var missing []string
	for _, f := range fields {
		if !r.Has(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing encoders for %v", missing)
	}
	return nil
}

// Has reports whether field has an encoder.
func (r *Registry) Has(field string) bool {
	_, ok := r.encoders[field]
	return ok
}

// Encoder returns the encoder for field.
func (r *Registry) Encoder(field string) (*Encoder, bool) {
	e, ok := r.encoders[field]
	return e, ok
}

// Fields returns the encoded field names, sorted.
func (r *Registry) Fields() []string {
	return sortedKeys(r.encoders)
}

// Classes returns the fitted vocabulary of field, or nil when unknown.
func (r *Registry) Classes(field string) []string {
	e, ok := r.encoders[field]
	if !ok {
		return nil
	}
	return e.Classes()
}

// Encode maps value to its integer code.
func (r *Registry) Encode(field, value string) (int, error) {
	e, ok := r.encoders[field]
	if !ok {
		return 0, fmt.Errorf("no encoder for field %q", field)
	}
	return e.Encode(value)
}

// Parse validates value against field's vocabulary and returns the checked token.
func (r *Registry) Parse(field, value string) (Category, error) {
	code, err := r.Encode(field, value)
	if err != nil {
		return Category{}, err
	}
	return Category{field: field, value: value, code: code}, nil
}

// Sizes returns the vocabulary size per field.
func (r *Registry) Sizes() map[string]int {
	out := make(map[string]int, len(r.encoders))
	for f, e := range r.encoders {
		out[f] = e.Len()
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
