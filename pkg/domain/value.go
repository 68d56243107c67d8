package domain

import "encoding/json"

// ValueKind identifies the variant held by a DisplayValue.
type ValueKind string

const (
	KindScalar   ValueKind = "scalar"
	KindSequence ValueKind = "sequence"
	KindMapping  ValueKind = "mapping"
)

// DisplayValue is the closed set of shapes document data can take for display:
// Scalar, Sequence or Mapping. The unexported marker method keeps the set closed.
type DisplayValue interface {
	Kind() ValueKind
	displayValue()
}

// Scalar holds a leaf value: string, number, boolean or null.
// A nil Value is null.
type Scalar struct {
	Value any
}

// Sequence is an ordered list of values.
type Sequence []DisplayValue

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value DisplayValue
}

// Mapping is an ordered association list. Keys are not required to be unique;
// duplicates are kept in place and rendered individually.
type Mapping []Entry

func (Scalar) Kind() ValueKind   { return KindScalar }
func (Sequence) Kind() ValueKind { return KindSequence }
func (Mapping) Kind() ValueKind  { return KindMapping }

func (Scalar) displayValue()   {}
func (Sequence) displayValue() {}
func (Mapping) displayValue()  {}

// Null returns the null scalar.
func Null() Scalar { return Scalar{} }

// String, Number and Bool build typed scalars.
func String(s string) Scalar             { return Scalar{Value: s} }
func Number(n json.Number) Scalar        { return Scalar{Value: n} }
func Bool(b bool) Scalar                 { return Scalar{Value: b} }
func Float(f float64) Scalar             { return Scalar{Value: f} }
func Int(i int64) Scalar                 { return Scalar{Value: i} }
func Seq(items ...DisplayValue) Sequence { return Sequence(items) }

// IsNull reports whether the scalar holds no value.
func (s Scalar) IsNull() bool { return s.Value == nil }

// Get returns the first value stored under key.
func (m Mapping) Get(key string) (DisplayValue, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order, duplicates included.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}
