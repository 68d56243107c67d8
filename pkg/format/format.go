package format

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/lumina/pkg/domain"
)

const separator = ", "

// Format renders a value for display.
//
// Sequences render as "[a, b]" and mappings as "{k: v, ...}" in insertion order.
// Null renders as the empty string. An empty sequence renders as "[]" when
// nested, but an empty top-level sequence renders as "".
func Format(v domain.DisplayValue) string {
	if seq, ok := v.(domain.Sequence); ok && len(seq) == 0 {
		return ""
	}
	return formatValue(v)
}

// FormatAny classifies and formats a native value.
func FormatAny(v any) string {
	return Format(Classify(v))
}

// PrimaryValue renders the value of the first entry of a top-level mapping,
// used for compact previews. Empty mappings yield "". Non-mapping values are
// formatted as a whole.
func PrimaryValue(v domain.DisplayValue) string {
	m, ok := v.(domain.Mapping)
	if !ok {
		return Format(v)
	}
	if len(m) == 0 {
		return ""
	}
	return formatValue(m[0].Value)
}

// Entries renders every "key: value" pair of a top-level mapping joined by ", ",
// without the surrounding braces. Non-mapping values are formatted as a whole.
func Entries(v domain.DisplayValue) string {
	m, ok := v.(domain.Mapping)
	if !ok {
		return Format(v)
	}
	return formatEntries(m)
}

// Values flattens a value into the string form of its non-null leaves,
// depth first, mapping values in insertion order.
func Values(v domain.DisplayValue) []string {
	out := []string{}
	collectValues(v, &out)
	return out
}

func collectValues(v domain.DisplayValue, out *[]string) {
	switch x := v.(type) {
	case domain.Sequence:
		for _, item := range x {
			collectValues(item, out)
		}
	case domain.Mapping:
		for _, e := range x {
			collectValues(e.Value, out)
		}
	case domain.Scalar:
		if !x.IsNull() {
			*out = append(*out, ScalarString(x))
		}
	}
}

func formatValue(v domain.DisplayValue) string {
	switch x := v.(type) {
	case domain.Sequence:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, separator) + "]"
	case domain.Mapping:
		return "{" + formatEntries(x) + "}"
	case domain.Scalar:
		return ScalarString(x)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func formatEntries(m domain.Mapping) string {
	parts := make([]string, len(m))
	for i, e := range m {
		parts[i] = e.Key + ": " + formatValue(e.Value)
	}
	return strings.Join(parts, separator)
}

// ScalarString returns the display form of a scalar; null is "".
func ScalarString(s domain.Scalar) string {
	switch x := s.Value.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	}
	return fmt.Sprint(s.Value)
}
