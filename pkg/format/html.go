package format

import (
	"html"
	"strings"

	"github.com/aretw0/lumina/pkg/domain"
)

// ValueHTML renders a value as search-result markup: leaves wrapped in <b>,
// mapping keys in <i>. All text is escaped.
func ValueHTML(v domain.DisplayValue) string {
	switch x := v.(type) {
	case domain.Sequence:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = ValueHTML(item)
		}
		return "[" + strings.Join(parts, separator) + "]"
	case domain.Mapping:
		return "{" + EntriesHTML(x) + "}"
	case domain.Scalar:
		return "<b>" + html.EscapeString(ScalarString(x)) + "</b>"
	}
	return ""
}

// EntriesHTML renders the entries of a mapping as "<i>key</i>: value" pairs.
func EntriesHTML(m domain.Mapping) string {
	parts := make([]string, len(m))
	for i, e := range m {
		parts[i] = "<i>" + html.EscapeString(e.Key) + "</i>: " + ValueHTML(e.Value)
	}
	return strings.Join(parts, separator)
}

// ValuesHTML renders the flattened leaves, each wrapped in <b>.
func ValuesHTML(v domain.DisplayValue) string {
	values := Values(v)
	for i, s := range values {
		values[i] = "<b>" + html.EscapeString(s) + "</b>"
	}
	return strings.Join(values, separator)
}

// PrimaryValueHTML is the markup form of PrimaryValue.
func PrimaryValueHTML(v domain.DisplayValue) string {
	m, ok := v.(domain.Mapping)
	if !ok {
		return ValueHTML(v)
	}
	if len(m) == 0 {
		return ""
	}
	return ValueHTML(m[0].Value)
}
