package format

import "github.com/aretw0/lumina/pkg/domain"

// AttributeValue pairs a raw stored value with its attribute and the shared
// constraint context. It is built per document/attribute pair while rendering.
type AttributeValue struct {
	Raw       any
	Attribute domain.Attribute
	Context   domain.ConstraintContext
}

// NewAttributeValue builds an AttributeValue.
func NewAttributeValue(raw any, attr domain.Attribute, cc domain.ConstraintContext) AttributeValue {
	return AttributeValue{Raw: raw, Attribute: attr, Context: cc}
}

// Display classifies the raw value. Without a constraint the leaves are kept
// as they are; otherwise every non-null leaf is formatted by the constraint.
func (v AttributeValue) Display() domain.DisplayValue {
	dv := Classify(v.Raw)
	if v.Attribute.ConstraintType() == domain.ConstraintNone {
		return dv
	}
	return mapLeaves(dv, func(s domain.Scalar) domain.DisplayValue {
		if s.IsNull() {
			return s
		}
		return domain.String(FormatDataValue(s.Value, v.Attribute, v.Context))
	})
}

// Format renders the value for display.
func (v AttributeValue) Format() string {
	return Format(v.Display())
}

func mapLeaves(v domain.DisplayValue, fn func(domain.Scalar) domain.DisplayValue) domain.DisplayValue {
	switch x := v.(type) {
	case domain.Sequence:
		out := make(domain.Sequence, len(x))
		for i, item := range x {
			out[i] = mapLeaves(item, fn)
		}
		return out
	case domain.Mapping:
		out := make(domain.Mapping, len(x))
		for i, e := range x {
			out[i] = domain.Entry{Key: e.Key, Value: mapLeaves(e.Value, fn)}
		}
		return out
	case domain.Scalar:
		return fn(x)
	}
	return v
}

// DocumentValue builds the display mapping of a document: known attributes
// first in attribute order, keyed by name, then the remaining data keys.
func DocumentValue(doc domain.Document, attributes []domain.Attribute, cc domain.ConstraintContext) domain.Mapping {
	m := make(domain.Mapping, 0, len(doc.Data))
	known := make(map[string]bool, len(attributes))
	for _, attr := range attributes {
		known[attr.ID] = true
		raw, ok := doc.Data[attr.ID]
		if !ok {
			continue
		}
		name := attr.Name
		if name == "" {
			name = attr.ID
		}
		m = append(m, domain.Entry{Key: name, Value: NewAttributeValue(raw, attr, cc).Display()})
	}
	for _, key := range doc.Keys() {
		if !known[key] {
			m = append(m, domain.Entry{Key: key, Value: Classify(doc.Data[key])})
		}
	}
	return m
}

// FormatDocument renders a whole document as a mapping.
func FormatDocument(doc domain.Document, attributes []domain.Attribute, cc domain.ConstraintContext) string {
	return Format(DocumentValue(doc, attributes, cc))
}

// DocumentEntries renders every "name: value" pair of a document.
func DocumentEntries(doc domain.Document, attributes []domain.Attribute, cc domain.ConstraintContext) string {
	return Entries(DocumentValue(doc, attributes, cc))
}

// DocumentPrimaryValue renders the first value of a document.
func DocumentPrimaryValue(doc domain.Document, attributes []domain.Attribute, cc domain.ConstraintContext) string {
	return PrimaryValue(DocumentValue(doc, attributes, cc))
}

// DocumentValues flattens a document into its leaf values.
func DocumentValues(doc domain.Document, attributes []domain.Attribute, cc domain.ConstraintContext) []string {
	return Values(DocumentValue(doc, attributes, cc))
}
