package domain

// ConstraintType names how an attribute's raw values are validated and displayed.
type ConstraintType string

const (
	ConstraintAddress        ConstraintType = "Address"
	ConstraintBoolean        ConstraintType = "Boolean"
	ConstraintAction         ConstraintType = "Action"
	ConstraintColor          ConstraintType = "Color"
	ConstraintCoordinates    ConstraintType = "Coordinates"
	ConstraintDateTime       ConstraintType = "DateTime"
	ConstraintFileAttachment ConstraintType = "FileAttachment"
	ConstraintDuration       ConstraintType = "Duration"
	ConstraintNone           ConstraintType = "None"
	ConstraintNumber         ConstraintType = "Number"
	ConstraintPercentage     ConstraintType = "Percentage"
	ConstraintLink           ConstraintType = "Link"
	ConstraintSelect         ConstraintType = "Select"
	ConstraintText           ConstraintType = "Text"
	ConstraintUser           ConstraintType = "User"
	ConstraintView           ConstraintType = "View"
)

// ConstraintTypes lists every known constraint type.
var ConstraintTypes = []ConstraintType{
	ConstraintAddress, ConstraintBoolean, ConstraintAction, ConstraintColor,
	ConstraintCoordinates, ConstraintDateTime, ConstraintFileAttachment, ConstraintDuration,
	ConstraintNone, ConstraintNumber, ConstraintPercentage, ConstraintLink,
	ConstraintSelect, ConstraintText, ConstraintUser, ConstraintView,
}

// Constraint is the descriptor attached to an attribute.
// Config is free-form as stored by the backend; typed views are decoded on demand.
type Constraint struct {
	Type   ConstraintType `json:"type" yaml:"type" mapstructure:"type"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty" mapstructure:"config"`
}

// Attribute is a column of a collection or link type.
type Attribute struct {
	ID         string      `json:"id" yaml:"id" mapstructure:"id"`
	Name       string      `json:"name" yaml:"name" mapstructure:"name"`
	Constraint *Constraint `json:"constraint,omitempty" yaml:"constraint,omitempty" mapstructure:"constraint"`
	UsageCount int         `json:"usageCount,omitempty" yaml:"usageCount,omitempty" mapstructure:"usageCount"`
}

// ConstraintType returns the attribute's constraint type, None when unset.
func (a Attribute) ConstraintType() ConstraintType {
	if a.Constraint == nil || a.Constraint.Type == "" {
		return ConstraintNone
	}
	return a.Constraint.Type
}

// ConstraintContext is the shared formatting context: locale plus translation
// tables for option-type constraints, keyed by attribute id then option value.
type ConstraintContext struct {
	Locale       string                       `json:"locale,omitempty" yaml:"locale,omitempty"`
	Translations map[string]map[string]string `json:"translations,omitempty" yaml:"translations,omitempty"`
}

// Translate looks up the display label of an option value for an attribute.
func (c ConstraintContext) Translate(attributeID, value string) (string, bool) {
	if c.Translations == nil {
		return "", false
	}
	labels, ok := c.Translations[attributeID]
	if !ok {
		return "", false
	}
	label, ok := labels[value]
	return label, ok
}

// Collection groups documents sharing the same attributes.
type Collection struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
}

// FindAttribute returns the attribute with the given id.
func (c Collection) FindAttribute(id string) (Attribute, bool) {
	for _, a := range c.Attributes {
		if a.ID == id {
			return a, true
		}
	}
	return Attribute{}, false
}
