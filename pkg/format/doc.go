/*
Package format renders document data for display.

Raw values are classified once into a domain.DisplayValue (Classify, DecodeJSON,
DecodeYAML) and then rendered by total functions over the closed set of variants:

	v, _ := format.DecodeJSON([]byte(`{"b": 1, "a": [true, null]}`))
	format.Format(v)       // {b: 1, a: [true, ]}
	format.PrimaryValue(v) // 1
	format.Entries(v)      // b: 1, a: [true, ]

Formatting never fails. Constraint-aware rendering (dates, numbers, text case,
select labels) goes through AttributeValue and FormatDataValue.
*/
package format
