package format

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/lumina/pkg/domain"
)

// RowIDHeader is the first header cell of a serialized table.
const RowIDHeader = "ID_ROW"

const cellSeparator = "|"

// SimpleRow is one serialized document.
type SimpleRow struct {
	ID    string
	Cells []string
}

// SimpleTable is the flat, formatted view of a collection sent to the AI
// service and shown back when confirming its answer.
type SimpleTable struct {
	Name        string
	Attributes  []domain.Attribute
	Rows        []SimpleRow
	ColumnWidth map[string]int
}

// BuildSimpleTable formats every document of a collection. Column widths track
// the longest formatted value; a missing value counts the attribute name.
func BuildSimpleTable(c domain.Collection, docs []domain.Document, cc domain.ConstraintContext) SimpleTable {
	t := SimpleTable{
		Name:        c.Name,
		Attributes:  c.Attributes,
		Rows:        make([]SimpleRow, 0, len(docs)),
		ColumnWidth: make(map[string]int, len(c.Attributes)),
	}

	for _, doc := range docs {
		row := SimpleRow{ID: doc.ID, Cells: make([]string, 0, len(c.Attributes))}
		for _, attr := range c.Attributes {
			width := t.ColumnWidth[attr.ID]
			raw, ok := doc.Data[attr.ID]
			if !ok {
				row.Cells = append(row.Cells, NewAttributeValue("", attr, cc).Format())
				t.ColumnWidth[attr.ID] = max(width, utf8.RuneCountInString(attr.Name))
				continue
			}
			cell := NewAttributeValue(raw, attr, cc).Format()
			row.Cells = append(row.Cells, cell)
			t.ColumnWidth[attr.ID] = max(width, utf8.RuneCountInString(cell))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Header returns the header line: ID_ROW followed by attribute names.
func (t SimpleTable) Header() string {
	cells := make([]string, 0, len(t.Attributes)+1)
	cells = append(cells, RowIDHeader)
	for _, a := range t.Attributes {
		cells = append(cells, a.Name)
	}
	return strings.Join(cells, cellSeparator)
}

// Lines serializes the table: header first, then one line per row.
func (t SimpleTable) Lines() []string {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, t.Header())
	for _, r := range t.Rows {
		lines = append(lines, strings.Join(append([]string{r.ID}, r.Cells...), cellSeparator))
	}
	return lines
}

// Filter keeps only the rows whose id is listed, in table order.
func (t SimpleTable) Filter(ids []string) SimpleTable {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := t
	out.Rows = make([]SimpleRow, 0, len(ids))
	for _, r := range t.Rows {
		if wanted[r.ID] {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// ColumnValues returns the formatted values of one attribute for the documents
// that hold it, in document order.
func ColumnValues(attr domain.Attribute, docs []domain.Document, cc domain.ConstraintContext) []string {
	values := make([]string, 0, len(docs))
	for _, doc := range docs {
		if raw, ok := doc.Data[attr.ID]; ok {
			values = append(values, NewAttributeValue(raw, attr, cc).Format())
		}
	}
	return values
}

// CheckValue groups the rows sharing one formatted value.
type CheckValue struct {
	Value string
	Rows  []int
	IDs   []string
}

// CheckValues groups one attribute's formatted values across documents sorted
// by id. Distinct values keep first-seen order.
type CheckValues struct {
	order  []string
	values map[string]*CheckValue
}

// BuildCheckValues collects the distinct values of an attribute.
func BuildCheckValues(attr domain.Attribute, docs []domain.Document, cc domain.ConstraintContext) *CheckValues {
	sorted := make([]domain.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	cv := &CheckValues{values: make(map[string]*CheckValue)}
	for row, doc := range sorted {
		raw, ok := doc.Data[attr.ID]
		if !ok {
			continue
		}
		value := NewAttributeValue(raw, attr, cc).Format()
		entry, exists := cv.values[value]
		if !exists {
			entry = &CheckValue{Value: value}
			cv.values[value] = entry
			cv.order = append(cv.order, value)
		}
		entry.Rows = append(entry.Rows, row)
		entry.IDs = append(entry.IDs, doc.ID)
	}
	return cv
}

// Data returns the distinct values to send for checking.
func (cv *CheckValues) Data() []string {
	out := make([]string, len(cv.order))
	copy(out, cv.order)
	return out
}

// Resolve maps values reported as invalid back to their groups. Unknown values
// are skipped.
func (cv *CheckValues) Resolve(invalid []string) []CheckValue {
	out := make([]CheckValue, 0, len(invalid))
	for _, v := range invalid {
		if entry, ok := cv.values[v]; ok {
			out = append(out, *entry)
		}
	}
	return out
}
