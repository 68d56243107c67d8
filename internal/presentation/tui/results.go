package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/lumina/pkg/domain"
)

var statusColors = map[domain.Status]string{
	domain.StatusEmpty:    "#9ca3af",
	domain.StatusPending:  "#f59e0b",
	domain.StatusResolved: "#22c55e",
	domain.StatusFailed:   "#ef4444",
}

// Status renders a session status label.
func (p *Presenter) Status(s domain.Status) string {
	return p.Color(string(s), statusColors[s])
}

// Failure renders the error message of a failed request.
func (p *Presenter) Failure(kind domain.OperationKind, message string) string {
	return p.Status(domain.StatusFailed) + " " + string(kind) + ": " + message
}

// ResultMarkdown describes an AI response payload as markdown.
func ResultMarkdown(payload any) string {
	var b strings.Builder
	switch res := payload.(type) {
	case domain.TableResponse:
		if len(res.Tables) == 0 {
			return "_No tables suggested._"
		}
		for _, t := range res.Tables {
			fmt.Fprintf(&b, "## %s\n\n", t.Name)
			for _, a := range t.Attributes {
				fmt.Fprintf(&b, "- **%s** (%s)\n", a.Name, a.ConstraintType())
			}
			b.WriteString("\n")
		}
	case domain.AssistedWritingResponse:
		if res.GeneratedString == "" {
			return "_No text generated._"
		}
		b.WriteString(res.GeneratedString)
	case domain.TemplateSuggestionResponse:
		if len(res.BestMatchTemplates) == 0 {
			return "_No matching templates._"
		}
		for i, name := range res.BestMatchTemplates {
			fmt.Fprintf(&b, "%d. %s\n", i+1, name)
		}
	case domain.MassDeleteResponse:
		if len(res.IDsToBeDeleted) == 0 {
			return "_No rows to delete._"
		}
		fmt.Fprintf(&b, "**%d rows** to delete:\n\n", len(res.IDsToBeDeleted))
		for _, id := range res.IDsToBeDeleted {
			fmt.Fprintf(&b, "- `%s`\n", id)
		}
	case domain.CheckDataResponse:
		if len(res.InvalidData) == 0 {
			return "_All values look valid._"
		}
		b.WriteString("Suspicious values:\n\n")
		for _, v := range res.InvalidData {
			fmt.Fprintf(&b, "- `%s`\n", v)
		}
	case domain.SuggestDataTypeResponse:
		if res.Attribute == nil {
			return "_No data type suggested._"
		}
		fmt.Fprintf(&b, "Suggested type for **%s**: `%s`", res.Attribute.Name, res.Attribute.ConstraintType())
	default:
		fmt.Fprintf(&b, "%v", payload)
	}
	return strings.TrimRight(b.String(), "\n")
}
