package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	assert.False(t, p.Colored(), "a buffer is not a terminal")
	assert.Equal(t, "resolved", p.Status(domain.StatusResolved))
	assert.Equal(t, "failed checkData: boom", p.Failure(domain.OpCheckData, "boom"))

	require.NoError(t, p.Print("**bold** text"))
	assert.Contains(t, buf.String(), "bold")
	assert.Contains(t, buf.String(), "text")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPresenter_Banner(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, WithNoColor()).PrintBanner("1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.True(t, strings.HasPrefix(Banner(), "  _"))
}

func TestResultMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"no tables", domain.TableResponse{}, "_No tables suggested._"},
		{"templates", domain.TemplateSuggestionResponse{BestMatchTemplates: []string{"CRM", "HR"}}, "1. CRM\n2. HR"},
		{"mass delete", domain.MassDeleteResponse{IDsToBeDeleted: []string{"d1"}}, "**1 rows** to delete:\n\n- `d1`"},
		{"check data", domain.CheckDataResponse{InvalidData: []string{"x"}}, "Suspicious values:\n\n- `x`"},
		{"writing", domain.AssistedWritingResponse{GeneratedString: "hello"}, "hello"},
		{
			"data type",
			domain.SuggestDataTypeResponse{Attribute: &domain.Attribute{Name: "Due", Constraint: &domain.Constraint{Type: domain.ConstraintDateTime}}},
			"Suggested type for **Due**: `DateTime`",
		},
		{
			"tables",
			domain.TableResponse{Tables: []domain.GeneratedTable{{Name: "Leads", Attributes: []domain.Attribute{{Name: "Email"}}}}},
			"## Leads\n\n- **Email** (None)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultMarkdown(tt.payload))
		})
	}
}
