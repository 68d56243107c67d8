package prompt

import (
	"strings"
	"testing"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_SizeLimit(t *testing.T) {
	limit := 4096

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sanitizer{MaxSize: limit}.Clean(strings.Repeat("a", tt.inputSize))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrPromptTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClean_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Hello World", "Hello World"},
		{"Safe Controls", "Line1\nLine2\tTabbed", "Line1\nLine2\tTabbed"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"},
		{"Null Byte", "Null\x00Byte", "NullByte"},
		{"Bell", "Ding\x07", "Ding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(0).Clean(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClean_InvalidUTF8(t *testing.T) {
	_, err := Sanitize("bad\xff")
	assert.ErrorIs(t, err, domain.ErrInvalidUTF8)
}

func TestNew_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxSize, "8")
	assert.Equal(t, 8, New(0).MaxSize)
	assert.Equal(t, 100, New(100).MaxSize)

	_, err := Sanitize("123456789")
	assert.ErrorIs(t, err, domain.ErrPromptTooLarge)

	t.Setenv(EnvMaxSize, "garbage")
	assert.Equal(t, DefaultMaxSize, New(0).MaxSize)
}

func TestRequests(t *testing.T) {
	s := New(16)

	req, err := s.TableRequest(domain.TableRequest{TablesDescription: "crm\x00"})
	require.NoError(t, err)
	assert.Equal(t, "crm", req.TablesDescription)

	_, err = s.AssistedWritingRequest(domain.AssistedWritingRequest{InputString: strings.Repeat("x", 17)})
	assert.ErrorIs(t, err, domain.ErrPromptTooLarge)

	tpl, err := s.TemplateSuggestionRequest(domain.TemplateSuggestionRequest{ProjectDescription: "sales"})
	require.NoError(t, err)
	assert.Equal(t, "sales", tpl.ProjectDescription)

	md, err := s.MassDeleteRequest(domain.MassDeleteRequest{DeleteDescription: "old\a", Data: []string{"ID_ROW|A"}})
	require.NoError(t, err)
	assert.Equal(t, "old", md.DeleteDescription)
	assert.Equal(t, []string{"ID_ROW|A"}, md.Data)
}
