package format_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/format"
	"github.com/stretchr/testify/assert"
)

func attr(id string, ct domain.ConstraintType, cfg map[string]any) domain.Attribute {
	return domain.Attribute{ID: id, Name: id, Constraint: &domain.Constraint{Type: ct, Config: cfg}}
}

func TestParseBoolean(t *testing.T) {
	for _, v := range []any{true, "true", "YES", "ja", "áno", "sí", "да", "是", "はい"} {
		assert.True(t, format.ParseBoolean(v), "%v", v)
	}
	for _, v := range []any{false, "no", "", nil, 1, "nein"} {
		assert.False(t, format.ParseBoolean(v), "%v", v)
	}
}

func TestFormatUnknown(t *testing.T) {
	assert.Equal(t, "", format.FormatUnknown(nil))
	assert.Equal(t, "", format.FormatUnknown(""))
	assert.Equal(t, "", format.FormatUnknown(false))
	assert.Equal(t, "true", format.FormatUnknown(true))
	assert.Equal(t, "0", format.FormatUnknown(0))
	assert.Equal(t, "0", format.FormatUnknown(json.Number("0")))
}

func TestFormatDataValue_Boolean(t *testing.T) {
	a := attr("done", domain.ConstraintBoolean, nil)
	assert.Equal(t, "true", format.FormatDataValue("yes", a, domain.ConstraintContext{}))
	assert.Equal(t, "false", format.FormatDataValue("no", a, domain.ConstraintContext{}))
	assert.Equal(t, "", format.FormatDataValue(nil, a, domain.ConstraintContext{}))
}

func TestFormatDataValue_Number(t *testing.T) {
	cc := domain.ConstraintContext{Locale: "en"}

	fixed := attr("n", domain.ConstraintNumber, map[string]any{"decimals": 2})
	assert.Equal(t, "3.14", format.FormatDataValue(json.Number("3.14159"), fixed, cc))
	assert.Equal(t, "abc", format.FormatDataValue("abc", fixed, cc))

	grouped := attr("n", domain.ConstraintNumber, map[string]any{"separated": true})
	assert.Equal(t, "1,234,567", format.FormatDataValue(json.Number("1234567"), grouped, cc))

	plain := attr("n", domain.ConstraintNumber, nil)
	assert.Equal(t, "42.10", format.FormatDataValue(json.Number("42.10"), plain, cc))
}

func TestFormatDataValue_Text(t *testing.T) {
	cc := domain.ConstraintContext{Locale: "en"}
	tests := []struct {
		style string
		input string
		want  string
	}{
		{format.CaseUpper, "hello world", "HELLO WORLD"},
		{format.CaseLower, "Hello World", "hello world"},
		{format.CaseTitle, "hello world", "Hello World"},
		{format.CaseSentence, "hELLO wORLD", "Hello world"},
		{format.CaseSentence, "  42 apples", "  42 Apples"},
		{"", "MiXeD", "MiXeD"},
	}

	for _, tt := range tests {
		t.Run(tt.style+"/"+tt.input, func(t *testing.T) {
			a := attr("t", domain.ConstraintText, map[string]any{"caseStyle": tt.style})
			assert.Equal(t, tt.want, format.FormatDataValue(tt.input, a, cc))
		})
	}
}

func TestFormatDataValue_Select(t *testing.T) {
	a := attr("s", domain.ConstraintSelect, map[string]any{
		"displayValues": true,
		"options": []any{
			map[string]any{"value": "a", "displayValue": "Alpha"},
			map[string]any{"value": "b", "displayValue": ""},
		},
	})

	cc := domain.ConstraintContext{}
	assert.Equal(t, "Alpha", format.FormatDataValue("a", a, cc))
	assert.Equal(t, "b", format.FormatDataValue("b", a, cc))
	assert.Equal(t, "z", format.FormatDataValue("z", a, cc))
	assert.Equal(t, "Alpha, z", format.FormatSelect([]any{"a", "z", ""}, "s", selectConfig(t, a), cc))

	translated := domain.ConstraintContext{Translations: map[string]map[string]string{"s": {"a": "Alfa"}}}
	assert.Equal(t, "Alfa", format.FormatDataValue("a", a, translated))
}

func selectConfig(t *testing.T, a domain.Attribute) format.SelectConfig {
	t.Helper()
	var cfg format.SelectConfig
	assert.NoError(t, format.DecodeConfig(a.Constraint.Config, &cfg))
	return cfg
}

func TestFormatDateTime(t *testing.T) {
	cfg := format.DateTimeConfig{Format: "DD.MM.YYYY"}

	tests := []struct {
		name        string
		raw         any
		cfg         format.DateTimeConfig
		showInvalid bool
		want        string
	}{
		{"iso date", "2024-03-05", cfg, true, "05.03.2024"},
		{"iso datetime", "2024-03-05T10:20:30Z", cfg, true, "05.03.2024"},
		{"expected format", "05.03.2024", format.DateTimeConfig{Format: "YYYY/MM/DD"}, true, "2024/03/05"},
		{"single digits", "5.3.2024", cfg, true, "05.03.2024"},
		{"invalid shown", "not a date", cfg, true, "not a date"},
		{"invalid hidden", "not a date", cfg, false, ""},
		{"no format keeps raw", "2024-03-05", format.DateTimeConfig{}, true, "2024-03-05"},
		{"unix millis", json.Number("0"), format.DateTimeConfig{Format: "YYYY-MM-DD"}, true, "1970-01-01"},
		{"blank", "", cfg, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.FormatDateTime(tt.raw, tt.cfg, tt.showInvalid))
		})
	}
}

func TestMomentLayout(t *testing.T) {
	assert.Equal(t, "02.01.2006", format.MomentLayout("DD.MM.YYYY"))
	assert.Equal(t, "2006-01-02 15:04:05", format.MomentLayout("YYYY-MM-DD HH:mm:ss"))
	assert.Equal(t, "02 Jan 2006 at 03:04 PM", format.MomentLayout("DD MMM YYYY [at] hh:mm A"))
}

func TestDecodeConfig_WeakTypes(t *testing.T) {
	var cfg format.NumberConfig
	err := format.DecodeConfig(map[string]any{"decimals": "3", "separated": "true"}, &cfg)
	assert.NoError(t, err)
	if assert.NotNil(t, cfg.Decimals) {
		assert.Equal(t, 3, *cfg.Decimals)
	}
	assert.True(t, cfg.Separated)
}
