package format_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/format"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, s string) domain.DisplayValue {
	t.Helper()
	v, err := format.DecodeJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty top-level sequence", `[]`, ""},
		{"nested empty sequence", `{"a": []}`, "{a: []}"},
		{"insertion order", `{"b": 1, "a": 2}`, "{b: 1, a: 2}"},
		{"null", `null`, ""},
		{"null inside sequence", `[1, null, 2]`, "[1, , 2]"},
		{"single element", `[5]`, "[5]"},
		{"nested", `[1, [2, 3], {"x": null, "y": "z"}]`, "[1, [2, 3], {x: , y: z}]"},
		{"duplicate keys", `{"a": 1, "a": 2}`, "{a: 1, a: 2}"},
		{"empty mapping", `{}`, "{}"},
		{"scalar string", `"hello"`, "hello"},
		{"boolean", `false`, "false"},
		{"decimal", `1.50`, "1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Format(mustJSON(t, tt.input)))
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{`{"a": [1, 2], "b": {"c": "<d>"}}`, `"plain"`, `[true, null]`, `{}`}
	for _, in := range inputs {
		once := format.Format(mustJSON(t, in))
		assert.Equal(t, once, format.Format(domain.String(once)), in)
	}
}

func TestPrimaryValue(t *testing.T) {
	assert.Equal(t, "", format.PrimaryValue(domain.Mapping{}))
	assert.Equal(t, "1", format.PrimaryValue(mustJSON(t, `{"b": 1, "a": 2}`)))
	assert.Equal(t, "[1, 2]", format.PrimaryValue(mustJSON(t, `{"a": [1, 2]}`)))
	assert.Equal(t, "[]", format.PrimaryValue(mustJSON(t, `{"a": []}`)))
	assert.Equal(t, "x", format.PrimaryValue(domain.String("x")))
}

func TestEntries(t *testing.T) {
	v := mustJSON(t, `{"b": 1, "a": [true, null], "c": {"d": []}}`)
	assert.Equal(t, "b: 1, a: [true, ], c: {d: []}", format.Entries(v))
	assert.Equal(t, "a: [x]", format.Entries(mustJSON(t, `{"a": ["x"]}`)))
	assert.Equal(t, "", format.Entries(domain.Mapping{}))
}

func TestValues(t *testing.T) {
	v := mustJSON(t, `{"a": [1, null, "x"], "b": {"c": false}}`)
	assert.Equal(t, []string{"1", "x", "false"}, format.Values(v))
	assert.Empty(t, format.Values(domain.Null()))
}

type point struct{ X, Y int }

func TestClassify(t *testing.T) {
	s := "ptr"
	var nilPtr *string

	tests := []struct {
		name  string
		input any
		want  domain.DisplayValue
	}{
		{"nil", nil, domain.Null()},
		{"string", "x", domain.String("x")},
		{"passthrough", domain.Seq(domain.Bool(true)), domain.Seq(domain.Bool(true))},
		{"bytes", []byte("raw"), domain.String("raw")},
		{
			"map keys sorted",
			map[string]any{"b": 1, "a": "x"},
			domain.Mapping{{Key: "a", Value: domain.String("x")}, {Key: "b", Value: domain.Scalar{Value: 1}}},
		},
		{"typed slice", []int{1, 2}, domain.Sequence{domain.Scalar{Value: 1}, domain.Scalar{Value: 2}}},
		{"stringer", time.Second, domain.String("1s")},
		{"pointer", &s, domain.String("ptr")},
		{"nil pointer", nilPtr, domain.Null()},
		{"struct fallback", point{1, 2}, domain.String("{1 2}")},
		{"json number", json.Number("7"), domain.Number("7")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, format.Classify(tt.input)); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatAny(t *testing.T) {
	assert.Equal(t, "", format.FormatAny([]any{}))
	assert.Equal(t, "{a: [], b: 2.5}", format.FormatAny(map[string]any{"b": 2.5, "a": []any{}}))
}

func TestHTML(t *testing.T) {
	v := domain.Mapping{
		{Key: "a<", Value: domain.String("<x>")},
		{Key: "b", Value: domain.Seq(domain.Int(1), domain.Null())},
	}
	assert.Equal(t, "{<i>a&lt;</i>: <b>&lt;x&gt;</b>, <i>b</i>: [<b>1</b>, <b></b>]}", format.ValueHTML(v))
	assert.Equal(t, "<b>&lt;x&gt;</b>, <b>1</b>", format.ValuesHTML(v))
	assert.Equal(t, "<b>&lt;x&gt;</b>", format.PrimaryValueHTML(v))
	assert.Equal(t, "", format.PrimaryValueHTML(domain.Mapping{}))
}

func TestRender(t *testing.T) {
	v := mustJSON(t, `{"name": "Ann", "tags": ["a", "b"], "note": null}`)

	tests := []struct {
		mode format.Mode
		want string
	}{
		{format.ModeFormat, "{name: Ann, tags: [a, b], note: }"},
		{format.ModePrimary, "Ann"},
		{format.ModeEntries, "name: Ann, tags: [a, b], note: "},
		{format.ModeValues, "Ann, a, b"},
		{format.ModeHTML, "{<i>name</i>: <b>Ann</b>, <i>tags</i>: [<b>a</b>, <b>b</b>], <i>note</i>: <b></b>}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, format.Render(v, tt.mode), tt.mode)
	}

	m, err := format.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, format.ModeFormat, m)
	_, err = format.ParseMode("xml")
	assert.Error(t, err)
}
