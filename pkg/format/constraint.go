package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Case styles supported by the Text constraint.
const (
	CaseNone     = "None"
	CaseLower    = "LowerCase"
	CaseUpper    = "UpperCase"
	CaseTitle    = "TitleCase"
	CaseSentence = "SentenceCase"
)

// DateTimeConfig is the typed view of a DateTime constraint config.
// Format uses moment-style tokens (DD.MM.YYYY, HH:mm, ...).
type DateTimeConfig struct {
	Format string `mapstructure:"format"`
}

// NumberConfig is the typed view of a Number constraint config.
type NumberConfig struct {
	Decimals  *int `mapstructure:"decimals"`
	Separated bool `mapstructure:"separated"`
}

// TextConfig is the typed view of a Text constraint config.
type TextConfig struct {
	CaseStyle string `mapstructure:"caseStyle"`
	MinLength int    `mapstructure:"minLength"`
	MaxLength int    `mapstructure:"maxLength"`
}

// SelectOption is one option of a Select constraint.
type SelectOption struct {
	Value        string `mapstructure:"value"`
	DisplayValue string `mapstructure:"displayValue"`
}

// SelectConfig is the typed view of a Select constraint config.
type SelectConfig struct {
	Multi         bool           `mapstructure:"multi"`
	DisplayValues bool           `mapstructure:"displayValues"`
	Options       []SelectOption `mapstructure:"options"`
}

// DecodeConfig decodes a free-form constraint config into a typed config.
func DecodeConfig(raw map[string]any, out any) error {
	if raw == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode constraint config: %w", err)
	}
	return nil
}

// FormatDataValue formats one raw scalar according to the attribute's constraint.
// A config that cannot be decoded is treated as absent.
func FormatDataValue(raw any, attr domain.Attribute, cc domain.ConstraintContext) string {
	var cfg map[string]any
	if attr.Constraint != nil {
		cfg = attr.Constraint.Config
	}

	switch attr.ConstraintType() {
	case domain.ConstraintDateTime:
		var c DateTimeConfig
		_ = DecodeConfig(cfg, &c)
		return FormatDateTime(raw, c, true)
	case domain.ConstraintNumber:
		var c NumberConfig
		_ = DecodeConfig(cfg, &c)
		return FormatNumber(raw, c, cc.Locale)
	case domain.ConstraintText:
		var c TextConfig
		_ = DecodeConfig(cfg, &c)
		return FormatText(raw, c, cc.Locale)
	case domain.ConstraintBoolean:
		if isBlank(raw) {
			return ""
		}
		return strconv.FormatBool(ParseBoolean(raw))
	case domain.ConstraintSelect:
		var c SelectConfig
		_ = DecodeConfig(cfg, &c)
		return FormatSelect(raw, attr.ID, c, cc)
	}
	return FormatUnknown(raw)
}

// FormatUnknown renders a value with no constraint: nil, "" and false are
// empty, zero is kept.
func FormatUnknown(raw any) string {
	switch x := raw.(type) {
	case nil:
		return ""
	case bool:
		if !x {
			return ""
		}
	case string:
		return x
	}
	return ScalarString(domain.Scalar{Value: raw})
}

func isBlank(raw any) bool {
	if raw == nil {
		return true
	}
	s, ok := raw.(string)
	return ok && s == ""
}

var truthyValues = []string{"true", "yes", "ja", "ano", "áno", "sí", "si", "sim", "да", "是", "はい"}

// ParseBoolean reports whether a value reads as true in any supported language.
func ParseBoolean(raw any) bool {
	switch x := raw.(type) {
	case bool:
		return x
	case string:
		lower := strings.ToLower(x)
		for _, t := range truthyValues {
			if lower == t {
				return true
			}
		}
	}
	return false
}

// FormatNumber renders a number with optional fixed decimals and locale
// grouping. Non-numeric input falls back to FormatUnknown.
func FormatNumber(raw any, cfg NumberConfig, locale string) string {
	f, ok := toFloat(raw)
	if !ok || (cfg.Decimals == nil && !cfg.Separated) {
		return FormatUnknown(raw)
	}

	if cfg.Separated {
		p := message.NewPrinter(language.Make(locale))
		if cfg.Decimals != nil {
			return p.Sprintf(fmt.Sprintf("%%.%df", *cfg.Decimals), f)
		}
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return p.Sprintf("%d", int64(f))
		}
		return p.Sprintf("%v", f)
	}
	return strconv.FormatFloat(f, 'f', *cfg.Decimals, 64)
}

func toFloat(raw any) (float64, bool) {
	switch x := raw.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// FormatText applies the configured case style to string values.
func FormatText(raw any, cfg TextConfig, locale string) string {
	s, ok := raw.(string)
	if !ok {
		return FormatUnknown(raw)
	}
	return ApplyCaseStyle(s, cfg.CaseStyle, locale)
}

// ApplyCaseStyle transforms text according to a case style.
func ApplyCaseStyle(s, style, locale string) string {
	tag := language.Make(locale)
	switch style {
	case CaseLower:
		return cases.Lower(tag).String(s)
	case CaseUpper:
		return cases.Upper(tag).String(s)
	case CaseTitle:
		return cases.Title(tag).String(s)
	case CaseSentence:
		lower := cases.Lower(tag).String(s)
		for i, r := range lower {
			if unicode.IsLetter(r) {
				size := utf8.RuneLen(r)
				return lower[:i] + cases.Upper(tag).String(lower[i:i+size]) + lower[i+size:]
			}
		}
		return lower
	}
	return s
}

// FormatSelect renders option values through their display labels. Context
// translations win over the config's display values; unknown options render raw.
func FormatSelect(raw any, attributeID string, cfg SelectConfig, cc domain.ConstraintContext) string {
	if items, ok := raw.([]any); ok {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if s := FormatSelect(item, attributeID, cfg, cc); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, separator)
	}

	value := FormatUnknown(raw)
	if value == "" {
		return ""
	}
	if label, ok := cc.Translate(attributeID, value); ok {
		return label
	}
	if cfg.DisplayValues {
		for _, opt := range cfg.Options {
			if opt.Value == value && opt.DisplayValue != "" {
				return opt.DisplayValue
			}
		}
	}
	return value
}

// FormatDateTime renders a date according to the configured format. Invalid
// dates render raw when showInvalid is set, and as "" otherwise. Without a
// configured format the raw value is kept.
func FormatDateTime(raw any, cfg DateTimeConfig, showInvalid bool) string {
	if isBlank(raw) {
		return ""
	}

	t, ok := ParseDateTime(raw, cfg.Format)
	if !ok {
		if showInvalid {
			return FormatUnknown(raw)
		}
		return ""
	}
	if cfg.Format == "" {
		return FormatUnknown(raw)
	}
	return t.Format(MomentLayout(cfg.Format))
}

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var fallbackDateFormats = []string{"DD.MM.YYYY", "YYYY-MM-DD", "DD/MM/YYYY", "MM/DD/YYYY", "YYYY"}

// ParseDateTime parses ISO-8601 first, then the expected format, then the
// common fallback formats. Numbers are read as Unix milliseconds.
func ParseDateTime(raw any, expectedFormat string) (time.Time, bool) {
	switch x := raw.(type) {
	case time.Time:
		return x, true
	case json.Number, float64, int, int64:
		f, ok := toFloat(x)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(f)).UTC(), true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		formats := fallbackDateFormats
		if expectedFormat != "" {
			formats = append([]string{expectedFormat}, fallbackDateFormats...)
		}
		for _, f := range formats {
			layout := MomentLayout(f)
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
			if loose := looseLayout(layout); loose != layout {
				if t, err := time.Parse(loose, s); err == nil {
					return t, true
				}
			}
		}
	}
	return time.Time{}, false
}

// looseLayout accepts single-digit days and months ("1.2.2024").
func looseLayout(layout string) string {
	r := strings.NewReplacer("02", "2", "01", "1")
	return r.Replace(layout)
}

var momentTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"DD", "02"},
	{"D", "2"},
	{"HH", "15"},
	{"H", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"SSS", "000"},
	{"A", "PM"},
	{"a", "pm"},
	{"ZZ", "-0700"},
	{"Z", "-07:00"},
}

// MomentLayout translates a moment-style date format into a Go time layout.
// Text in square brackets is copied literally.
func MomentLayout(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i:], ']')
			if end > 0 {
				b.WriteString(format[i+1 : i+end])
				i += end + 1
				continue
			}
		}
		matched := false
		for _, t := range momentTokens {
			if strings.HasPrefix(format[i:], t.token) {
				b.WriteString(t.layout)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}
