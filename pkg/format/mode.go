package format

import (
	"fmt"
	"strings"

	"github.com/aretw0/lumina/pkg/domain"
)

// Mode selects one of the renderings of a value.
type Mode string

const (
	ModeFormat  Mode = "format"
	ModePrimary Mode = "primary"
	ModeEntries Mode = "entries"
	ModeValues  Mode = "values"
	ModeHTML    Mode = "html"
)

// Modes lists every rendering mode.
var Modes = []Mode{ModeFormat, ModePrimary, ModeEntries, ModeValues, ModeHTML}

// ParseMode validates a mode name. The empty name is ModeFormat.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeFormat, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown format mode %q", s)
}

// Render renders v in the given mode. Values are joined by ", ".
func Render(v domain.DisplayValue, mode Mode) string {
	switch mode {
	case ModePrimary:
		return PrimaryValue(v)
	case ModeEntries:
		return Entries(v)
	case ModeValues:
		return strings.Join(Values(v), separator)
	case ModeHTML:
		return ValueHTML(v)
	default:
		return Format(v)
	}
}
