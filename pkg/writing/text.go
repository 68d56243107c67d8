package writing

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	richPolicy   = bluemonday.UGCPolicy()

	lineBreaks = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "\n")
	emptyTags  = regexp.MustCompile(`(?i)<\s*/?\s*(br|p)\s*/?\s*>`)
)

// PlainText strips markup from rich text, keeping line breaks.
func PlainText(content string) string {
	return html.UnescapeString(strictPolicy.Sanitize(lineBreaks.Replace(content)))
}

// Sanitize removes unsafe markup from generated rich text.
func Sanitize(content string) string {
	return richPolicy.Sanitize(content)
}

// OnlyLineBreaks reports whether content has no text besides <p> and <br> tags.
func OnlyLineBreaks(content string) bool {
	return strings.TrimSpace(emptyTags.ReplaceAllString(content, "")) == ""
}

// Length counts the characters checked against length limits: the first
// newline is dropped and surrounding space trimmed.
func Length(content string) int {
	text := strings.TrimSpace(strings.Replace(PlainText(content), "\n", "", 1))
	return utf8.RuneCountInString(text)
}
