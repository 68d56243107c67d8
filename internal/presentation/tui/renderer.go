package tui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Presenter renders results for a terminal, or plain text when out is not one.
type Presenter struct {
	out     io.Writer
	profile termenv.Profile
	width   int
	md      *glamour.TermRenderer
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithNoColor disables colors and markdown styling.
func WithNoColor() Option {
	return func(p *Presenter) {
		p.profile = termenv.Ascii
	}
}

// WithWidth sets the word-wrap width.
func WithWidth(width int) Option {
	return func(p *Presenter) {
		p.width = width
	}
}

// New creates a Presenter writing to out. Colors and wrapping follow the
// terminal when out is one.
func New(out io.Writer, opts ...Option) *Presenter {
	p := &Presenter{out: out, profile: termenv.Ascii}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.profile = termenv.NewOutput(f).EnvColorProfile()
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			p.width = w
		}
	}
	for _, opt := range opts {
		opt(p)
	}

	options := []glamour.TermRendererOption{glamour.WithColorProfile(p.profile)}
	if p.profile == termenv.Ascii {
		options = append(options, glamour.WithStandardStyle("notty"))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if p.width > 0 {
		options = append(options, glamour.WithWordWrap(p.width))
	}
	// A failed renderer falls back to raw markdown.
	p.md, _ = glamour.NewTermRenderer(options...)
	return p
}

// Colored reports whether output carries ANSI colors.
func (p *Presenter) Colored() bool {
	return p.profile != termenv.Ascii
}

// Markdown renders markdown for the terminal.
func (p *Presenter) Markdown(markdown string) string {
	if p.md == nil {
		return markdown
	}
	out, err := p.md.Render(markdown)
	if err != nil {
		return markdown
	}
	return normalizeSpacing(out)
}

// Print writes rendered markdown followed by a newline.
func (p *Presenter) Print(markdown string) error {
	_, err := io.WriteString(p.out, p.Markdown(markdown)+"\n")
	return err
}

// Color paints s with a hex color when colors are enabled.
func (p *Presenter) Color(s, hex string) string {
	if !p.Colored() {
		return s
	}
	return termenv.String(s).Foreground(p.profile.Color(hex)).String()
}

func normalizeSpacing(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
		if i == 0 {
			lines[i] = strings.TrimLeft(lines[i], " ")
		}
	}
	return strings.Join(lines, "\n")
}
