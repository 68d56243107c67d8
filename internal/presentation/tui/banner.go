package tui

import (
	"fmt"
	"strings"
)

var bannerLines = []struct {
	text string
	hex  string
}{
	{"  _                 _", "#fbbf24"},
	{" | |   _   _ _ __ (_)_ __   __ _", "#f59e0b"},
	{" | |  | | | | '_ \\| | '_ \\ / _` |", "#f97316"},
	{" | |__| |_| | | | | | | | | (_| |", "#ef4444"},
	{" |_____\\__,_|_| |_|_|_| |_|\\__,_|", "#e11d48"},
}

// PrintBanner writes the Lumina banner, colored when the output allows it.
func (p *Presenter) PrintBanner(version string) {
	fmt.Fprintln(p.out)
	for _, l := range bannerLines {
		fmt.Fprintln(p.out, p.Color(l.text, l.hex))
	}
	if version != "" {
		fmt.Fprintln(p.out, p.Color("  v"+version, "#9ca3af"))
	}
	fmt.Fprintln(p.out)
}

// Banner returns the uncolored banner.
func Banner() string {
	var b strings.Builder
	for _, l := range bannerLines {
		b.WriteString(l.text + "\n")
	}
	return b.String()
}
