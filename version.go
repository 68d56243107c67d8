package lumina

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the released version of the module.
var Version = strings.TrimSpace(version)
