// Package config loads lumina settings from lumina.yaml, LUMINA_* environment
// variables and command-line flags.
package config
