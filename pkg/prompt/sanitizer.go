package prompt

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/lumina/pkg/domain"
)

var (
	// DefaultMaxSize is 4KB (conservative default)
	DefaultMaxSize = 4096
	// EnvMaxSize is the environment variable to override the default
	EnvMaxSize = "LUMINA_MAX_PROMPT_SIZE"
)

// Sanitizer cleans free-text prompts before they leave the process.
type Sanitizer struct {
	MaxSize int
}

// New returns a Sanitizer limited to maxSize bytes. A non-positive size
// falls back to the environment or DefaultMaxSize.
func New(maxSize int) Sanitizer {
	if maxSize <= 0 {
		maxSize = maxSizeFromEnv()
	}
	return Sanitizer{MaxSize: maxSize}
}

// Sanitize cleans a prompt with the environment-configured limit.
func Sanitize(input string) (string, error) {
	return New(0).Clean(input)
}

// Clean enforces the size limit, validates UTF-8 and strips control
// characters other than newline, tab and carriage return.
func (s Sanitizer) Clean(input string) (string, error) {
	limit := s.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	if len(input) > limit {
		// Rejected rather than truncated: a cut prompt changes its meaning.
		return "", fmt.Errorf("%w: size=%d limit=%d", domain.ErrPromptTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", domain.ErrInvalidUTF8
	}

	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func maxSizeFromEnv() int {
	if val := os.Getenv(EnvMaxSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxSize
}
