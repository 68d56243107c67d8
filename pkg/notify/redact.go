package notify

import (
	"context"
	"regexp"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/ports"
)

// Mask replaces every redacted match.
const Mask = "***"

// DefaultPatterns catch credentials that transport errors tend to echo:
// userinfo in URLs, bearer tokens and token query parameters.
var DefaultPatterns = []string{
	`(?i)bearer\s+[A-Za-z0-9\-._~+/]+=*`,
	`(?i)(token|api_key|apikey|access_token)=[^&\s"]+`,
	`//[^/\s:@]+:[^/\s@]+@`,
}

type redactor struct {
	next     ports.Notifier
	patterns []*regexp.Regexp
}

// Redact masks the parts of notification messages matching patterns before
// they reach the next notifier. It panics on an invalid pattern.
func Redact(patterns ...string) Middleware {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return func(next ports.Notifier) ports.Notifier {
		return &redactor{next: next, patterns: compiled}
	}
}

func (r *redactor) Notify(ctx context.Context, n domain.Notification) error {
	n.Message = r.mask(n.Message)
	return r.next.Notify(ctx, n)
}

func (r *redactor) mask(s string) string {
	for _, p := range r.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}
