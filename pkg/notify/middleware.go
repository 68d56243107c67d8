package notify

import "github.com/aretw0/lumina/pkg/ports"

// Middleware wraps a Notifier to add behavior.
type Middleware func(ports.Notifier) ports.Notifier

// Chain applies mws to next; the first middleware sees a notification first.
func Chain(next ports.Notifier, mws ...Middleware) ports.Notifier {
	for i := len(mws) - 1; i >= 0; i-- {
		next = mws[i](next)
	}
	return next
}
