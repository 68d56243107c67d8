package ports

import (
	"context"

	"github.com/aretw0/lumina/pkg/domain"
)

// Notifier publishes process-wide notifications, outside the error channel of
// the operation that failed.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n domain.Notification) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n domain.Notification) error {
	return f(ctx, n)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(context.Context, domain.Notification) error { return nil }
