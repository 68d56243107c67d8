package memory

import (
	"context"
	"sync"

	"github.com/aretw0/lumina/pkg/domain"
)

// Notifier implements ports.Notifier by recording every notification.
// Safe for concurrent use.
type Notifier struct {
	mu   sync.RWMutex
	sent []domain.Notification
}

// NewNotifier creates an empty recording notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify records n.
func (n *Notifier) Notify(ctx context.Context, notification domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

// Notifications returns a copy of the recorded notifications, oldest first.
func (n *Notifier) Notifications() []domain.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]domain.Notification(nil), n.sent...)
}

// Len returns how many notifications were recorded.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.sent)
}

// Reset forgets every recorded notification.
func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}
