package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/domain"
)

const subscriberBuffer = 16

// Broadcaster fans session events out to per-owner subscribers (SSE clients).
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // Owner -> Set of Channels
	logger      *slog.Logger
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Broadcaster{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel for the owner's events. The returned function
// unsubscribes and closes the channel.
func (b *Broadcaster) Subscribe(owner string) (<-chan string, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan string, subscriberBuffer)
	if _, ok := b.subscribers[owner]; !ok {
		b.subscribers[owner] = make(map[chan<- string]struct{})
	}
	b.subscribers[owner][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if subs, ok := b.subscribers[owner]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(b.subscribers, owner)
				}
			}
		})
	}
}

// Subscribers returns the number of channels registered for an owner.
func (b *Broadcaster) Subscribers(owner string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[owner])
}

// Broadcast sends a message to every subscriber of the owner. Slow
// subscribers with a full buffer miss the message.
func (b *Broadcaster) Broadcast(owner, msg string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[owner] {
		select {
		case ch <- msg:
		default:
			b.logger.Warn("subscriber buffer full, dropping event", "owner", owner)
		}
	}
}

// Publish encodes an event as JSON and broadcasts it.
func (b *Broadcaster) Publish(owner string, e *domain.RequestEvent) {
	data, err := json.Marshal(e)
	if err != nil {
		b.logger.Error("failed to encode event", "owner", owner, "err", err)
		return
	}
	b.Broadcast(owner, string(data))
}

// Hooks returns lifecycle hooks publishing every event of the owner.
func (b *Broadcaster) Hooks(owner string) domain.LifecycleHooks {
	publish := func(_ context.Context, e *domain.RequestEvent) {
		b.Publish(owner, e)
	}
	return domain.LifecycleHooks{
		OnIssue:   publish,
		OnResolve: publish,
		OnFail:    publish,
		OnDiscard: publish,
		OnReset:   publish,
	}
}
