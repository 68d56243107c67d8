package session

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/lumina/pkg/domain"
)

// Container is the observable target of one issued request.
//
// A container without an outcome is pending. Once the request finishes the
// container holds a domain.Result and never changes again. A container that is
// replaced by a newer request before finishing is superseded: it stays pending
// forever and its Done channel is closed so waiters are released.
type Container[Res any] struct {
	kind     domain.OperationKind
	token    uint64
	issuedAt time.Time

	once sync.Once
	done chan struct{}

	mu         sync.RWMutex
	result     *domain.Result[Res]
	superseded bool
}

func newContainer[Res any](kind domain.OperationKind, token uint64) *Container[Res] {
	return &Container[Res]{
		kind:     kind,
		token:    token,
		issuedAt: time.Now(),
		done:     make(chan struct{}),
	}
}

// Kind returns the operation kind the container belongs to.
func (c *Container[Res]) Kind() domain.OperationKind { return c.kind }

// Token returns the issue counter value of the request.
func (c *Container[Res]) Token() uint64 { return c.token }

// IssuedAt returns when the request was issued.
func (c *Container[Res]) IssuedAt() time.Time { return c.issuedAt }

// Done is closed when the container is resolved, failed or superseded.
func (c *Container[Res]) Done() <-chan struct{} { return c.done }

// Result returns the outcome; ok is false while pending.
func (c *Container[Res]) Result() (domain.Result[Res], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.result == nil {
		return domain.Result[Res]{}, false
	}
	return *c.result, true
}

// Pending reports whether the container has no outcome yet.
func (c *Container[Res]) Pending() bool {
	_, ok := c.Result()
	return !ok
}

// Superseded reports whether a newer request replaced this one before it finished.
func (c *Container[Res]) Superseded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.superseded
}

// Status maps the container to a session status.
func (c *Container[Res]) Status() domain.Status {
	r, ok := c.Result()
	switch {
	case !ok:
		return domain.StatusPending
	case r.IsErr():
		return domain.StatusFailed
	default:
		return domain.StatusResolved
	}
}

// Wait blocks until the container finishes. It returns domain.ErrSuperseded
// when the container was replaced first, and the context error on cancellation.
func (c *Container[Res]) Wait(ctx context.Context) (domain.Result[Res], error) {
	select {
	case <-ctx.Done():
		return domain.Result[Res]{}, ctx.Err()
	case <-c.done:
	}
	if r, ok := c.Result(); ok {
		return r, nil
	}
	return domain.Result[Res]{}, domain.ErrSuperseded
}

// resolve stores the outcome. It reports false if the container already
// finished or was superseded.
func (c *Container[Res]) resolve(r domain.Result[Res]) bool {
	c.mu.Lock()
	if c.result != nil || c.superseded {
		c.mu.Unlock()
		return false
	}
	c.result = &r
	c.mu.Unlock()

	c.once.Do(func() { close(c.done) })
	return true
}

// supersede detaches a pending container. Finished containers keep their outcome.
func (c *Container[Res]) supersede() {
	c.mu.Lock()
	if c.result != nil {
		c.mu.Unlock()
		return
	}
	c.superseded = true
	c.mu.Unlock()

	c.once.Do(func() { close(c.done) })
}
