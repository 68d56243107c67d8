package session

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/lumina/pkg/domain"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Registry keeps one value per owner (a UI element, an HTTP client) and
// serializes access to it. Values are created on demand and live until
// Discard. Locks are reference counted and garbage collected when unused.
type Registry[T any] struct {
	factory func(owner string) T
	opts    options

	mu     sync.Mutex // Global lock for the maps
	values map[string]T
	locks  map[string]*lockEntry
}

// NewRegistry creates a registry building values with factory.
// It honors WithLocker, WithLockTTL and WithLogger.
func NewRegistry[T any](factory func(owner string) T, opts ...Option) *Registry[T] {
	return &Registry[T]{
		factory: factory,
		opts:    newOptions(opts),
		values:  make(map[string]T),
		locks:   make(map[string]*lockEntry),
	}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(owner) after unlocking.
func (r *Registry[T]) acquire(owner string) *lockEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[owner]
	if !exists {
		entry = &lockEntry{}
		r.locks[owner] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (r *Registry[T]) release(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[owner]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(r.locks, owner)
	}
}

// Get returns the owner's value, creating it if needed.
func (r *Registry[T]) Get(owner string) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.values[owner]
	if !ok {
		v = r.factory(owner)
		r.values[owner] = v
		r.opts.logger.Debug("owner registered", "owner", owner)
	}
	return v
}

// Lookup returns the owner's value without creating it.
func (r *Registry[T]) Lookup(owner string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[owner]
	return v, ok
}

// Owners lists the registered owners, sorted.
func (r *Registry[T]) Owners() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	owners := make([]string, 0, len(r.values))
	for o := range r.values {
		owners = append(owners, o)
	}
	sort.Strings(owners)
	return owners
}

// WithLock executes fn with the owner's value while holding the owner lock.
func (r *Registry[T]) WithLock(ctx context.Context, owner string, fn func(context.Context, T) error) error {
	return r.withLock(ctx, owner, func(ctx context.Context) error {
		return fn(ctx, r.Get(owner))
	})
}

// Discard tears the owner down. Values with a Close(context.Context) method
// are closed and its error, if any, returned. It returns domain.ErrOwnerNotFound for unknown owners.
func (r *Registry[T]) Discard(ctx context.Context, owner string) error {
	return r.withLock(ctx, owner, func(ctx context.Context) error {
		r.mu.Lock()
		v, ok := r.values[owner]
		delete(r.values, owner)
		r.mu.Unlock()

		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrOwnerNotFound, owner)
		}
		r.opts.logger.Debug("owner discarded", "owner", owner)
		switch c := any(v).(type) {
		case interface{ Close(context.Context) error }:
			return c.Close(ctx)
		case interface{ Close(context.Context) }:
			c.Close(ctx)
		}
		return nil
	})
}

func (r *Registry[T]) withLock(ctx context.Context, owner string, fn func(context.Context) error) error {
	entry := r.acquire(owner)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		r.release(owner)
	}()

	if r.opts.locker != nil {
		unlock, err := r.opts.locker.Lock(ctx, owner, r.opts.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				r.opts.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"owner", owner,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
