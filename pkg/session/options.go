package session

import (
	"log/slog"
	"time"

	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed owner lock is held.
const DefaultLockTTL = 30 * time.Second

type options struct {
	logger   *slog.Logger
	notifier ports.Notifier
	hooks    domain.LifecycleHooks
	timeout  time.Duration
	owner    string
	locker   ports.DistributedLocker
	lockTTL  time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		logger:   logging.NewNop(),
		notifier: ports.NopNotifier{},
		lockTTL:  DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a Session or a Registry. Options that do not apply to
// the configured type are ignored.
type Option func(*options)

// WithLogger configures a logger for internal events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNotifier sets the process-wide channel for transport failures.
func WithNotifier(n ports.Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithHooks registers lifecycle hooks. Repeated calls merge the hooks.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = o.hooks.Merge(h)
	}
}

// WithTimeout bounds every request. Zero leaves timeouts to the collaborator.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithOwner tags notifications with the owner of the session.
func WithOwner(owner string) Option {
	return func(o *options) {
		o.owner = owner
	}
}

// WithLocker enables distributed locking in a Registry.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(o *options) {
		o.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.lockTTL = ttl
		}
	}
}
