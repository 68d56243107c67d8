package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aretw0/lumina/pkg/domain"
)

// SubmitFunc transmits one request to the external collaborator.
type SubmitFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// Session tracks the single live request of one operation kind.
//
// Issue swaps in a fresh Container before the request is transmitted, so a
// response belonging to a superseded request is never applied. The previous
// request's context is also canceled, but correctness does not depend on the
// collaborator honoring it.
type Session[Req, Res any] struct {
	kind   domain.OperationKind
	submit SubmitFunc[Req, Res]
	opts   options

	mu      sync.Mutex
	current *Container[Res]
	cancel  context.CancelFunc
	token   uint64

	wg sync.WaitGroup
}

// New creates an empty session for the given operation kind.
func New[Req, Res any](kind domain.OperationKind, submit SubmitFunc[Req, Res], opts ...Option) *Session[Req, Res] {
	return &Session[Req, Res]{
		kind:   kind,
		submit: submit,
		opts:   newOptions(opts),
	}
}

// Kind returns the operation kind of the session.
func (s *Session[Req, Res]) Kind() domain.OperationKind { return s.kind }

// Current returns the live container, nil when no request was ever issued
// (or after Reset).
func (s *Session[Req, Res]) Current() *Container[Res] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Status returns the observable state: empty, pending, resolved or failed.
func (s *Session[Req, Res]) Status() domain.Status {
	c := s.Current()
	if c == nil {
		return domain.StatusEmpty
	}
	return c.Status()
}

// ErrorMessage returns the message of a failed live request, "" otherwise.
func (s *Session[Req, Res]) ErrorMessage() string {
	c := s.Current()
	if c == nil {
		return ""
	}
	r, ok := c.Result()
	if !ok {
		return ""
	}
	return r.Message()
}

// Issue starts a new request and returns its container. It is allowed from any
// state; the previous container, if still pending, is superseded.
//
// The request runs detached from ctx cancellation (values are kept) so it can
// outlive the caller, e.g. an HTTP handler.
func (s *Session[Req, Res]) Issue(ctx context.Context, req Req) *Container[Res] {
	base := context.WithoutCancel(ctx)
	var reqCtx context.Context
	var cancel context.CancelFunc
	if s.opts.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(base, s.opts.timeout)
	} else {
		reqCtx, cancel = context.WithCancel(base)
	}

	s.mu.Lock()
	s.token++
	c := newContainer[Res](s.kind, s.token)
	prev, prevCancel := s.current, s.cancel
	s.current, s.cancel = c, cancel
	s.wg.Add(1)
	s.mu.Unlock()

	if prev != nil {
		prev.supersede()
	}
	if prevCancel != nil {
		prevCancel()
	}

	s.opts.logger.Debug("request issued", "kind", s.kind, "token", c.token)
	s.fire(base, c, domain.EventIssued, domain.StatusPending, "", 0)

	go s.run(reqCtx, cancel, c, req)
	return c
}

func (s *Session[Req, Res]) run(ctx context.Context, cancel context.CancelFunc, c *Container[Res], req Req) {
	defer s.wg.Done()
	defer cancel()

	start := time.Now()
	res, err := s.submit(ctx, req)
	elapsed := time.Since(start)

	result := domain.Ok(res)
	transport := false
	if err != nil {
		result = domain.Err[Res](domain.Message(err))
		var reqErr *domain.RequestError
		transport = !errors.As(err, &reqErr)
	}

	s.mu.Lock()
	applied := s.current == c && c.resolve(result)
	s.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	if !applied {
		s.opts.logger.Debug("discarding stale response", "kind", s.kind, "token", c.token, "duration", elapsed)
		// The live state is untouched, but a transport failure still reaches
		// the notifier unless it is our own cancellation of the request.
		if transport && !canceledBySession(ctx, err) {
			s.notify(bg, result.Message())
		}
		s.fire(bg, c, domain.EventDiscarded, domain.StatusPending, result.Message(), elapsed)
		return
	}

	if !result.IsErr() {
		s.opts.logger.Debug("request resolved", "kind", s.kind, "token", c.token, "duration", elapsed)
		s.fire(bg, c, domain.EventResolved, domain.StatusResolved, "", elapsed)
		return
	}

	s.opts.logger.Warn("request failed", "kind", s.kind, "token", c.token, "err", err)
	if transport {
		s.notify(bg, result.Message())
	}
	s.fire(bg, c, domain.EventFailed, domain.StatusFailed, result.Message(), elapsed)
}

// canceledBySession reports whether err comes from the session canceling the
// request on supersede or reset.
func canceledBySession(ctx context.Context, err error) bool {
	return errors.Is(ctx.Err(), context.Canceled) && errors.Is(err, context.Canceled)
}

func (s *Session[Req, Res]) notify(ctx context.Context, msg string) {
	n := domain.Notification{
		Timestamp: time.Now(),
		Kind:      s.kind,
		Owner:     s.opts.owner,
		Message:   msg,
	}
	if err := s.opts.notifier.Notify(ctx, n); err != nil {
		s.opts.logger.Error("failed to publish notification", "kind", s.kind, "err", err)
	}
}

func (s *Session[Req, Res]) fire(ctx context.Context, c *Container[Res], t domain.EventType, status domain.Status, msg string, d time.Duration) {
	s.opts.hooks.Fire(ctx, &domain.RequestEvent{
		Timestamp: time.Now(),
		Type:      t,
		Kind:      s.kind,
		Token:     c.token,
		Status:    status,
		Message:   msg,
		Duration:  d,
	})
}

// Wait blocks until the live request finishes. See Container.Wait.
func (s *Session[Req, Res]) Wait(ctx context.Context) (domain.Result[Res], error) {
	c := s.Current()
	if c == nil {
		return domain.Result[Res]{}, domain.ErrNoRequest
	}
	return c.Wait(ctx)
}

// Do issues a request and waits for its outcome.
func (s *Session[Req, Res]) Do(ctx context.Context, req Req) (domain.Result[Res], error) {
	return s.Issue(ctx, req).Wait(ctx)
}

// Reset returns the session to the never-started state. A pending request is
// superseded and canceled.
func (s *Session[Req, Res]) Reset(ctx context.Context) {
	s.mu.Lock()
	prev, cancel := s.current, s.cancel
	s.current, s.cancel = nil, nil
	s.mu.Unlock()

	if prev == nil {
		return
	}
	prev.supersede()
	if cancel != nil {
		cancel()
	}
	s.opts.logger.Debug("session reset", "kind", s.kind, "token", prev.token)
	s.fire(ctx, prev, domain.EventReset, domain.StatusEmpty, "", 0)
}

// Close resets the session and waits for in-flight requests to return.
func (s *Session[Req, Res]) Close(ctx context.Context) {
	s.Reset(ctx)
	s.wg.Wait()
}
