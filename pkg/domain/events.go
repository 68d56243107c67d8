package domain

import (
	"context"
	"time"
)

// Status is the observable state of a session.
type Status string

const (
	StatusEmpty    Status = "empty"    // No request issued, or reset
	StatusPending  Status = "pending"  // Request in flight
	StatusResolved Status = "resolved" // Response received without error
	StatusFailed   Status = "failed"   // Service error or transport failure
)

// EventType defines the category of the event.
type EventType string

const (
	EventIssued    EventType = "issued"
	EventResolved  EventType = "resolved"
	EventFailed    EventType = "failed"
	EventDiscarded EventType = "discarded" // Stale response dropped
	EventReset     EventType = "reset"
)

// RequestEvent describes a session transition.
type RequestEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	Kind      OperationKind `json:"kind"`
	Token     uint64        `json:"token"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for session observability.
type LifecycleHooks struct {
	OnIssue   func(context.Context, *RequestEvent)
	OnResolve func(context.Context, *RequestEvent)
	OnFail    func(context.Context, *RequestEvent)
	OnDiscard func(context.Context, *RequestEvent)
	OnReset   func(context.Context, *RequestEvent)
}

// Fire dispatches the event to the hook matching its type.
func (h LifecycleHooks) Fire(ctx context.Context, e *RequestEvent) {
	var fn func(context.Context, *RequestEvent)
	switch e.Type {
	case EventIssued:
		fn = h.OnIssue
	case EventResolved:
		fn = h.OnResolve
	case EventFailed:
		fn = h.OnFail
	case EventDiscarded:
		fn = h.OnDiscard
	case EventReset:
		fn = h.OnReset
	}
	if fn != nil {
		fn(ctx, e)
	}
}

// Merge combines hooks so that both run, h first.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	chain := func(a, b func(context.Context, *RequestEvent)) func(context.Context, *RequestEvent) {
		if a == nil {
			return b
		}
		if b == nil {
			return a
		}
		return func(ctx context.Context, e *RequestEvent) {
			a(ctx, e)
			b(ctx, e)
		}
	}
	return LifecycleHooks{
		OnIssue:   chain(h.OnIssue, other.OnIssue),
		OnResolve: chain(h.OnResolve, other.OnResolve),
		OnFail:    chain(h.OnFail, other.OnFail),
		OnDiscard: chain(h.OnDiscard, other.OnDiscard),
		OnReset:   chain(h.OnReset, other.OnReset),
	}
}

// Notification is a process-wide message about a failed operation.
type Notification struct {
	Timestamp time.Time     `json:"timestamp"`
	Kind      OperationKind `json:"kind"`
	Owner     string        `json:"owner,omitempty"`
	Message   string        `json:"message"`
}
