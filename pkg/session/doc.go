/*
Package session implements the request/response lifecycle of the AI-assisted
operations.

A Session owns at most one live request. Issue replaces the exposed Container
before the request is sent, so late responses of superseded requests are
dropped instead of being applied:

	s := session.New(domain.OpCheckData, svc.CheckData)
	c := s.Issue(ctx, req) // s.Current() == c, c.Pending()
	s.Issue(ctx, other)    // c is superseded and never resolves

Consumers read Current(): nil means nothing was started, a pending container
means a request is in flight, and a finished one holds a domain.Result.

Registry keeps per-owner values (one set of sessions per UI element or HTTP
client) behind reference-counted locks, optionally backed by a distributed
locker. Broadcaster fans session events out to SSE subscribers.
*/
package session
