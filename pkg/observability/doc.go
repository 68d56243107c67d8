/*
Package observability turns session lifecycle events into Prometheus metrics
and structured log lines.

Both are exposed as domain.LifecycleHooks, so they plug into any session or
assistant through session.WithHooks:

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
*/
package observability
