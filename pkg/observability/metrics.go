package observability

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lumina"

// Metrics records AI request counts, latencies and in-flight requests per kind.
type Metrics struct {
	events   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight *prometheus.GaugeVec
	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_events_total",
				Help:      "Total number of session events by operation kind and event type",
			},
			[]string{"kind", "event"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of AI requests until their response was applied or discarded",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"kind", "outcome"},
		),
		inflight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of AI requests awaiting a response",
			},
			[]string{"kind"},
		),
		gatherer: prometheus.DefaultGatherer,
	}
	reg.MustRegister(m.events, m.duration, m.inflight)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	count := func(_ context.Context, e *domain.RequestEvent) {
		m.events.WithLabelValues(string(e.Kind), string(e.Type)).Inc()
	}
	finish := func(ctx context.Context, e *domain.RequestEvent) {
		m.inflight.WithLabelValues(string(e.Kind)).Dec()
		m.duration.WithLabelValues(string(e.Kind), string(e.Type)).Observe(e.Duration.Seconds())
		count(ctx, e)
	}
	return domain.LifecycleHooks{
		OnIssue: func(ctx context.Context, e *domain.RequestEvent) {
			count(ctx, e)
			m.inflight.WithLabelValues(string(e.Kind)).Inc()
		},
		OnResolve: finish,
		OnFail:    finish,
		OnDiscard: finish,
		OnReset:   count,
	}
}

// Handler serves the registry the collectors were registered with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// LogHooks returns lifecycle hooks logging every event.
// Failures log at warn level, everything else at debug.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(ctx context.Context, e *domain.RequestEvent) {
		level := slog.LevelDebug
		if e.Type == domain.EventFailed {
			level = slog.LevelWarn
		}
		attrs := []any{"kind", e.Kind, "token", e.Token, "status", e.Status}
		if e.Duration > 0 {
			attrs = append(attrs, "duration", e.Duration)
		}
		if e.Message != "" {
			attrs = append(attrs, "err", e.Message)
		}
		logger.Log(ctx, level, "request "+string(e.Type), attrs...)
	}
	return domain.LifecycleHooks{
		OnIssue:   log,
		OnResolve: log,
		OnFail:    log,
		OnDiscard: log,
		OnReset:   log,
	}
}
