package observability_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/observability"
	"github.com/aretw0/lumina/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_SessionEvents(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())

	fail := true
	s := session.New[string, string](domain.OpCheckData,
		func(ctx context.Context, req string) (string, error) {
			if fail {
				return "", errors.New("connection refused")
			}
			return "ok", nil
		},
		session.WithHooks(m.Hooks()),
	)
	ctx := context.Background()

	_, err := s.Do(ctx, "a")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(scrape(t, m), `lumina_request_events_total{event="failed",kind="checkData"} 1`)
	}, time.Second, 5*time.Millisecond)

	fail = false
	_, err = s.Do(ctx, "b")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(scrape(t, m), `lumina_request_events_total{event="resolved",kind="checkData"} 1`)
	}, time.Second, 5*time.Millisecond)

	out := scrape(t, m)
	assert.Contains(t, out, `lumina_request_events_total{event="issued",kind="checkData"} 2`)
	assert.Contains(t, out, `lumina_requests_in_flight{kind="checkData"} 0`)
	assert.Contains(t, out, `lumina_request_duration_seconds_count{kind="checkData",outcome="resolved"} 1`)
}

func TestMetrics_Reset(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks()

	hooks.Fire(context.Background(), &domain.RequestEvent{Type: domain.EventReset, Kind: domain.OpMassDelete})
	assert.Contains(t, scrape(t, m), `lumina_request_events_total{event="reset",kind="massDelete"} 1`)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LogHooks(logger)

	hooks.Fire(context.Background(), &domain.RequestEvent{
		Type:    domain.EventFailed,
		Kind:    domain.OpTableSuggestion,
		Token:   3,
		Status:  domain.StatusFailed,
		Message: "quota exceeded",
	})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="request failed"`)
	assert.Contains(t, out, "kind=tables")
	assert.Contains(t, out, `err="quota exceeded"`)
}
