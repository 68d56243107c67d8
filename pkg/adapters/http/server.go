package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/lumina"
	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/observability"
	"github.com/aretw0/lumina/pkg/ports"
	"github.com/aretw0/lumina/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// maxBodySize bounds request bodies.
const maxBodySize = 4 << 20

// Server implements ServerInterface over one Assistant per owner.
type Server struct {
	Assistants *session.Registry[*lumina.Assistant]
	Streams    *session.Broadcaster
	Metrics    *observability.Metrics
	Context    domain.ConstraintContext

	service       ports.AIService
	assistantOpts []lumina.Option
	locker        ports.DistributedLocker
	logger        *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records session metrics in m instead of a private registry.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithConstraintContext sets the default formatting context of /format.
func WithConstraintContext(cc domain.ConstraintContext) Option {
	return func(s *Server) {
		s.Context = cc
	}
}

// WithLocker serializes owner access across replicas.
func WithLocker(l ports.DistributedLocker) Option {
	return func(s *Server) {
		s.locker = l
	}
}

// WithAssistantOptions applies opts to every Assistant the server creates.
func WithAssistantOptions(opts ...lumina.Option) Option {
	return func(s *Server) {
		s.assistantOpts = append(s.assistantOpts, opts...)
	}
}

// NewServer creates a server issuing AI requests through service.
func NewServer(service ports.AIService, opts ...Option) *Server {
	s := &Server{
		service: service,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Metrics == nil {
		s.Metrics = observability.NewMetrics(prometheus.NewRegistry())
	}
	s.Streams = session.NewBroadcaster(s.logger)

	regOpts := []session.Option{session.WithLogger(s.logger)}
	if s.locker != nil {
		regOpts = append(regOpts, session.WithLocker(s.locker))
	}
	s.Assistants = session.NewRegistry(s.newAssistant, regOpts...)
	return s
}

func (s *Server) newAssistant(owner string) *lumina.Assistant {
	hooks := s.Streams.Hooks(owner).Merge(s.Metrics.Hooks())
	opts := append([]lumina.Option{
		lumina.WithLogger(s.logger),
		lumina.WithOwner(owner),
		lumina.WithLifecycleHooks(hooks),
	}, s.assistantOpts...)
	return lumina.New(s.service, opts...)
}

// NewHandler creates the HTTP handler of the server: the operations of
// openapi.yaml plus /metrics, /openapi.yaml and /swagger.
func NewHandler(service ports.AIService, opts ...Option) (http.Handler, error) {
	return NewServer(service, opts...).Handler()
}

// Handler builds the router of s.
func (s *Server) Handler() (http.Handler, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := validateRequests(doc, s.logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	r.Use(assignOwner)
	r.Use(validate)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(RawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, swaggerHTML)
	})
	r.Handle("/metrics", s.Metrics.Handler())

	return HandlerFromMux(s, r), nil
}

// Close discards every owner, canceling their pending requests.
func (s *Server) Close(ctx context.Context) error {
	var errs []error
	for _, owner := range s.Assistants.Owners() {
		if err := s.Assistants.Discard(ctx, owner); err != nil && !errors.Is(err, domain.ErrOwnerNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type generatedOwnerKey struct{}

// assignOwner gives anonymous requests a fresh owner id and echoes it. The
// generated id only lets the client adopt it; it never creates sessions.
func assignOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(OwnerHeader)
		if owner == "" {
			owner = uuid.NewString()
			r = r.WithContext(context.WithValue(r.Context(), generatedOwnerKey{}, true))
			r.Header.Set(OwnerHeader, owner)
		}
		w.Header().Set(OwnerHeader, owner)
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+OwnerHeader)
		w.Header().Set("Access-Control-Expose-Headers", OwnerHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Lumina API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// -- Helpers --

type errorBody struct {
	Error string `json:"error"`
}

// ownerGenerated reports whether the owner of r was assigned by assignOwner.
func ownerGenerated(r *http.Request) bool {
	v, _ := r.Context().Value(generatedOwnerKey{}).(bool)
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("body exceeds %d bytes", maxBodySize)
	}
	return data, nil
}
