package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/lumina"
	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/format"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const kindsURI = "lumina://kinds"

// FormatResponse aligns with the OpenAPI schema of POST /format.
type FormatResponse struct {
	Result string   `json:"result" jsonschema_description:"The rendered value"`
	Values []string `json:"values,omitempty" jsonschema_description:"Flattened leaf values (mode=values)"`
}

// RequestResponse aligns with the RequestState schema of the HTTP API.
type RequestResponse = lumina.RequestState

type formatArgs struct {
	Value string `json:"value"`
	Mode  string `json:"mode"`
}

type requestArgs struct {
	Kind    string `json:"kind"`
	Request string `json:"request"`
}

// Server exposes an Assistant as an MCP server.
type Server struct {
	assistant *lumina.Assistant
	timeout   time.Duration
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithTimeout bounds how long ai_request waits for an answer.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(assistant *lumina.Assistant, opts ...Option) *Server {
	s := &Server{
		assistant: assistant,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("lumina-mcp", lumina.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. to mount it elsewhere.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func kindNames() []string {
	names := make([]string, len(domain.OperationKinds))
	for i, k := range domain.OperationKinds {
		names[i] = string(k)
	}
	return names
}

func modeNames() []string {
	names := make([]string, len(format.Modes))
	for i, m := range format.Modes {
		names[i] = string(m)
	}
	return names
}

func (s *Server) registerTools() {
	formatTool := mcp.NewTool("format_value",
		mcp.WithDescription("Render a JSON value for display: nested lists as [a, b], objects as {k: v}, null as empty."),
		mcp.WithString("value", mcp.Required(), mcp.Description("The value, as JSON")),
		mcp.WithString("mode", mcp.Description("Rendering mode (default format)"), mcp.Enum(modeNames()...)),
		mcp.WithOutputSchema[FormatResponse](),
	)
	s.mcpServer.AddTool(formatTool, mcp.NewStructuredToolHandler(s.handleFormat))

	requestTool := mcp.NewTool("ai_request",
		mcp.WithDescription("Send a request to the AI service and wait for its answer. A newer request of the same kind supersedes an older one."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Operation kind"), mcp.Enum(kindNames()...)),
		mcp.WithString("request", mcp.Required(), mcp.Description("The request body, as JSON")),
		mcp.WithOutputSchema[RequestResponse](),
	)
	s.mcpServer.AddTool(requestTool, mcp.NewStructuredToolHandler(s.handleRequest))

	statusTool := mcp.NewTool("ai_status",
		mcp.WithDescription("Get the state of the last request of a kind."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Operation kind"), mcp.Enum(kindNames()...)),
		mcp.WithOutputSchema[RequestResponse](),
	)
	s.mcpServer.AddTool(statusTool, mcp.NewStructuredToolHandler(s.handleStatus))
}

func (s *Server) handleFormat(ctx context.Context, request mcp.CallToolRequest, args formatArgs) (FormatResponse, error) {
	mode, err := format.ParseMode(args.Mode)
	if err != nil {
		return FormatResponse{}, err
	}
	value, err := format.DecodeJSON([]byte(args.Value))
	if err != nil {
		return FormatResponse{}, fmt.Errorf("invalid value: %w", err)
	}
	resp := FormatResponse{Result: format.Render(value, mode)}
	if mode == format.ModeValues {
		resp.Values = format.Values(value)
	}
	return resp, nil
}

func (s *Server) handleRequest(ctx context.Context, request mcp.CallToolRequest, args requestArgs) (RequestResponse, error) {
	kind, err := domain.ParseOperationKind(args.Kind)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("%w: %s", err, args.Kind)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	_, wait, err := s.assistant.IssueJSON(ctx, kind, []byte(args.Request))
	if err != nil {
		return RequestResponse{}, err
	}
	resp, err := wait(ctx)
	if err != nil {
		s.logger.Warn("MCP ai_request did not settle", "kind", kind, "err", err)
		return RequestResponse{}, err
	}
	return resp, nil
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest, args requestArgs) (RequestResponse, error) {
	kind, err := domain.ParseOperationKind(args.Kind)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("%w: %s", err, args.Kind)
	}
	return s.assistant.State(kind)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(kindsURI, "AI Operation Kinds",
		mcp.WithMIMEType("application/json"),
	), s.readKinds)
}

func (s *Server) readKinds(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	type kindState struct {
		Kind   domain.OperationKind `json:"kind"`
		Status domain.Status        `json:"status"`
	}
	states := make([]kindState, 0, len(domain.OperationKinds))
	for _, v := range s.assistant.Sessions() {
		states = append(states, kindState{Kind: v.Kind(), Status: v.Status()})
	}
	jsonBytes, err := json.Marshal(states)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      kindsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
