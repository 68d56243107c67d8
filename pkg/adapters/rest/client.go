package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/lumina/internal/dto"
	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/domain"
)

var (
	ErrUnauthorized = errors.New("ai service unauthorized")
	ErrRateLimited  = errors.New("ai service rate limited")
	ErrUnavailable  = errors.New("ai service unavailable")
	ErrBadStatus    = errors.New("unexpected ai service status")
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 8 << 20

var paths = map[domain.OperationKind]string{
	domain.OpTableSuggestion:    "tables",
	domain.OpAssistedWriting:    "assistedWriting",
	domain.OpTemplateSuggestion: "template",
	domain.OpMassDelete:         "massDelete",
	domain.OpCheckData:          "checkData",
	domain.OpSuggestDataType:    "suggestDataType",
}

// Client implements ports.AIService over the backend REST API:
// POST {apiURL}/rest/ai/{operation}.
type Client struct {
	apiURL string
	token  string
	http   *http.Client
	logger *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the HTTP client timeout. The client given to
// WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		cp := *c.http
		cp.Timeout = d
		c.http = &cp
	}
}

// WithLogger configures a logger for the Client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API rooted at apiURL.
func New(apiURL string, opts ...Option) *Client {
	c := &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		http:   &http.Client{Timeout: 60 * time.Second},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL of an operation.
func (c *Client) Endpoint(kind domain.OperationKind) string {
	return c.apiURL + "/rest/ai/" + paths[kind]
}

func (c *Client) SuggestTables(ctx context.Context, req domain.TableRequest) (domain.TableResponse, error) {
	return post[domain.TableResponse](ctx, c, domain.OpTableSuggestion, req)
}

func (c *Client) AssistedWriting(ctx context.Context, req domain.AssistedWritingRequest) (domain.AssistedWritingResponse, error) {
	return post[domain.AssistedWritingResponse](ctx, c, domain.OpAssistedWriting, req)
}

func (c *Client) SuggestTemplates(ctx context.Context, req domain.TemplateSuggestionRequest) (domain.TemplateSuggestionResponse, error) {
	return post[domain.TemplateSuggestionResponse](ctx, c, domain.OpTemplateSuggestion, req)
}

func (c *Client) MassDelete(ctx context.Context, req domain.MassDeleteRequest) (domain.MassDeleteResponse, error) {
	return post[domain.MassDeleteResponse](ctx, c, domain.OpMassDelete, req)
}

func (c *Client) CheckData(ctx context.Context, req domain.CheckDataRequest) (domain.CheckDataResponse, error) {
	return post[domain.CheckDataResponse](ctx, c, domain.OpCheckData, req)
}

func (c *Client) SuggestDataType(ctx context.Context, req domain.SuggestDataTypeRequest) (domain.SuggestDataTypeResponse, error) {
	return post[domain.SuggestDataTypeResponse](ctx, c, domain.OpSuggestDataType, req)
}

// post sends one request. Every failure leaves as a typed domain error.
func post[Res any](ctx context.Context, c *Client, kind domain.OperationKind, req any) (Res, error) {
	var zero Res
	transport := func(err error) (Res, error) {
		return zero, &domain.TransportError{Kind: kind, Err: err}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return transport(fmt.Errorf("failed to encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(kind), bytes.NewReader(body))
	if err != nil {
		return transport(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return transport(ctxErr)
		}
		return transport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return transport(fmt.Errorf("failed to read response: %w", err))
	}
	c.logger.Debug("ai request completed", "kind", kind, "status", resp.StatusCode, "duration", time.Since(start))

	if err := statusError(resp.StatusCode); err != nil {
		return transport(err)
	}

	res, status, err := dto.DecodeResponse[Res](data)
	if err != nil {
		return transport(err)
	}
	if status.Error {
		return zero, &domain.RequestError{Kind: kind, Message: status.ErrorMessage}
	}
	return res, nil
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	default:
		return fmt.Errorf("%w: %d", ErrBadStatus, code)
	}
}
