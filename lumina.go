package lumina

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/format"
	"github.com/aretw0/lumina/pkg/ports"
	"github.com/aretw0/lumina/pkg/prompt"
	"github.com/aretw0/lumina/pkg/session"
	"github.com/aretw0/lumina/pkg/writing"
)

// Session aliases, one per operation kind.
type (
	TablesSession     = session.Session[domain.TableRequest, domain.TableResponse]
	WritingSession    = writing.WritingSession
	TemplatesSession  = session.Session[domain.TemplateSuggestionRequest, domain.TemplateSuggestionResponse]
	MassDeleteSession = session.Session[domain.MassDeleteRequest, domain.MassDeleteResponse]
	CheckDataSession  = session.Session[domain.CheckDataRequest, domain.CheckDataResponse]
	DataTypeSession   = session.Session[domain.SuggestDataTypeRequest, domain.SuggestDataTypeResponse]
)

// Assistant is the high-level entry point for the Lumina library.
// It owns one session per AI operation kind, all sharing the same service,
// notifier, hooks and logger. Kinds are independent: a request of one kind
// never supersedes or fails another.
type Assistant struct {
	service   ports.AIService
	sanitizer prompt.Sanitizer
	logger    *slog.Logger

	tables     *TablesSession
	writing    *WritingSession
	templates  *TemplatesSession
	massDelete *MassDeleteSession
	checkData  *CheckDataSession
	dataType   *DataTypeSession
}

type config struct {
	logger      *slog.Logger
	maxPrompt   int
	sessionOpts []session.Option
}

// Option defines a functional option for configuring the Assistant.
type Option func(*config)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
		c.sessionOpts = append(c.sessionOpts, session.WithLogger(logger))
	}
}

// WithNotifier sets the global channel for transport failures.
func WithNotifier(n ports.Notifier) Option {
	return func(c *config) {
		c.sessionOpts = append(c.sessionOpts, session.WithNotifier(n))
	}
}

// WithLifecycleHooks registers observability hooks on every session.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.sessionOpts = append(c.sessionOpts, session.WithHooks(hooks))
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.sessionOpts = append(c.sessionOpts, session.WithTimeout(d))
	}
}

// WithOwner tags notifications with the owner of the assistant.
func WithOwner(owner string) Option {
	return func(c *config) {
		c.sessionOpts = append(c.sessionOpts, session.WithOwner(owner))
	}
}

// WithMaxPromptSize limits free-text prompts, in bytes.
func WithMaxPromptSize(n int) Option {
	return func(c *config) {
		c.maxPrompt = n
	}
}

// New creates an Assistant issuing requests through service.
func New(service ports.AIService, opts ...Option) *Assistant {
	cfg := config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Assistant{
		service:   service,
		sanitizer: prompt.New(cfg.maxPrompt),
		logger:    cfg.logger,
	}
	so := cfg.sessionOpts

	a.tables = session.New[domain.TableRequest, domain.TableResponse](domain.OpTableSuggestion,
		sanitized(domain.OpTableSuggestion, a.sanitizer.TableRequest, service.SuggestTables), so...)
	a.writing = session.New[domain.AssistedWritingRequest, domain.AssistedWritingResponse](domain.OpAssistedWriting,
		sanitized(domain.OpAssistedWriting, a.sanitizer.AssistedWritingRequest, service.AssistedWriting), so...)
	a.templates = session.New[domain.TemplateSuggestionRequest, domain.TemplateSuggestionResponse](domain.OpTemplateSuggestion,
		sanitized(domain.OpTemplateSuggestion, a.sanitizer.TemplateSuggestionRequest, service.SuggestTemplates), so...)
	a.massDelete = session.New[domain.MassDeleteRequest, domain.MassDeleteResponse](domain.OpMassDelete,
		sanitized(domain.OpMassDelete, a.sanitizer.MassDeleteRequest, service.MassDelete), so...)
	a.checkData = session.New[domain.CheckDataRequest, domain.CheckDataResponse](domain.OpCheckData,
		service.CheckData, so...)
	a.dataType = session.New[domain.SuggestDataTypeRequest, domain.SuggestDataTypeResponse](domain.OpSuggestDataType,
		service.SuggestDataType, so...)
	return a
}

// sanitized cleans a request before submitting it. A rejected prompt fails
// the request like a service-reported error: no transmission, no notification.
func sanitized[Req, Res any](kind domain.OperationKind, clean func(Req) (Req, error), submit session.SubmitFunc[Req, Res]) session.SubmitFunc[Req, Res] {
	return func(ctx context.Context, req Req) (Res, error) {
		req, err := clean(req)
		if err != nil {
			var zero Res
			return zero, &domain.RequestError{Kind: kind, Message: err.Error()}
		}
		return submit(ctx, req)
	}
}

// FetchTableSuggestions asks for generated tables.
func (a *Assistant) FetchTableSuggestions(ctx context.Context, req domain.TableRequest) *session.Container[domain.TableResponse] {
	return a.tables.Issue(ctx, req)
}

// FetchAssistedWriting asks for an expanded or contracted text.
func (a *Assistant) FetchAssistedWriting(ctx context.Context, req domain.AssistedWritingRequest) *session.Container[domain.AssistedWritingResponse] {
	return a.writing.Issue(ctx, req)
}

// FetchTemplateSuggestions asks for templates matching a project description.
func (a *Assistant) FetchTemplateSuggestions(ctx context.Context, req domain.TemplateSuggestionRequest) *session.Container[domain.TemplateSuggestionResponse] {
	return a.templates.Issue(ctx, req)
}

// FetchMassDelete asks which documents match a delete description.
func (a *Assistant) FetchMassDelete(ctx context.Context, req domain.MassDeleteRequest) *session.Container[domain.MassDeleteResponse] {
	return a.massDelete.Issue(ctx, req)
}

// FetchCheckData asks which values of an attribute look anomalous.
func (a *Assistant) FetchCheckData(ctx context.Context, req domain.CheckDataRequest) *session.Container[domain.CheckDataResponse] {
	return a.checkData.Issue(ctx, req)
}

// FetchSuggestDataType asks for a constraint fitting sample values.
func (a *Assistant) FetchSuggestDataType(ctx context.Context, req domain.SuggestDataTypeRequest) *session.Container[domain.SuggestDataTypeResponse] {
	return a.dataType.Issue(ctx, req)
}

func (a *Assistant) Tables() *TablesSession         { return a.tables }
func (a *Assistant) Writing() *WritingSession       { return a.writing }
func (a *Assistant) Templates() *TemplatesSession   { return a.templates }
func (a *Assistant) MassDelete() *MassDeleteSession { return a.massDelete }
func (a *Assistant) CheckData() *CheckDataSession   { return a.checkData }
func (a *Assistant) DataType() *DataTypeSession     { return a.dataType }

// View is the kind-independent view of a session.
type View interface {
	Kind() domain.OperationKind
	Status() domain.Status
	ErrorMessage() string
	Reset(ctx context.Context)
	Close(ctx context.Context)
}

// Sessions returns every session in domain.OperationKinds order.
func (a *Assistant) Sessions() []View {
	return []View{a.tables, a.writing, a.templates, a.massDelete, a.checkData, a.dataType}
}

// Session returns the session of kind.
func (a *Assistant) Session(kind domain.OperationKind) (View, error) {
	for _, s := range a.Sessions() {
		if s.Kind() == kind {
			return s, nil
		}
	}
	return nil, domain.ErrUnknownKind
}

// Reset returns every session to the never-started state.
func (a *Assistant) Reset(ctx context.Context) {
	for _, s := range a.Sessions() {
		s.Reset(ctx)
	}
}

// Close resets every session and waits for in-flight requests to return.
func (a *Assistant) Close(ctx context.Context) error {
	for _, s := range a.Sessions() {
		s.Close(ctx)
	}
	a.logger.Debug("assistant closed")
	return nil
}

// Editor creates a rich-text editor bound to the assisted-writing session.
func (a *Assistant) Editor(content string, opts ...writing.Option) *writing.Editor {
	return writing.NewEditor(content, a.writing, append([]writing.Option{writing.WithLogger(a.logger)}, opts...)...)
}

// MassDeleteRequest builds a delete request from the formatted table of docs.
// The returned table resolves the answer's ids back to rows with Filter.
func MassDeleteRequest(description string, c domain.Collection, docs []domain.Document, cc domain.ConstraintContext) (domain.MassDeleteRequest, format.SimpleTable) {
	table := format.BuildSimpleTable(c, docs, cc)
	return domain.MassDeleteRequest{DeleteDescription: description, Data: table.Lines()}, table
}

// CheckDataRequest builds a data check request for one attribute. The
// returned values resolve the answer's invalid data back to documents.
func CheckDataRequest(attr domain.Attribute, docs []domain.Document, cc domain.ConstraintContext) (domain.CheckDataRequest, *format.CheckValues) {
	values := format.BuildCheckValues(attr, docs, cc)
	return domain.CheckDataRequest{Data: values.Data()}, values
}

// SuggestDataTypeRequest builds a type suggestion request from the values of attr.
func SuggestDataTypeRequest(attr domain.Attribute, docs []domain.Document, cc domain.ConstraintContext) domain.SuggestDataTypeRequest {
	return domain.SuggestDataTypeRequest{Data: format.ColumnValues(attr, docs, cc), Attribute: attr}
}
