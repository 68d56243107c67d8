package writing

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/session"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// WritingSession is the assisted-writing session an Editor issues through.
type WritingSession = session.Session[domain.AssistedWritingRequest, domain.AssistedWritingResponse]

// WritingContainer is one assisted-writing request.
type WritingContainer = session.Container[domain.AssistedWritingResponse]

// Editor is a rich-text field with AI expand/contract and single-level undo.
type Editor struct {
	session *WritingSession
	logger  *slog.Logger

	minLength int
	maxLength int

	mu      sync.Mutex
	content string
	undo    Undo
}

// Option configures an Editor.
type Option func(*Editor)

// WithLengthLimits sets the text length range; zero disables a bound.
func WithLengthLimits(minLen, maxLen int) Option {
	return func(e *Editor) {
		e.minLength = minLen
		e.maxLength = maxLen
	}
}

// WithLogger configures a logger for the Editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// NewEditor creates an editor holding content.
func NewEditor(content string, s *WritingSession, opts ...Option) *Editor {
	e := &Editor{
		session: s,
		content: content,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Content returns the current content.
func (e *Editor) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

// Edit replaces the content by hand. Manual edits invalidate both undo slots.
func (e *Editor) Edit(content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content = content
	e.undo.Clear()
}

// Begin snapshots the content into slot kind and issues the rewrite request
// with the plain text of the content.
func (e *Editor) Begin(ctx context.Context, kind domain.WritingType) *WritingContainer {
	e.mu.Lock()
	e.undo.Capture(kind, e.content)
	input := PlainText(e.content)
	e.mu.Unlock()

	e.logger.Debug("assisted writing requested", "type", kind, "size", len(input))
	return e.session.Issue(ctx, domain.AssistedWritingRequest{InputString: input, Type: kind})
}

// Complete waits for c and applies its outcome. Generated text replaces the
// content and keeps the undo snapshot; a failure clears both slots and is
// returned as a *domain.RequestError. A superseded request changes nothing.
func (e *Editor) Complete(ctx context.Context, c *WritingContainer) error {
	r, err := c.Wait(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	res, ok := r.Value()
	if !ok {
		e.undo.Clear()
		return &domain.RequestError{Kind: domain.OpAssistedWriting, Message: r.Message()}
	}
	e.content = Sanitize(res.GeneratedString)
	return nil
}

// Expand asks the service to lengthen the text and applies the answer.
func (e *Editor) Expand(ctx context.Context) error {
	return e.Complete(ctx, e.Begin(ctx, domain.WritingExpand))
}

// Contract asks the service to shorten the text and applies the answer.
func (e *Editor) Contract(ctx context.Context) error {
	return e.Complete(ctx, e.Begin(ctx, domain.WritingContract))
}

// Undo restores the snapshot of slot kind. It reports false, changing
// nothing, when the slot is empty.
func (e *Editor) Undo(kind domain.WritingType) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, ok := e.undo.Take(kind)
	if !ok {
		return false
	}
	e.content = prev
	return true
}

// CanUndo reports whether slot kind holds a snapshot.
func (e *Editor) CanUndo(kind domain.WritingType) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.undo.Available(kind)
}

// Valid reports whether the text length is within the configured limits.
func (e *Editor) Valid() bool {
	n := Length(e.Content())
	if e.minLength > 0 && n < e.minLength {
		return false
	}
	if e.maxLength > 0 && n > e.maxLength {
		return false
	}
	return true
}

// SaveContent returns the content to persist, "" when it holds only empty
// paragraphs and line breaks.
func (e *Editor) SaveContent() string {
	content := e.Content()
	if OnlyLineBreaks(content) {
		return ""
	}
	return content
}

// Diff compares the plain text of slot kind's snapshot with the current
// content. ok is false when the slot is empty.
func (e *Editor) Diff(kind domain.WritingType) (diffs []diffmatchpatch.Diff, ok bool) {
	e.mu.Lock()
	prev, ok := e.undo.Peek(kind)
	current := e.content
	e.mu.Unlock()
	if !ok {
		return nil, false
	}

	dmp := diffmatchpatch.New()
	diffs = dmp.DiffMain(PlainText(prev), PlainText(current), false)
	return dmp.DiffCleanupSemantic(diffs), true
}

// DiffText renders Diff with [-removed-] and {+added+} markers.
func (e *Editor) DiffText(kind domain.WritingType) string {
	diffs, ok := e.Diff(kind)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
