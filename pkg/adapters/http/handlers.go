package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/lumina"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/format"
)

// RequestState is the view of a session returned by /ai/{kind}.
type RequestState = lumina.RequestState

var errMissingOwner = errors.New(OwnerHeader + " header is required to issue requests")

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "lumina-http",
		"version":     lumina.Version,
		"api_version": apiVersion,
	})
}

// FormatRequest is the body of POST /format. When Document is set its data,
// keyed by Attributes, is formatted instead of Value.
type FormatRequest struct {
	Mode       string                    `json:"mode,omitempty"`
	Value      json.RawMessage           `json:"value,omitempty"`
	Document   *domain.Document          `json:"document,omitempty"`
	Attributes []domain.Attribute        `json:"attributes,omitempty"`
	Context    *domain.ConstraintContext `json:"context,omitempty"`
}

// FormatResponse is the answer of POST /format.
type FormatResponse struct {
	Result string   `json:"result"`
	Values []string `json:"values,omitempty"`
}

// FormatValue handles the POST /format request.
func (s *Server) FormatValue(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req FormatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	mode, err := format.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var value domain.DisplayValue = domain.Null()
	switch {
	case req.Document != nil:
		cc := s.Context
		if req.Context != nil {
			cc = *req.Context
		}
		value = format.DocumentValue(*req.Document, req.Attributes, cc)
	case len(req.Value) > 0:
		value, err = format.DecodeJSON(req.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	resp := FormatResponse{Result: format.Render(value, mode)}
	if mode == format.ModeValues {
		resp.Values = format.Values(value)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) lookupKind(w http.ResponseWriter, kind string) (domain.OperationKind, bool) {
	k, err := domain.ParseOperationKind(kind)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", err, kind))
		return "", false
	}
	return k, true
}

// GetRequest handles the GET /ai/{kind} request.
func (s *Server) GetRequest(w http.ResponseWriter, r *http.Request, kind string, params RequestParams) {
	k, ok := s.lookupKind(w, kind)
	if !ok {
		return
	}
	a, found := s.Assistants.Lookup(params.Owner)
	if !found {
		writeJSON(w, http.StatusOK, RequestState{Kind: k, Status: domain.StatusEmpty})
		return
	}
	st, err := a.State(k)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// IssueRequest handles the POST /ai/{kind} request. The request runs in the
// background; with wait=true the handler answers once it finished.
func (s *Server) IssueRequest(w http.ResponseWriter, r *http.Request, kind string, params IssueRequestParams) {
	k, ok := s.lookupKind(w, kind)
	if !ok {
		return
	}
	if ownerGenerated(r) {
		writeError(w, http.StatusBadRequest, errMissingOwner)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var state RequestState
	var wait lumina.WaitFunc
	err = s.Assistants.WithLock(r.Context(), params.Owner, func(ctx context.Context, a *lumina.Assistant) error {
		var err error
		state, wait, err = a.IssueJSON(ctx, k, body)
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Debug("request issued", "owner", params.Owner, "kind", k, "token", state.Token)

	if params.Wait == nil || !*params.Wait {
		writeJSON(w, http.StatusAccepted, state)
		return
	}
	final, err := wait(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSuperseded) {
			writeError(w, http.StatusConflict, err)
			return
		}
		// Client went away.
		return
	}
	writeJSON(w, http.StatusOK, final)
}

// ResetRequest handles the DELETE /ai/{kind} request.
func (s *Server) ResetRequest(w http.ResponseWriter, r *http.Request, kind string, params RequestParams) {
	k, ok := s.lookupKind(w, kind)
	if !ok {
		return
	}
	if a, found := s.Assistants.Lookup(params.Owner); found {
		v, err := a.Session(k)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		v.Reset(r.Context())
	}
	w.WriteHeader(http.StatusNoContent)
}

// DiscardOwner handles the DELETE /owners/{owner} request.
func (s *Server) DiscardOwner(w http.ResponseWriter, r *http.Request, owner string) {
	if err := s.Assistants.Discard(r.Context(), owner); err != nil {
		if errors.Is(err, domain.ErrOwnerNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(params.Owner)
	defer cancel()
	s.logger.Debug("events subscribed", "owner", params.Owner)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("events unsubscribed", "owner", params.Owner)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
