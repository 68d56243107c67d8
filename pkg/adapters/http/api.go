package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// OwnerHeader carries the id of the client owning the sessions of a request.
const OwnerHeader = "X-Lumina-Owner"

// RequestParams are the parameters shared by the /ai/{kind} operations.
type RequestParams struct {
	Owner string
}

// IssueRequestParams defines parameters for IssueRequest.
type IssueRequestParams struct {
	RequestParams
	Wait *bool
}

// SubscribeEventsParams defines parameters for SubscribeEvents.
type SubscribeEventsParams struct {
	Owner string
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /info)
	GetInfo(w http.ResponseWriter, r *http.Request)
	// (POST /format)
	FormatValue(w http.ResponseWriter, r *http.Request)
	// (GET /ai/{kind})
	GetRequest(w http.ResponseWriter, r *http.Request, kind string, params RequestParams)
	// (POST /ai/{kind})
	IssueRequest(w http.ResponseWriter, r *http.Request, kind string, params IssueRequestParams)
	// (DELETE /ai/{kind})
	ResetRequest(w http.ResponseWriter, r *http.Request, kind string, params RequestParams)
	// (DELETE /owners/{owner})
	DiscardOwner(w http.ResponseWriter, r *http.Request, owner string)
	// (GET /events)
	SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams)
}

// wrapper binds path, query and header parameters before calling the handler.
type wrapper struct {
	handler ServerInterface
}

func (wr *wrapper) bindKind(w http.ResponseWriter, r *http.Request) (string, RequestParams, bool) {
	var kind string
	if err := runtime.BindStyledParameterWithLocation("simple", false, "kind", runtime.ParamLocationPath, chi.URLParam(r, "kind"), &kind); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter kind: %w", err))
		return "", RequestParams{}, false
	}
	var params RequestParams
	if v := r.Header.Get(OwnerHeader); v != "" {
		if err := runtime.BindStyledParameterWithLocation("simple", false, OwnerHeader, runtime.ParamLocationHeader, v, &params.Owner); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter %s: %w", OwnerHeader, err))
			return "", RequestParams{}, false
		}
	}
	return kind, params, true
}

func (wr *wrapper) GetRequest(w http.ResponseWriter, r *http.Request) {
	if kind, params, ok := wr.bindKind(w, r); ok {
		wr.handler.GetRequest(w, r, kind, params)
	}
}

func (wr *wrapper) IssueRequest(w http.ResponseWriter, r *http.Request) {
	kind, base, ok := wr.bindKind(w, r)
	if !ok {
		return
	}
	params := IssueRequestParams{RequestParams: base}
	if err := runtime.BindQueryParameter("form", true, false, "wait", r.URL.Query(), &params.Wait); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter wait: %w", err))
		return
	}
	wr.handler.IssueRequest(w, r, kind, params)
}

func (wr *wrapper) ResetRequest(w http.ResponseWriter, r *http.Request) {
	if kind, params, ok := wr.bindKind(w, r); ok {
		wr.handler.ResetRequest(w, r, kind, params)
	}
}

func (wr *wrapper) DiscardOwner(w http.ResponseWriter, r *http.Request) {
	var owner string
	if err := runtime.BindStyledParameterWithLocation("simple", false, "owner", runtime.ParamLocationPath, chi.URLParam(r, "owner"), &owner); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter owner: %w", err))
		return
	}
	wr.handler.DiscardOwner(w, r, owner)
}

func (wr *wrapper) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	var params SubscribeEventsParams
	if err := runtime.BindQueryParameter("form", true, true, "owner", r.URL.Query(), &params.Owner); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter owner: %w", err))
		return
	}
	wr.handler.SubscribeEvents(w, r, params)
}

// HandlerFromMux registers the operations of si on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	wr := &wrapper{handler: si}
	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)
	r.Post("/format", si.FormatValue)
	r.Get("/ai/{kind}", wr.GetRequest)
	r.Post("/ai/{kind}", wr.IssueRequest)
	r.Delete("/ai/{kind}", wr.ResetRequest)
	r.Delete("/owners/{owner}", wr.DiscardOwner)
	r.Get("/events", wr.SubscribeEvents)
	return r
}
