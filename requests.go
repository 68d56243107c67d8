package lumina

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/session"
)

// RequestState is the three-valued view of one session, with the service
// answer or failure message once settled.
type RequestState struct {
	Kind         domain.OperationKind `json:"kind"`
	Token        uint64               `json:"token,omitempty"`
	Status       domain.Status        `json:"status"`
	ErrorMessage string               `json:"errorMessage,omitempty"`
	Result       any                  `json:"result,omitempty"`
}

func containerState[Res any](kind domain.OperationKind, c *session.Container[Res]) RequestState {
	st := RequestState{Kind: kind, Status: domain.StatusEmpty}
	if c == nil {
		return st
	}
	st.Token = c.Token()
	st.Status = c.Status()
	if r, ok := c.Result(); ok {
		if v, ok := r.Value(); ok {
			st.Result = v
		} else {
			st.ErrorMessage = r.Message()
		}
	}
	return st
}

// WaitFunc blocks until an issued request settles. It returns
// domain.ErrSuperseded when a newer request replaced it.
type WaitFunc func(ctx context.Context) (RequestState, error)

// endpoint erases the request and response types of one session.
type endpoint struct {
	issue   func(ctx context.Context, body []byte) (RequestState, WaitFunc, error)
	current func() RequestState
}

func newEndpoint[Req, Res any](s *session.Session[Req, Res]) endpoint {
	return endpoint{
		issue: func(ctx context.Context, body []byte) (RequestState, WaitFunc, error) {
			var req Req
			if err := json.Unmarshal(body, &req); err != nil {
				return RequestState{}, nil, fmt.Errorf("invalid %s request: %w", s.Kind(), err)
			}
			c := s.Issue(ctx, req)
			wait := func(ctx context.Context) (RequestState, error) {
				if _, err := c.Wait(ctx); err != nil {
					return RequestState{}, err
				}
				return containerState(s.Kind(), c), nil
			}
			return containerState(s.Kind(), c), wait, nil
		},
		current: func() RequestState {
			return containerState(s.Kind(), s.Current())
		},
	}
}

func (a *Assistant) endpoint(kind domain.OperationKind) (endpoint, error) {
	switch kind {
	case domain.OpTableSuggestion:
		return newEndpoint(a.Tables()), nil
	case domain.OpAssistedWriting:
		return newEndpoint(a.Writing()), nil
	case domain.OpTemplateSuggestion:
		return newEndpoint(a.Templates()), nil
	case domain.OpMassDelete:
		return newEndpoint(a.MassDelete()), nil
	case domain.OpCheckData:
		return newEndpoint(a.CheckData()), nil
	case domain.OpSuggestDataType:
		return newEndpoint(a.DataType()), nil
	}
	return endpoint{}, fmt.Errorf("%w: %s", domain.ErrUnknownKind, kind)
}

// IssueJSON decodes body as the request of kind and issues it. The returned
// state is pending; wait blocks until the request settles.
func (a *Assistant) IssueJSON(ctx context.Context, kind domain.OperationKind, body []byte) (RequestState, WaitFunc, error) {
	ep, err := a.endpoint(kind)
	if err != nil {
		return RequestState{}, nil, err
	}
	return ep.issue(ctx, body)
}

// State returns the state of the current request of kind.
func (a *Assistant) State(kind domain.OperationKind) (RequestState, error) {
	ep, err := a.endpoint(kind)
	if err != nil {
		return RequestState{}, err
	}
	return ep.current(), nil
}
