package memory

import (
	"context"
	"sync"

	"github.com/aretw0/lumina/internal/dto"
	"github.com/aretw0/lumina/pkg/domain"
)

// Service implements ports.AIService from scripted response bodies.
// Bodies use the wire format of the backend, error envelope included, so a
// script can exercise both successes and service-reported failures.
// Safe for concurrent use.
type Service struct {
	mu     sync.Mutex
	bodies map[domain.OperationKind][]byte
	faults map[domain.OperationKind]error
	gates  map[domain.OperationKind]chan struct{}
	calls  map[domain.OperationKind][]any
}

// NewService creates a service answering each kind with its raw JSON body.
// Kinds without a body answer with an empty success.
func NewService(bodies map[domain.OperationKind]string) *Service {
	s := &Service{
		bodies: make(map[domain.OperationKind][]byte),
		faults: make(map[domain.OperationKind]error),
		gates:  make(map[domain.OperationKind]chan struct{}),
		calls:  make(map[domain.OperationKind][]any),
	}
	for k, v := range bodies {
		s.bodies[k] = []byte(v)
	}
	return s
}

// Script replaces the body answered for kind and clears any fault.
func (s *Service) Script(kind domain.OperationKind, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[kind] = []byte(body)
	delete(s.faults, kind)
}

// Fail makes every call of kind fail with a transport error wrapping err.
func (s *Service) Fail(kind domain.OperationKind, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[kind] = err
}

// Hold blocks calls of kind until the returned release func runs or the
// call's context ends. Calling release more than once is safe.
func (s *Service) Hold(kind domain.OperationKind) (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gates[kind] = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.gates[kind] == gate {
				delete(s.gates, kind)
			}
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Calls returns a copy of the requests received for kind, in arrival order.
func (s *Service) Calls(kind domain.OperationKind) []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]any(nil), s.calls[kind]...)
}

func (s *Service) SuggestTables(ctx context.Context, req domain.TableRequest) (domain.TableResponse, error) {
	return answer[domain.TableResponse](ctx, s, domain.OpTableSuggestion, req)
}

func (s *Service) AssistedWriting(ctx context.Context, req domain.AssistedWritingRequest) (domain.AssistedWritingResponse, error) {
	return answer[domain.AssistedWritingResponse](ctx, s, domain.OpAssistedWriting, req)
}

func (s *Service) SuggestTemplates(ctx context.Context, req domain.TemplateSuggestionRequest) (domain.TemplateSuggestionResponse, error) {
	return answer[domain.TemplateSuggestionResponse](ctx, s, domain.OpTemplateSuggestion, req)
}

func (s *Service) MassDelete(ctx context.Context, req domain.MassDeleteRequest) (domain.MassDeleteResponse, error) {
	return answer[domain.MassDeleteResponse](ctx, s, domain.OpMassDelete, req)
}

func (s *Service) CheckData(ctx context.Context, req domain.CheckDataRequest) (domain.CheckDataResponse, error) {
	return answer[domain.CheckDataResponse](ctx, s, domain.OpCheckData, req)
}

func (s *Service) SuggestDataType(ctx context.Context, req domain.SuggestDataTypeRequest) (domain.SuggestDataTypeResponse, error) {
	return answer[domain.SuggestDataTypeResponse](ctx, s, domain.OpSuggestDataType, req)
}

func answer[Res any](ctx context.Context, s *Service, kind domain.OperationKind, req any) (Res, error) {
	var zero Res

	s.mu.Lock()
	s.calls[kind] = append(s.calls[kind], req)
	gate := s.gates[kind]
	body := s.bodies[kind]
	fault := s.faults[kind]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return zero, &domain.TransportError{Kind: kind, Err: ctx.Err()}
		}
	}
	if err := ctx.Err(); err != nil {
		return zero, &domain.TransportError{Kind: kind, Err: err}
	}
	if fault != nil {
		return zero, &domain.TransportError{Kind: kind, Err: fault}
	}
	if body == nil {
		return zero, nil
	}

	res, status, err := dto.DecodeResponse[Res](body)
	if err != nil {
		return zero, &domain.TransportError{Kind: kind, Err: err}
	}
	if status.Error {
		return zero, &domain.RequestError{Kind: kind, Message: status.ErrorMessage}
	}
	return res, nil
}
