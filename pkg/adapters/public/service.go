// Package public provides the AI service used in public (demo) mode, where
// no backend is available. Every operation succeeds with an empty answer.
package public

import (
	"context"

	"github.com/aretw0/lumina/pkg/domain"
)

// Service implements ports.AIService without any backend.
type Service struct{}

// New creates a public-mode service.
func New() Service { return Service{} }

func empty[Res any](ctx context.Context, kind domain.OperationKind) (Res, error) {
	var zero Res
	if err := ctx.Err(); err != nil {
		return zero, &domain.TransportError{Kind: kind, Err: err}
	}
	return zero, nil
}

func (Service) SuggestTables(ctx context.Context, _ domain.TableRequest) (domain.TableResponse, error) {
	return empty[domain.TableResponse](ctx, domain.OpTableSuggestion)
}

func (Service) AssistedWriting(ctx context.Context, _ domain.AssistedWritingRequest) (domain.AssistedWritingResponse, error) {
	return empty[domain.AssistedWritingResponse](ctx, domain.OpAssistedWriting)
}

func (Service) SuggestTemplates(ctx context.Context, _ domain.TemplateSuggestionRequest) (domain.TemplateSuggestionResponse, error) {
	return empty[domain.TemplateSuggestionResponse](ctx, domain.OpTemplateSuggestion)
}

func (Service) MassDelete(ctx context.Context, _ domain.MassDeleteRequest) (domain.MassDeleteResponse, error) {
	return empty[domain.MassDeleteResponse](ctx, domain.OpMassDelete)
}

func (Service) CheckData(ctx context.Context, _ domain.CheckDataRequest) (domain.CheckDataResponse, error) {
	return empty[domain.CheckDataResponse](ctx, domain.OpCheckData)
}

func (Service) SuggestDataType(ctx context.Context, _ domain.SuggestDataTypeRequest) (domain.SuggestDataTypeResponse, error) {
	return empty[domain.SuggestDataTypeResponse](ctx, domain.OpSuggestDataType)
}
