package ports

import (
	"context"

	"github.com/aretw0/lumina/pkg/domain"
)

// AIService is the external AI collaborator.
//
// Implementations translate every failure at the boundary: a response flagged
// as an error by the service becomes a *domain.RequestError, anything else
// (network, auth, decoding) a *domain.TransportError.
type AIService interface {
	SuggestTables(ctx context.Context, req domain.TableRequest) (domain.TableResponse, error)
	AssistedWriting(ctx context.Context, req domain.AssistedWritingRequest) (domain.AssistedWritingResponse, error)
	SuggestTemplates(ctx context.Context, req domain.TemplateSuggestionRequest) (domain.TemplateSuggestionResponse, error)
	MassDelete(ctx context.Context, req domain.MassDeleteRequest) (domain.MassDeleteResponse, error)
	CheckData(ctx context.Context, req domain.CheckDataRequest) (domain.CheckDataResponse, error)
	SuggestDataType(ctx context.Context, req domain.SuggestDataTypeRequest) (domain.SuggestDataTypeResponse, error)
}
