package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/lumina/pkg/domain"
	"github.com/stretchr/testify/assert"
)

// RunAIServiceContract runs a suite of tests to verify that an AIService
// implementation adheres to the boundary contract: every call either succeeds
// or fails with a typed request or transport error.
func RunAIServiceContract(t *testing.T, svc AIService) {
	t.Helper()
	ctx := context.Background()

	calls := map[domain.OperationKind]func(context.Context) error{
		domain.OpTableSuggestion: func(ctx context.Context) error {
			_, err := svc.SuggestTables(ctx, domain.TableRequest{TablesDescription: "a small CRM"})
			return err
		},
		domain.OpAssistedWriting: func(ctx context.Context) error {
			_, err := svc.AssistedWriting(ctx, domain.AssistedWritingRequest{InputString: "hello", Type: domain.WritingExpand})
			return err
		},
		domain.OpTemplateSuggestion: func(ctx context.Context) error {
			_, err := svc.SuggestTemplates(ctx, domain.TemplateSuggestionRequest{ProjectDescription: "sales pipeline"})
			return err
		},
		domain.OpMassDelete: func(ctx context.Context) error {
			_, err := svc.MassDelete(ctx, domain.MassDeleteRequest{
				DeleteDescription: "rows without name",
				Data:              []string{"ID_ROW|Name", "d1|", "d2|Bob"},
			})
			return err
		},
		domain.OpCheckData: func(ctx context.Context) error {
			_, err := svc.CheckData(ctx, domain.CheckDataRequest{Data: []string{"1", "2", "x"}})
			return err
		},
		domain.OpSuggestDataType: func(ctx context.Context) error {
			_, err := svc.SuggestDataType(ctx, domain.SuggestDataTypeRequest{
				Data:      []string{"2024-01-01"},
				Attribute: domain.Attribute{ID: "a1", Name: "Date"},
			})
			return err
		},
	}

	for _, kind := range domain.OperationKinds {
		call := calls[kind]

		t.Run(string(kind)+"_Typed_Errors", func(t *testing.T) {
			err := call(ctx)
			assertTypedError(t, err)
		})

		t.Run(string(kind)+"_Canceled_Context", func(t *testing.T) {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			err := call(cctx)
			if err != nil {
				assert.ErrorIs(t, err, context.Canceled)
				assertTypedError(t, err)
			}
		})
	}
}

func assertTypedError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	var reqErr *domain.RequestError
	var trErr *domain.TransportError
	assert.True(t, errors.As(err, &reqErr) || errors.As(err, &trErr),
		"error must be a RequestError or TransportError, got %T: %v", err, err)
}
