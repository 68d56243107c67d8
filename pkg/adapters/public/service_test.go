package public_test

import (
	"context"
	"testing"

	"github.com/aretw0/lumina/pkg/adapters/public"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.AIService = public.Service{}

func TestService_Contract(t *testing.T) {
	ports.RunAIServiceContract(t, public.New())
}

func TestService_EmptyAnswers(t *testing.T) {
	svc := public.New()
	ctx := context.Background()

	tables, err := svc.SuggestTables(ctx, domain.TableRequest{TablesDescription: "crm"})
	require.NoError(t, err)
	assert.Empty(t, tables.Tables)

	typ, err := svc.SuggestDataType(ctx, domain.SuggestDataTypeRequest{})
	require.NoError(t, err)
	assert.Nil(t, typ.Attribute)
}
