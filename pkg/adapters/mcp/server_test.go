package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/lumina"
	"github.com/aretw0/lumina/pkg/adapters/memory"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, bodies map[domain.OperationKind]string) (*Server, *memory.Service) {
	t.Helper()
	svc := memory.NewService(bodies)
	a := lumina.New(svc)
	t.Cleanup(func() { a.Close(context.Background()) })
	return NewServer(a, WithTimeout(time.Second)), svc
}

func TestFormatValue(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ctx := context.Background()

	resp, err := s.handleFormat(ctx, mcp.CallToolRequest{}, formatArgs{Value: `[1, [2, 3], null, {"a": true}]`})
	require.NoError(t, err)
	assert.Equal(t, "[1, [2, 3], , {a: true}]", resp.Result)
	assert.Empty(t, resp.Values)

	resp, err = s.handleFormat(ctx, mcp.CallToolRequest{}, formatArgs{Value: `{"a": [1, 2], "b": "x"}`, Mode: "values"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "x"}, resp.Values)

	_, err = s.handleFormat(ctx, mcp.CallToolRequest{}, formatArgs{Value: `1`, Mode: "bogus"})
	assert.Error(t, err)

	_, err = s.handleFormat(ctx, mcp.CallToolRequest{}, formatArgs{Value: `{`})
	assert.ErrorContains(t, err, "invalid value")
}

func TestAIRequest(t *testing.T) {
	s, svc := newTestServer(t, map[domain.OperationKind]string{
		domain.OpCheckData: `{"invalidData": ["12O"], "error": false}`,
	})
	ctx := context.Background()

	resp, err := s.handleRequest(ctx, mcp.CallToolRequest{}, requestArgs{Kind: "checkData", Request: `{"data": ["120", "12O"]}`})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, resp.Status)
	assert.Equal(t, domain.CheckDataResponse{InvalidData: []string{"12O"}}, resp.Result)
	assert.Len(t, svc.Calls(domain.OpCheckData), 1)

	status, err := s.handleStatus(ctx, mcp.CallToolRequest{}, requestArgs{Kind: "checkData"})
	require.NoError(t, err)
	assert.Equal(t, resp, status)
}

func TestAIRequest_ServiceError(t *testing.T) {
	s, _ := newTestServer(t, map[domain.OperationKind]string{
		domain.OpMassDelete: `{"error": true, "errorMessage": "nothing matches"}`,
	})

	resp, err := s.handleRequest(context.Background(), mcp.CallToolRequest{}, requestArgs{Kind: "massDelete", Request: `{"deleteDescription": "all"}`})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, resp.Status)
	assert.Equal(t, "nothing matches", resp.ErrorMessage)
}

func TestAIRequest_InvalidInput(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ctx := context.Background()

	_, err := s.handleRequest(ctx, mcp.CallToolRequest{}, requestArgs{Kind: "nope", Request: `{}`})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = s.handleRequest(ctx, mcp.CallToolRequest{}, requestArgs{Kind: "tables", Request: `[`})
	assert.Error(t, err)

	_, err = s.handleStatus(ctx, mcp.CallToolRequest{}, requestArgs{Kind: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestAIRequest_Timeout(t *testing.T) {
	svc := memory.NewService(nil)
	release := svc.Hold(domain.OpTableSuggestion)
	defer release()
	a := lumina.New(svc)
	defer a.Close(context.Background())
	s := NewServer(a, WithTimeout(20*time.Millisecond))

	_, err := s.handleRequest(context.Background(), mcp.CallToolRequest{}, requestArgs{Kind: "tables", Request: `{"tablesDescription": "crm"}`})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReadKinds(t *testing.T) {
	s, _ := newTestServer(t, nil)

	contents, err := s.readKinds(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, kindsURI, text.URI)

	var states []map[string]string
	require.NoError(t, json.Unmarshal([]byte(text.Text), &states))
	require.Len(t, states, len(domain.OperationKinds))
	assert.Equal(t, map[string]string{"kind": "tables", "status": "empty"}, states[0])
}
