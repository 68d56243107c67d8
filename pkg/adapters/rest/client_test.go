package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/lumina/pkg/adapters/rest"
	"github.com/aretw0/lumina/pkg/domain"
	"github.com/aretw0/lumina/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"error": false, "errorMessage": ""}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Contract(t *testing.T) {
	srv := okServer(t)
	ports.RunAIServiceContract(t, rest.New(srv.URL))
}

func TestClient_RequestShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"generatedString": "longer text", "error": false}`)
	}))
	defer srv.Close()

	c := rest.New(srv.URL+"/", rest.WithToken("secret"))
	res, err := c.AssistedWriting(context.Background(), domain.AssistedWritingRequest{InputString: "text", Type: domain.WritingExpand})
	require.NoError(t, err)

	assert.Equal(t, "longer text", res.GeneratedString)
	assert.Equal(t, "/rest/ai/assistedWriting", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, map[string]any{"inputString": "text", "eTypeAssistedWriting": "EXPAND"}, gotBody)
}

func TestClient_Endpoints(t *testing.T) {
	c := rest.New("https://api.example.com")
	assert.Equal(t, "https://api.example.com/rest/ai/tables", c.Endpoint(domain.OpTableSuggestion))
	assert.Equal(t, "https://api.example.com/rest/ai/template", c.Endpoint(domain.OpTemplateSuggestion))
	assert.Equal(t, "https://api.example.com/rest/ai/massDelete", c.Endpoint(domain.OpMassDelete))
	assert.Equal(t, "https://api.example.com/rest/ai/checkData", c.Endpoint(domain.OpCheckData))
	assert.Equal(t, "https://api.example.com/rest/ai/suggestDataType", c.Endpoint(domain.OpSuggestDataType))
}

func TestClient_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"tables": null, "error": true, "errorMessage": "quota exceeded"}`)
	}))
	defer srv.Close()

	_, err := rest.New(srv.URL).SuggestTables(context.Background(), domain.TableRequest{TablesDescription: "crm"})

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, domain.OpTableSuggestion, reqErr.Kind)
	assert.Equal(t, "quota exceeded", reqErr.Message)
}

func TestClient_TransportErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, "", rest.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "", rest.ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, "", rest.ErrRateLimited},
		{"unavailable", http.StatusBadGateway, "", rest.ErrUnavailable},
		{"bad request", http.StatusBadRequest, "", rest.ErrBadStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := rest.New(srv.URL).CheckData(context.Background(), domain.CheckDataRequest{Data: []string{"1"}})

			var trErr *domain.TransportError
			require.ErrorAs(t, err, &trErr)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, domain.OpCheckData, trErr.Kind)
		})
	}
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	}))
	defer srv.Close()

	_, err := rest.New(srv.URL).MassDelete(context.Background(), domain.MassDeleteRequest{})
	var trErr *domain.TransportError
	assert.True(t, errors.As(err, &trErr))
	assert.True(t, strings.Contains(domain.Message(err), "failed to decode"))
}

func TestClient_Unreachable(t *testing.T) {
	srv := okServer(t)
	url := srv.URL
	srv.Close()

	_, err := rest.New(url).SuggestTemplates(context.Background(), domain.TemplateSuggestionRequest{})
	var trErr *domain.TransportError
	assert.ErrorAs(t, err, &trErr)
}

func TestClient_TimeoutLeavesSharedClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	shared := &http.Client{Timeout: 30 * time.Second}
	c := rest.New(srv.URL, rest.WithHTTPClient(shared), rest.WithTimeout(20*time.Millisecond))
	assert.Equal(t, 30*time.Second, shared.Timeout)

	_, err := c.CheckData(context.Background(), domain.CheckDataRequest{Data: []string{"1"}})
	var trErr *domain.TransportError
	assert.ErrorAs(t, err, &trErr)

	rest.New(srv.URL, rest.WithHTTPClient(http.DefaultClient), rest.WithTimeout(time.Second))
	assert.Zero(t, http.DefaultClient.Timeout)
}

func TestClient_SuggestDataType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"attribute": {"id": "a1", "name": "Date", "constraint": {"type": "DateTime", "config": {"format": "DD.MM.YYYY"}}}, "error": false}`)
	}))
	defer srv.Close()

	res, err := rest.New(srv.URL).SuggestDataType(context.Background(), domain.SuggestDataTypeRequest{Data: []string{"01.02.2024"}})
	require.NoError(t, err)
	require.NotNil(t, res.Attribute)
	assert.Equal(t, domain.ConstraintDateTime, res.Attribute.ConstraintType())
	assert.Equal(t, "DD.MM.YYYY", res.Attribute.Constraint.Config["format"])
}
