package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/lumina"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default; cobra keeps values between
// executions of the same command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "lumina version "+lumina.Version+"\n", out)
}

func TestFormat_Stdin(t *testing.T) {
	out, err := execute(t, `{"b": [1, 2], "a": null}`, "format")
	require.NoError(t, err)
	assert.Equal(t, "{b: [1, 2], a: }\n", out)
}

func TestFormat_YAMLValues(t *testing.T) {
	path := writeFile(t, "value.yaml", "name: Ann\ntags:\n  - x\n  - y\nempty: null\n")

	out, err := execute(t, "", "format", path, "--mode", "values")
	require.NoError(t, err)
	assert.Equal(t, "Ann\nx\ny\n", out)
}

func TestFormat_InvalidMode(t *testing.T) {
	_, err := execute(t, "1", "format", "--mode", "fancy")
	assert.Error(t, err)
}

func TestAI_NoServiceConfigured(t *testing.T) {
	t.Setenv("LUMINA_API_URL", "")
	_, err := execute(t, "", "ai", "templates", "sales pipeline")
	assert.ErrorContains(t, err, "no AI service configured")
}

func TestAI_PublicModeResolvesEmpty(t *testing.T) {
	out, err := execute(t, "", "--public", "ai", "templates", "sales pipeline")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching templates")
}

func aiServer(t *testing.T, body string, seenPath *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seenPath != nil {
			*seenPath = r.URL.Path
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const peopleDataset = `{
  "collection": {"id": "c1", "name": "People", "attributes": [{"id": "a1", "name": "Age"}]},
  "documents": [
    {"id": "d1", "collectionId": "c1", "data": {"a1": "120"}},
    {"id": "d2", "collectionId": "c1", "data": {"a1": "12O"}}
  ]
}`

func TestAI_CheckResolvesRows(t *testing.T) {
	var path string
	srv := aiServer(t, `{"invalidData": ["12O"], "error": false}`, &path)
	data := writeFile(t, "people.json", peopleDataset)

	out, err := execute(t, "", "--api-url", srv.URL, "ai", "check", "--data", data, "--attribute", "a1")
	require.NoError(t, err)
	assert.Equal(t, "/rest/ai/checkData", path)
	assert.Contains(t, out, "12O\td2\n")
}

func TestAI_DeletePrintsMatchedRows(t *testing.T) {
	srv := aiServer(t, `{"idsToBeDeleted": ["d2"], "error": false}`, nil)
	data := writeFile(t, "people.json", peopleDataset)

	out, err := execute(t, "", "--api-url", srv.URL, "ai", "delete", "typos", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "12O")
	assert.NotContains(t, out, "120\n")
}

func TestAI_ServiceErrorFailsCommand(t *testing.T) {
	srv := aiServer(t, `{"error": true, "errorMessage": "quota exceeded"}`, nil)

	_, err := execute(t, "", "--api-url", srv.URL, "ai", "tables", "crm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestAI_WriteExpands(t *testing.T) {
	srv := aiServer(t, `{"generatedString": "hello wide world", "error": false}`, nil)

	out, err := execute(t, "", "--api-url", srv.URL, "ai", "write", "hello", "world", "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, "hello wide world")
	assert.Contains(t, out, "{+wide +}")
}

func TestAI_CheckUnknownAttribute(t *testing.T) {
	srv := aiServer(t, `{"error": false}`, nil)
	data := writeFile(t, "people.json", peopleDataset)

	_, err := execute(t, "", "--api-url", srv.URL, "ai", "check", "--data", data, "--attribute", "zz")
	assert.ErrorContains(t, err, `attribute "zz" not found`)
}
