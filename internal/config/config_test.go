package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/lumina/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumina.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 4096, cfg.MaxPromptSize)
	assert.False(t, cfg.Public)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeFile(t, `
api_url: https://app.example.com
api_token: from-file
timeout_seconds: 10
locale: de
`)
	t.Setenv("LUMINA_API_TOKEN", "from-env")
	t.Setenv("LUMINA_PUBLIC", "true")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("locale", "", "")
	fs.Int("timeout", 0, "")
	require.NoError(t, fs.Parse([]string{"--locale", "cs"}))

	cfg, err := config.Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "https://app.example.com", cfg.APIURL)
	assert.Equal(t, "from-env", cfg.APIToken, "env overrides file")
	assert.True(t, cfg.Public)
	assert.Equal(t, "cs", cfg.Locale, "changed flag overrides file")
	assert.Equal(t, 10*time.Second, cfg.Timeout(), "unchanged flag keeps file value")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Config{TimeoutSeconds: -1, LogLevel: "loud", APIURL: "ftp://x"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_seconds")
	assert.Contains(t, err.Error(), "unknown log level")
	assert.Contains(t, err.Error(), "api_url")

	ok := config.Config{LogLevel: "debug", APIURL: "https://x"}
	assert.NoError(t, ok.Validate())
}
