package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "https://github.com/twbs/bootstrap.git", cfg.Repo.URL)
	assert.Equal(t, "main", cfg.Repo.Branch)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, 8001, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, 50, cfg.Search.MaxLimit)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "stdio", cfg.Server.Transport)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	// Given: a config file changing a few fields
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /var/lib/bootstrapmcp
server:
  transport: http
  port: 9000
search:
  default_limit: 5
  max_limit: 20
`), 0o644))

	// When: loading it
	cfg, err := Load(path)
	require.NoError(t, err)

	// Then: file values win, untouched fields keep defaults
	assert.Equal(t, "/var/lib/bootstrapmcp", cfg.DataDir)
	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Search.DefaultLimit)
	assert.Equal(t, "main", cfg.Repo.Branch)
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	// Given: a file value and a conflicting environment variable
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /from-file\n"), 0o644))
	t.Setenv(EnvDataDir, "/from-env")
	t.Setenv(EnvTransport, "http")
	t.Setenv(EnvPort, "8080")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Then: the environment wins
	assert.Equal(t, "/from-env", cfg.DataDir)
	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_BadEnvPortIgnored(t *testing.T) {
	t.Setenv(EnvPort, "not-a-port")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	cfg := New()
	assert.NoError(t, cfg.Validate())

	cfg.Server.Transport = "carrier-pigeon"
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.Search.DefaultLimit = 0
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.Search.MaxLimit = cfg.Search.DefaultLimit - 1
	assert.Error(t, cfg.Validate())
}

func TestDerivedPaths(t *testing.T) {
	cfg := New()
	cfg.DataDir = "/data"

	assert.Equal(t, filepath.Join("/data", "bootstrap_docs.db"), cfg.DocsDBPath())
	assert.Equal(t, filepath.Join("/data", "bootstrap_examples.db"), cfg.TemplatesDBPath())
	assert.Equal(t, filepath.Join("/data", "bootstrap-repo"), cfg.RepoPath())
}
