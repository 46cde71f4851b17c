package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "portfolio", cfg.Site.Name)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "portfolio-data.json", cfg.Store.Path)
	assert.False(t, cfg.IsDev())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: development
site:
  name: miixu-portfolio
admin:
  email: owner@example.com
  password: hunter2hunter2
store:
  backend: sqlite
  path: data/site.db
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "miixu-portfolio", cfg.Site.Name)
	assert.Equal(t, "owner@example.com", cfg.Admin.Email)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "data/site.db", cfg.StoreDSN())
}

func TestEnvOverridesWinOverYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  name: from-yaml\n"), 0o644))

	t.Setenv("PORTFOLIO_SITE_NAME", "from-env")
	t.Setenv("PORTFOLIO_STORE_BACKEND", "redis")
	t.Setenv("PORTFOLIO_STORE_URL", "redis://localhost:6379/0")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Site.Name)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.StoreDSN())
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("site: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
