package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.Equal(t, 30, cfg.Roster.ClassSize)
	assert.Equal(t, int64(2024), cfg.Roster.Seed)
	assert.Equal(t, "grades-export.csv", cfg.Export.Filename)
	assert.False(t, cfg.Demo.Enabled)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("ENABLE_DEMO_TOOLS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage.Backend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Demo.Enabled)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STORAGE_DIR", "/from/env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("storage-dir", "", "")
	fs.String("storage-backend", "", "")
	require.NoError(t, fs.Parse([]string{"--storage-dir", "/from/flag"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.Storage.Dir)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
