package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oneconcern/localvcs/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	t.Setenv(EnvConfigFile, "")
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, BackendLocalFS, cfg.Backend)
	assert.Equal(t, ".localvcs", cfg.Path)
	assert.True(t, cfg.Atomic)
	assert.Equal(t, "none", cfg.LogLevel)

	size, err := cfg.MaxObjectSizeBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(1<<30), size)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "localvcs.yaml"), []byte(`
repo: project
backend: badger
path: /var/lib/localvcs
maxobjectsize: 64MB
verify: true
loglevel: debug
`), 0600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "project", cfg.Repo)
	assert.Equal(t, BackendBadger, cfg.Backend)
	assert.Equal(t, "/var/lib/localvcs", cfg.Path)
	assert.True(t, cfg.Verify)
	assert.True(t, cfg.SyncWrites)
	assert.Equal(t, "debug", cfg.LogLevel)
	size, err := cfg.MaxObjectSizeBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(64<<20), size)

	t.Run("environment takes precedence", func(t *testing.T) {
		t.Setenv("LOCALVCS_BACKEND", "memory")
		t.Setenv("LOCALVCS_METRICS", "true")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, BackendMemory, cfg.Backend)
		assert.True(t, cfg.Metrics)
		assert.Equal(t, "project", cfg.Repo)
	})
}

func TestLoadExplicitFile(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"backend": "memory", "atomic": false}`), 0600))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.False(t, cfg.Atomic)

	t.Setenv(EnvConfigFile, file)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, ErrReadConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(*Config)
		valid  bool
	}{
		{name: "defaults", tamper: func(*Config) {}, valid: true},
		{name: "memory without path", tamper: func(c *Config) { c.Backend = BackendMemory; c.Path = "" }, valid: true},
		{name: "unknown backend", tamper: func(c *Config) { c.Backend = "s3" }},
		{name: "badger without path", tamper: func(c *Config) { c.Backend = BackendBadger; c.Path = "" }},
		{name: "invalid repo", tamper: func(c *Config) { c.Repo = "a/b" }},
		{name: "invalid size", tamper: func(c *Config) { c.MaxObjectSize = "lots" }},
		{name: "invalid log level", tamper: func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, toPin := range tests {
		tt := toPin
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.tamper(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}
