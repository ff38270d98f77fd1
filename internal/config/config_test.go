package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := Load(filepath.Join(tmpDir, "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, defaultBind, cfg.Bind)
	require.Equal(t, "INFO", cfg.Logging.Level)
	require.EqualValues(t, 64*1024, cfg.Argon2.MCost)
}

func TestLoadReadsFileOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	content := `
bind: "0.0.0.0:6500"
logging:
  level: "DEBUG"
  format: "json"
database:
  type: sqlite
  sqlite:
    path: "` + filepath.ToSlash(filepath.Join(tmpDir, "mxd.db")) + `"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:6500", cfg.Bind)
	require.Equal(t, "DEBUG", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bind: \"0.0.0.0:6500\"\n"), 0o644))

	t.Setenv("MXD_BIND", "0.0.0.0:7500")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:7500", cfg.Bind)
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "VERBOSE"
	require.Error(t, Validate(cfg))
}

func TestValidateRejectsMissingBind(t *testing.T) {
	cfg := defaultConfig()
	cfg.Bind = ""
	require.Error(t, Validate(cfg))
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := defaultConfig()
	cfg.Bind = "0.0.0.0:1500"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:1500", loaded.Bind)
}
