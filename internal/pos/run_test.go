package pos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sembrador-pos/internal/pos/app/core"
)

func TestParseParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		params, err := parseParams(nil)
		require.NoError(t, err)
		assert.Equal(t, 3000, params.serverParams.Port)
		assert.Equal(t, "config.yaml", params.configPath)
	})

	t.Run("flags override", func(t *testing.T) {
		params, err := parseParams([]string{"--port", "8080", "--config-path", "other.yaml"})
		require.NoError(t, err)
		assert.Equal(t, 8080, params.serverParams.Port)
		assert.Equal(t, "other.yaml", params.configPath)
	})

	t.Run("help", func(t *testing.T) {
		_, err := parseParams([]string{"--help"})
		require.ErrorIs(t, err, core.ErrHelp)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := parseParams([]string{"--nope"})
		require.ErrorIs(t, err, core.ErrParseCmd)
	})
}

func TestValidateParams(t *testing.T) {
	t.Run("missing config file falls back to env", func(t *testing.T) {
		t.Setenv("POSTGRES_HOST", "envhost")
		params := &params{
			serverParams: &core.ServerParams{Port: 3000},
			configPath:   filepath.Join(t.TempDir(), "nope.yaml"),
		}
		require.NoError(t, validateParams(params))
		require.NotNil(t, params.cfg)
		assert.Equal(t, "envhost", params.cfg.DB.Host)
	})

	t.Run("malformed config file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database: [not a mapping"), 0o644))

		params := &params{
			serverParams: &core.ServerParams{Port: 3000},
			configPath:   path,
		}
		require.Error(t, validateParams(params))
	})

	t.Run("port out of range", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database:\n  host: localhost\n"), 0o644))

		params := &params{
			serverParams: &core.ServerParams{Port: 70000},
			configPath:   path,
		}
		require.Error(t, validateParams(params))
	})
}
