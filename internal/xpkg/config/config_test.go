package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("reads yaml and applies defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
database:
  host: "db.internal"
  port: "5433"
  user: "pos"
  password: "secret"
  database: "sembrador_db"
`), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.DB.Host)
		assert.Equal(t, "5433", cfg.DB.Port)
		assert.Nil(t, cfg.RMQ)
		require.NotNil(t, cfg.Reporting)
		assert.Equal(t, "America/Mexico_City", cfg.Reporting.Timezone)
	})

	t.Run("keeps explicit timezone", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
database:
  host: "localhost"
reporting:
  timezone: "America/Monterrey"
`), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "America/Monterrey", cfg.Reporting.Timezone)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "envhost")
	t.Setenv("POSTGRES_DBNAME", "envdb")

	cfg := LoadEnv()
	assert.Equal(t, "envhost", cfg.DB.Host)
	assert.Equal(t, "envdb", cfg.DB.Database)
	assert.Nil(t, cfg.RMQ)

	t.Setenv("RABBITMQ_HOST", "mq")
	cfg = LoadEnv()
	require.NotNil(t, cfg.RMQ)
	assert.Equal(t, "mq", cfg.RMQ.Host)
}
