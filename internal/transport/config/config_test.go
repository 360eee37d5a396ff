package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gartstein/transport/internal/transport/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, db.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: transport
  name: transport
  slow_query_ms: 500
log:
  level: debug
  mode: development
`)
	t.Setenv("TRANSPORT_DATABASE__HOST", "replica.internal")
	t.Setenv("TRANSPORT_DATABASE__PORT", "6432")
	t.Setenv("TRANSPORT_DATABASE__PASSWORD", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, db.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "replica.internal", cfg.Database.Host, "the environment should win over the file")
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "disable", cfg.Database.SSLMode, "unset keys keep their defaults")

	dbCfg := cfg.Database.DB()
	assert.Equal(t, "transport", dbCfg.DBName)
	assert.Equal(t, "s3cret", dbCfg.Password)
	assert.Equal(t, 500*time.Millisecond, dbCfg.SlowQuery)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown driver", body: "database:\n  driver: oracle\n"},
		{name: "postgres without host", body: "database:\n  driver: postgres\n  host: \"\"\n  user: u\n  name: n\n"},
		{name: "unknown log level", body: "log:\n  level: loud\n"},
		{name: "malformed yaml", body: "database: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
