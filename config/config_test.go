package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SYNCNOTES_AUTH_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/notehub", cfg.Server.HubPath)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "SyncNotes", cfg.Auth.Issuer)
	assert.Equal(t, "SyncNotes", cfg.Auth.Audience)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "syncnotes.db", cfg.Database.DSN)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.NameTTL)
	assert.False(t, cfg.Hub.LegacyElementDeleteBroadcast)
	assert.Equal(t, 20.0, cfg.Hub.MessagesPerSecond)
	assert.Equal(t, 30, cfg.Hub.Burst)
	assert.Equal(t, 256, cfg.Hub.SendBuffer)
	assert.Equal(t, int64(1<<20), cfg.Hub.MaxMessageBytes)
	assert.Equal(t, log.INFO, cfg.LogLevel())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SYNCNOTES_AUTH_JWT_SECRET", "secret")
	t.Setenv("SYNCNOTES_DATABASE_DRIVER", "postgres")
	t.Setenv("SYNCNOTES_DATABASE_DSN", "host=db user=notes")
	t.Setenv("SYNCNOTES_HUB_LEGACY_ELEMENT_DELETE_BROADCAST", "true")
	t.Setenv("SYNCNOTES_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=db user=notes", cfg.Database.DSN)
	assert.True(t, cfg.Hub.LegacyElementDeleteBroadcast)
	assert.Equal(t, log.DEBUG, cfg.LogLevel())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := "auth:\n  jwt_secret: from-file\nserver:\n  addr: \":9090\"\n  allowed_origins:\n    - http://localhost:5173\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNCNOTES_AUTH_JWT_SECRET=dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SYNCNOTES_AUTH_JWT_SECRET") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv", cfg.Auth.JWTSecret)
}

func TestLoadRequiresSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SYNCNOTES_AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{HubPath: "/notehub"},
			Auth:     AuthConfig{JWTSecret: "secret"},
			Database: DatabaseConfig{Driver: DriverSQLite, DSN: ":memory:"},
			Hub:      HubConfig{MessagesPerSecond: 1, Burst: 1, SendBuffer: 1},
		}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Server.HubPath = "notehub"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Redis = RedisConfig{Enabled: true}
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Hub.SendBuffer = 0
	assert.Error(t, cfg.Validate())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores the previous one when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
