package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
database:
  url: "postgres://localhost/test"
auth:
  jwt_secret: "file-secret"
logging:
  level: "debug"
demo_mode: true
`)

	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/test", cfg.Database.URL)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "activity-tracker", cfg.Auth.Issuer)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.DemoMode)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/file"
auth:
  jwt_secret: "file-secret"
`)

	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://localhost/env")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/env", cfg.Database.URL)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoad_EnvOnlyWithoutFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/env")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "file-secret"
`)

	t.Setenv("DATABASE_URL", "")

	_, err := Load(path)
	assert.ErrorContains(t, err, "database URL is required")
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/test"
`)

	t.Setenv("JWT_SECRET", "")

	_, err := Load(path)
	assert.ErrorContains(t, err, "JWT secret is required")
}
