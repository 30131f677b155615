package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":   7 * 24 * time.Hour,
		"15m":  15 * time.Minute,
		"1h":   time.Hour,
		"30s":  30 * time.Second,
		" 2d ": 48 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "xd", "-1d", "abc", "-5m"} {
		_, err := ParseDuration(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := []byte(`
server:
  port: 9000
  env: production
database:
  url: postgres://from-yaml
jwt:
  access_secret: yaml-access-secret
  refresh_secret: yaml-refresh-secret
`)
	require.NoError(t, os.WriteFile(path, yamlBody, 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DATABASE_URL", "postgres://from-env")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "3d")
	t.Setenv("CORS_ORIGIN", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://from-env", cfg.Database.DSN)
	assert.Equal(t, 72*time.Hour, cfg.RefreshTTL())
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.Origins)
	assert.False(t, cfg.RateLimit.Disabled)
	assert.False(t, cfg.SMSConfigured())
	assert.False(t, cfg.GoogleConfigured())
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("ACCESS_TOKEN_SECRET", "short")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_SECRET is too short")
	assert.Contains(t, err.Error(), "REFRESH_TOKEN_SECRET is too short")
}

func TestValidate_StorageAndRedis(t *testing.T) {
	cfg := &Config{}
	cfg.Database.DSN = "postgres://x"
	cfg.JWT.AccessSecret = "0123456789"
	cfg.JWT.RefreshSecret = "0123456789"
	applyDefaults(cfg)

	cfg.Storage.Type = "s3"
	cfg.RateLimit.Store = "redis"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET")
	assert.Contains(t, err.Error(), "REDIS_URL")
}
