package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
env: dev
cache_ttl: 1m
club_api:
  base_url: "http://club.local/api/"
  timeout: 3s
redis_connection:
  addressredis: "localhost:6379"
  password: "redis_pass"
  db: 2
http_server:
  addresshttp: ":8081"
  timeouthttp: 30s
  idle_timeout: 90s
session:
  cookie_name: sid
  ttl: 1h
rate_limit:
  rps: 2
  burst: 4
afexam:
  author: "Иванов Иван"
  group: "101"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "http://club.local/api/", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.TimeoutAPI)
	assert.Equal(t, "localhost:6379", cfg.AddressRedis)
	assert.Equal(t, "redis_pass", cfg.Password)
	assert.Equal(t, 2, cfg.DB)
	assert.Equal(t, ":8081", cfg.AddressHTTP)
	assert.Equal(t, 30*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, 90*time.Second, cfg.IdleTimeout)
	assert.Equal(t, "sid", cfg.CookieName)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 2.0, cfg.RPS)
	assert.Equal(t, 4, cfg.Burst)
	assert.Equal(t, "Иванов Иван", cfg.Author)
	assert.Equal(t, "101", cfg.Group)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoad_DefaultValues(t *testing.T) {
	path := writeConfig(t, `
env: local
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.TimeoutAPI)
	assert.Equal(t, "localhost:8080", cfg.AddressHTTP)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "horseclub_session", cfg.CookieName)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5.0, cfg.RPS)
	assert.Equal(t, 10, cfg.Burst)
	assert.Equal(t, "231-322", cfg.Group)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
club_api:
  base_url: "http://from-file/api/"
`)
	t.Setenv("CLUB_API_BASE_URL", "http://from-env/api/")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/api/", cfg.BaseURL)
}
