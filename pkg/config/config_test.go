package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "http://localhost:5000", c.Backend.BaseURL)
	assert.Equal(t, 30*time.Minute, c.Server.SessionIdleTTL)
	assert.Zero(t, c.Backend.Timeout)
	assert.Equal(t, 1.5, c.Derive.DebtToEquityThreshold)
	assert.True(t, c.Derive.GrowthAsFraction)
	assert.False(t, c.Derive.MarginAsFraction)
	assert.Equal(t, 30, c.Derive.ChartDays)
	assert.Equal(t, "memory", c.Cache.Backend)
	assert.False(t, c.KafkaEnabled())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "development", c.Environment)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  locale: th
backend:
  base_url: http://backend:8000
  timeout: 3s
derive:
  margin_as_fraction: true
  news_limit: 5
kafka:
  brokers: [k1:9092, k2:9092]
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "th", c.Server.Locale)
	assert.Equal(t, "http://backend:8000", c.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, c.Backend.Timeout)
	assert.True(t, c.Derive.MarginAsFraction)
	assert.Equal(t, 5, c.Derive.NewsLimit)
	assert.Equal(t, 30, c.Derive.ChartDays, "untouched keys keep defaults")
	assert.True(t, c.KafkaEnabled())
	assert.Equal(t, "stocklens.snapshots", c.Kafka.Topic)
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://env:5000")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("KAFKA_TOPIC", "views")

	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://env:5000", c.Backend.BaseURL)
	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "redis", c.Cache.Backend)
	assert.Equal(t, "redis:6379", c.Cache.Addr)
	assert.Equal(t, []string{"a:9092", "b:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "views", c.Kafka.Topic)
}

func TestLoadWithEnv_BadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := map[string]string{
		"bad url":         "backend:\n  base_url: not a url\n",
		"bad port":        "server:\n  port: 70000\n",
		"bad locale":      "server:\n  locale: fr\n",
		"bad level":       "log:\n  level: loud\n",
		"bad backend":     "cache:\n  backend: memcached\n",
		"redis no addr":   "cache:\n  backend: redis\n  addr: \"\"\n",
		"kafka no topic":  "kafka:\n  brokers: [k:9092]\n  topic: \"\"\n",
		"chart too short": "derive:\n  chart_days: 1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
