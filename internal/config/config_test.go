package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symdiff/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvPort, config.EnvLogLevel, config.EnvLogFormat, config.EnvBotToken, config.EnvHistory} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 30, cfg.Bot.PollTimeout)
	assert.Equal(t, 15*time.Second, cfg.Bot.MaxBackoff)
	assert.NotEmpty(t, cfg.REPL.Prompt)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "symdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\nlog:\n  format: json\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep defaults")
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "symdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o600))
	t.Setenv(config.EnvPort, "7000")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvBotToken, "123:abc")
	t.Setenv(config.EnvHistory, "/tmp/symdiff_history")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, "/tmp/symdiff_history", cfg.REPL.HistoryFile)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [1, 2"), 0o600))
	_, err = config.Load(bad)
	assert.ErrorContains(t, err, "parsing YAML")

	big := filepath.Join(dir, "big.yaml")
	require.NoError(t, os.WriteFile(big, bytes.Repeat([]byte("#"), config.MaxFileSize+1), 0o600))
	_, err = config.Load(big)
	assert.ErrorContains(t, err, "maximum size")

	t.Setenv(config.EnvPort, "http")
	_, err = config.Load("")
	assert.ErrorContains(t, err, "server.port")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"port zero", func(c *config.Config) { c.Server.Port = "0" }, "server.port"},
		{"port too large", func(c *config.Config) { c.Server.Port = "70000" }, "server.port"},
		{"negative timeout", func(c *config.Config) { c.Server.ReadTimeout = -time.Second }, "server.read_timeout"},
		{"body limit", func(c *config.Config) { c.Server.MaxBodyBytes = 0 }, "max_body_bytes"},
		{"backoff order", func(c *config.Config) { c.Bot.MinBackoff = time.Minute }, "min_backoff"},
		{"poll timeout", func(c *config.Config) { c.Bot.PollTimeout = -1 }, "poll_timeout"},
		{"level", func(c *config.Config) { c.Log.Level = "loud" }, "log level"},
		{"format", func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := config.Default()
			c.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), c.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := config.NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	log.Info("hidden")
	log.Warn("shown", "expr", "x^2")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "x^2", rec["expr"])

	buf.Reset()
	config.NewLogger(config.LogConfig{Level: "debug", Format: "text"}, &buf).Debug("trace", "pos", 3)
	assert.Contains(t, buf.String(), "msg=trace pos=3")
}
