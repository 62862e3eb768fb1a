// Package config loads settings for the symdiff front ends: the HTTP tool
// server, the interactive REPL and the Telegram bot.
//
// Settings are layered. The embedded defaults.yaml comes first, then an
// optional YAML file, then environment variables.
package config

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MaxFileSize bounds the size of a configuration file.
const MaxFileSize = 1 << 20

// Environment variables that override file settings.
const (
	EnvPort      = "SYMDIFF_PORT"
	EnvLogLevel  = "SYMDIFF_LOG_LEVEL"
	EnvLogFormat = "SYMDIFF_LOG_FORMAT"
	EnvBotToken  = "TELEGRAM_BOT_TOKEN"
	EnvHistory   = "SYMDIFF_HISTORY"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	REPL   REPLConfig   `yaml:"repl"`
	Bot    BotConfig    `yaml:"bot"`
}

// ServerConfig holds the HTTP tool server settings.
type ServerConfig struct {
	Port              string        `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	// MaxBodyBytes caps the size of a tool call request body.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// Addr is the listen address for the server.
func (s ServerConfig) Addr() string { return ":" + s.Port }

type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

type REPLConfig struct {
	Prompt string `yaml:"prompt"`
	// HistoryFile is where entered lines are kept between sessions. Empty
	// disables history persistence.
	HistoryFile string `yaml:"history_file"`
}

type BotConfig struct {
	Token string `yaml:"token"`
	// PollTimeout is the long polling timeout in seconds.
	PollTimeout int           `yaml:"poll_timeout"`
	MinBackoff  time.Duration `yaml:"min_backoff"`
	MaxBackoff  time.Duration `yaml:"max_backoff"`
}

// Default returns the embedded defaults.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return &cfg
}

// Load builds the configuration from the embedded defaults, the YAML file at
// path when path is not empty, and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := cfg.overlay(data); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlay decodes YAML over the current values; keys absent from data keep
// their defaults.
func (c *Config) overlay(data []byte) error {
	if len(data) > MaxFileSize {
		return fmt.Errorf("file exceeds maximum size (%d > %d)", len(data), MaxFileSize)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	c.Server.Port = get(EnvPort, c.Server.Port)
	c.Log.Level = get(EnvLogLevel, c.Log.Level)
	c.Log.Format = get(EnvLogFormat, c.Log.Format)
	c.Bot.Token = get(EnvBotToken, c.Bot.Token)
	c.REPL.HistoryFile = get(EnvHistory, c.REPL.HistoryFile)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("config: server.port %q is not a valid port", c.Server.Port)
	}
	for name, d := range map[string]time.Duration{
		"server.read_header_timeout": c.Server.ReadHeaderTimeout,
		"server.read_timeout":        c.Server.ReadTimeout,
		"server.write_timeout":       c.Server.WriteTimeout,
		"server.idle_timeout":        c.Server.IdleTimeout,
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
		"bot.min_backoff":            c.Bot.MinBackoff,
		"bot.max_backoff":            c.Bot.MaxBackoff,
	} {
		if d <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", name, d)
		}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server.max_body_bytes must be positive")
	}
	if c.Bot.MinBackoff > c.Bot.MaxBackoff {
		return fmt.Errorf("config: bot.min_backoff %s exceeds bot.max_backoff %s", c.Bot.MinBackoff, c.Bot.MaxBackoff)
	}
	if c.Bot.PollTimeout < 0 {
		return fmt.Errorf("config: bot.poll_timeout must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config: unknown log level %q", s)
}

// NewLogger builds a logger writing to w in the configured format. An
// unknown level falls back to info.
func NewLogger(c LogConfig, w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
