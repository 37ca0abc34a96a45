package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the steal-the-pile front-ends.
type Config struct {
	// DeckSize is the default answer to the deck size prompt.
	DeckSize int `yaml:"deck_size"`
	// LogDir receives one log file per session.
	LogDir string `yaml:"log_dir"`
	// LogPattern names session logs; its single %d is the session number.
	LogPattern string `yaml:"log_pattern"`
	// LogLevel is the operational log level: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// Seed makes shuffles reproducible; 0 uses cryptographic randomness.
	Seed int64 `yaml:"seed"`
}

func Default() Config {
	return Config{
		DeckSize:   52,
		LogDir:     ".",
		LogPattern: "session_%d.log",
		LogLevel:   "info",
	}
}

// Load applies, in order: defaults, the YAML file at path (skipped when path
// is empty or the file does not exist), STEALPILE_* environment variables.
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &c); err != nil {
				return Config{}, fmt.Errorf("parse config YAML: %w", err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	c.LogDir = envOr("STEALPILE_LOG_DIR", c.LogDir)
	c.LogLevel = envOr("STEALPILE_LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("STEALPILE_DECK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid STEALPILE_DECK_SIZE %q: %w", v, err)
		}
		c.DeckSize = n
	}
	if v := os.Getenv("STEALPILE_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid STEALPILE_SEED %q: %w", v, err)
		}
		c.Seed = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.DeckSize <= 0 {
		return fmt.Errorf("deck_size must be positive, got %d", c.DeckSize)
	}
	if c.LogDir == "" {
		return fmt.Errorf("log_dir must not be empty")
	}
	if strings.Count(c.LogPattern, "%d") != 1 || strings.Count(c.LogPattern, "%") != 1 {
		return fmt.Errorf("log_pattern must contain exactly one %%d, got %q", c.LogPattern)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SessionLogName is the file name of the log of the given session.
func (c Config) SessionLogName(session int) string {
	return fmt.Sprintf(c.LogPattern, session)
}

func (c Config) Level() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}
