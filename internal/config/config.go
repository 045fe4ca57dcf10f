package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL  = "http://localhost:5000"
	DefaultTimeout  = 15 * time.Second
	DefaultLogFile  = "chat-widget.log"
	DefaultLogLevel = "info"
)

// Config holds the widget client configuration.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	APIToken       string `yaml:"api_token"`
	ParamPrefix    string `yaml:"param_prefix"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`

	// BaseURLFromEnv reports whether WIDGET_BASE_URL supplied BaseURL.
	BaseURLFromEnv bool `yaml:"-"`
}

// Timeout is the per-request HTTP timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func defaults() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: int(DefaultTimeout / time.Second),
		LogFile:        DefaultLogFile,
		LogLevel:       DefaultLogLevel,
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing precedence. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if v := getEnvDefault("WIDGET_BASE_URL", ""); v != "" {
		cfg.BaseURL = v
		cfg.BaseURLFromEnv = true
	}
	cfg.APIToken = getEnvDefault("WIDGET_API_TOKEN", cfg.APIToken)
	cfg.ParamPrefix = getEnvDefault("WIDGET_PARAM_PREFIX", cfg.ParamPrefix)
	cfg.TimeoutSeconds = getEnvIntDefault("WIDGET_TIMEOUT_SECONDS", cfg.TimeoutSeconds)
	cfg.LogFile = getEnvDefault("WIDGET_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnvDefault("WIDGET_LOG_LEVEL", cfg.LogLevel)
	return cfg, nil
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
