package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/socialchef/leftover/internal/errors"
	"gopkg.in/yaml.v3"
)

// DefaultOpenAIBaseURL is used when OPENAI_API_BASE is not set.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1/"

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	OpenAIKey     string
	OpenAIBaseURL string

	SessionSecret string

	RedisURL    string
	DatabaseURL string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	TestMode bool
	Session  SessionConfig
}

type SessionConfig struct {
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:            os.Getenv("OPENAI_API_BASE"),
		SessionSecret:            os.Getenv("SESSION_SECRET"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
	}
	cfg.TestMode, _ = strconv.ParseBool(os.Getenv("TEST_MODE"))

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		TestMode bool          `yaml:"test_mode"`
		Session  SessionConfig `yaml:"session"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.TestMode {
		c.TestMode = true
	}
	if yamlConfig.Session.CookieName != "" {
		c.Session.CookieName = yamlConfig.Session.CookieName
	}
	if yamlConfig.Session.TTL > 0 {
		c.Session.TTL = yamlConfig.Session.TTL
	}

	return nil
}

func (c *Config) SetDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.ServiceName == "" {
		c.ServiceName = "socialchef-leftover"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "1.0.0"
	}
	if c.Port == "" {
		c.Port = "8501"
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = DefaultOpenAIBaseURL
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "leftover_session"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 24 * time.Hour
	}
}

// OTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS ("k1=v1,k2=v2").
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers
}

func (c *Config) validate() error {
	if c.OpenAIKey == "" {
		return apperrors.NewConfigurationError("OPENAI_API_KEY is required", "MISSING_API_KEY", nil)
	}
	if c.Env == "production" && c.SessionSecret == "" {
		return apperrors.NewConfigurationError("SESSION_SECRET is required in production", "MISSING_SESSION_SECRET", nil)
	}
	return nil
}
