package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	API           APIConfig
	Client        ClientConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Session       SessionConfig
}

type APIConfig struct {
	// BaseURL is the remote portal service root, without a trailing slash
	BaseURL        string
	TimeoutSeconds int
	// RateLimitRPS caps outbound requests per second; 0 disables the limiter
	RateLimitRPS   float64
	RateLimitBurst int
}

type ClientConfig struct {
	AppEnv string
	// DemoMode selects the in-process local data source instead of the
	// remote service. Resolved once at startup.
	DemoMode bool
	// StateFile is where the persisted session (credential + identity) lives
	StateFile string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceVersion   string
}

type SessionConfig struct {
	// JWTSecret / JWTIssuer configure the stub server's token manager;
	// the client itself never signs tokens
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("API_TIMEOUT_SECONDS", 30)
	v.SetDefault("API_RATE_LIMIT_RPS", 10.0)
	v.SetDefault("API_RATE_LIMIT_BURST", 5)
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("DEMO_MODE", false)
	v.SetDefault("STATE_FILE", defaultStateFile())
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "hackcareer-client")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("JWT_ISSUER", "hackcareer-portal")
	v.SetDefault("SESSION_TTL_HOURS", 24)

	v.AutomaticEnv()

	cfg := &Config{
		API: APIConfig{
			BaseURL:        trimTrailingSlash(v.GetString("API_BASE_URL")),
			TimeoutSeconds: v.GetInt("API_TIMEOUT_SECONDS"),
			RateLimitRPS:   v.GetFloat64("API_RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("API_RATE_LIMIT_BURST"),
		},
		Client: ClientConfig{
			AppEnv:    v.GetString("APP_ENV"),
			DemoMode:  v.GetBool("DEMO_MODE"),
			StateFile: v.GetString("STATE_FILE"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
		},
		Session: SessionConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the loaded configuration is usable
func (c *Config) Validate() error {
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive")
	}
	if c.Client.StateFile == "" {
		return fmt.Errorf("STATE_FILE must not be empty")
	}
	return nil
}

// IsDevelopment returns true when running in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Client.AppEnv == "development"
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hackcareer_state.json"
	}
	return filepath.Join(home, ".hackcareer", "state.json")
}

func trimTrailingSlash(url string) string {
	for len(url) > 0 && url[len(url)-1] == '/' {
		url = url[:len(url)-1]
	}
	return url
}
