package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for meetgate. It is loaded once in main and
// passed by reference into the services that need it.
type Config struct {
	Server  ServerConfig
	LiveKit LiveKitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
	RequireAuth bool
	StaticDir   string
}

// LiveKitConfig holds LiveKit server credentials and token policy.
type LiveKitConfig struct {
	URL       string
	APIKey    string
	APISecret string
	// PublicURL is the WebSocket URL handed to browsers. Defaults to URL,
	// which is only correct when clients can reach the same address.
	PublicURL string
	TokenTTL  time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"*"},
			RequireAuth: false,
			StaticDir:   "",
		},
		LiveKit: LiveKitConfig{
			URL:       "ws://localhost:7880",
			APIKey:    "",
			APISecret: "",
			PublicURL: "",
			TokenTTL:  6 * time.Hour,
		},
	}
}

func envString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func envInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*target = i
		}
	}
}

func envBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

func envDuration(key string, target *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*target = d
		}
	}
}

// envStringSlice loads a comma-separated environment variable into a string slice
func envStringSlice(key string, target *[]string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			*target = result
		}
	}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	envString("MEETGATE_SERVER_HOST", &cfg.Server.Host)
	envInt("MEETGATE_SERVER_PORT", &cfg.Server.Port)
	envStringSlice("MEETGATE_CORS_ORIGINS", &cfg.Server.CORSOrigins)
	envBool("MEETGATE_REQUIRE_AUTH", &cfg.Server.RequireAuth)
	envString("MEETGATE_STATIC_DIR", &cfg.Server.StaticDir)

	envString("LIVEKIT_URL", &cfg.LiveKit.URL)
	envString("LIVEKIT_API_KEY", &cfg.LiveKit.APIKey)
	envString("LIVEKIT_API_SECRET", &cfg.LiveKit.APISecret)
	envString("LIVEKIT_PUBLIC_URL", &cfg.LiveKit.PublicURL)
	envDuration("MEETGATE_TOKEN_TTL", &cfg.LiveKit.TokenTTL)

	if cfg.LiveKit.PublicURL == "" {
		cfg.LiveKit.PublicURL = cfg.LiveKit.URL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsLiveKitConfigured returns true if LiveKit credentials are fully set.
func (c *Config) IsLiveKitConfigured() bool {
	return c.LiveKit.URL != "" && c.LiveKit.APIKey != "" && c.LiveKit.APISecret != ""
}

// isValidURL validates that a URL has proper format
func isValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server port must be between 1 and 65535")
	}

	if c.LiveKit.URL == "" {
		errs = append(errs, "LiveKit URL is required")
	} else if !isValidURL(c.LiveKit.URL) {
		errs = append(errs, "LiveKit URL must be a valid URL")
	}
	if c.LiveKit.PublicURL != "" && !isValidURL(c.LiveKit.PublicURL) {
		errs = append(errs, "LiveKit public URL must be a valid URL")
	}
	if (c.LiveKit.APIKey == "") != (c.LiveKit.APISecret == "") {
		errs = append(errs, "LiveKit API key and secret must be set together")
	}
	if c.LiveKit.TokenTTL <= 0 {
		errs = append(errs, "token TTL must be positive")
	}

	if c.Server.StaticDir != "" {
		if info, err := os.Stat(c.Server.StaticDir); err != nil || !info.IsDir() {
			errs = append(errs, fmt.Sprintf("static dir %s is not a directory", c.Server.StaticDir))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}
