// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config carries everything tunable outside the command line. The threat
// intelligence API key is optional; without it that source silently
// contributes nothing.
type Config struct {
	HTTPTimeout  time.Duration `env:"TROVE_HTTP_TIMEOUT" env-default:"30s"`
	MaxRedirects int           `env:"TROVE_MAX_REDIRECTS" env-default:"10"`
	TLSProfile   string        `env:"TROVE_TLS_PROFILE" env-default:"chrome"`
	UserAgents   []string      `env:"TROVE_USER_AGENTS" env-separator:","`
	Proxies      []string      `env:"TROVE_PROXIES" env-separator:","`
	ProxyFile    string        `env:"TROVE_PROXY_FILE"`
	MetricsAddr  string        `env:"TROVE_METRICS_ADDR"`
	VTAPIKey     string        `env:"VT_API_KEY"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
