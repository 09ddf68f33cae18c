// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vitormoschetta/captionai/internal/gemini"
)

// Config is read once at startup and never mutated.
type Config struct {
	APIKey     string
	Port       string
	Model      string
	Backend    string
	BaseURL    string
	PublicDir  string
	MCPEnabled bool
	LogLevel   string
	LogFormat  string
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		slog.Warn("Warning: .env file not found or could not be loaded", "error", err)
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		APIKey:     strings.TrimSpace(v.GetString("GOOGLE_API_KEY")),
		Port:       strings.TrimSpace(v.GetString("PORT")),
		Model:      v.GetString("GEMINI_MODEL"),
		Backend:    strings.ToLower(v.GetString("GEMINI_BACKEND")),
		BaseURL:    v.GetString("GEMINI_BASE_URL"),
		PublicDir:  v.GetString("PUBLIC_DIR"),
		MCPEnabled: v.GetBool("MCP_ENABLED"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		LogFormat:  v.GetString("LOG_FORMAT"),
	}

	switch cfg.Backend {
	case gemini.BackendREST, gemini.BackendGenAI, gemini.BackendADK:
	default:
		return nil, fmt.Errorf("invalid GEMINI_BACKEND %q", cfg.Backend)
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("GEMINI_MODEL", gemini.DefaultModel)
	v.SetDefault("GEMINI_BACKEND", gemini.BackendREST)
	v.SetDefault("GEMINI_BASE_URL", gemini.DefaultBaseURL)
	v.SetDefault("PUBLIC_DIR", "")
	v.SetDefault("MCP_ENABLED", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}
