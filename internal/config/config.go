package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Logging configuration
	Log LogConfig `toml:"log"`

	// Suggestion provider configuration
	LLM LLMConfig `toml:"llm"`

	// PokeAPI client configuration
	PokeAPI PokeAPIConfig `toml:"pokeapi"`

	// Move catalog source
	Catalog CatalogConfig `toml:"catalog"`

	// Party generation tuning
	Party PartyConfig `toml:"party"`
}

// ServerConfig contains REST server settings.
type ServerConfig struct {
	Address        string   `toml:"address"`         // Listen address (e.g., ":8080")
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins
	ReadTimeout    string   `toml:"read_timeout"`    // e.g., "15s"
	WriteTimeout   string   `toml:"write_timeout"`   // must cover a full generation
	EnableEvents   bool     `toml:"enable_events"`   // Serve /ws progress events
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json or console
}

// LLMConfig selects and tunes the suggestion provider.
type LLMConfig struct {
	Provider          string  `toml:"provider"`            // anthropic, openai, ollama, gemini
	Model             string  `toml:"model"`               // empty uses the provider default
	BaseURL           string  `toml:"base_url"`            // empty uses the provider default
	APIKeyEnv         string  `toml:"api_key_env"`         // environment variable holding the key
	Timeout           string  `toml:"timeout"`             // per request, e.g., "60s"
	RequestsPerMinute float64 `toml:"requests_per_minute"` // local suggestion budget (0 = unlimited)
	Burst             int     `toml:"burst"`
}

// PokeAPIConfig contains species/move data provider settings.
type PokeAPIConfig struct {
	BaseURL    string `toml:"base_url"`
	RateLimit  string `toml:"rate_limit"` // minimum delay between requests
	Timeout    string `toml:"timeout"`
	MaxRetries int    `toml:"max_retries"`
	Language   string `toml:"language"` // en or ja
}

// CatalogConfig points at the move and species lists.
type CatalogConfig struct {
	Path        string `toml:"path"`         // JSON move list
	SpeciesPath string `toml:"species_path"` // JSON species list for name search
	SQLitePath  string `toml:"sqlite_path"`  // PokeAPI sqlite dump, used for either list when its path is empty
	Watch       bool   `toml:"watch"`        // Reload Path when it changes
}

// PartyConfig tunes the generator and move balancer.
type PartyConfig struct {
	SampleSize    int   `toml:"sample_size"`    // learnable moves looked up per member
	LoadoutSize   int   `toml:"loadout_size"`   // moves per member
	Buffer        int   `toml:"buffer"`         // extra candidates requested
	MaxCandidates int   `toml:"max_candidates"` // cap on candidates requested
	Seed          int64 `toml:"seed"`           // 0 seeds from the clock
}

// Providers lists the accepted llm.provider values.
var Providers = []string{"anthropic", "openai", "ollama", "gemini"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:        ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			ReadTimeout:    "15s",
			WriteTimeout:   "120s",
			EnableEvents:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		LLM: LLMConfig{
			Provider:          "anthropic",
			APIKeyEnv:         "ANTHROPIC_API_KEY",
			Timeout:           "60s",
			RequestsPerMinute: 10,
			Burst:             3,
		},
		PokeAPI: PokeAPIConfig{
			BaseURL:    "https://pokeapi.co/api/v2",
			RateLimit:  "50ms",
			Timeout:    "30s",
			MaxRetries: 3,
			Language:   "en",
		},
		Catalog: CatalogConfig{
			Path:  "",
			Watch: false,
		},
		Party: PartyConfig{
			SampleSize:    30,
			LoadoutSize:   4,
			Buffer:        3,
			MaxCandidates: 10,
		},
	}
}

// DefaultPath returns ~/.pokeparty/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pokeparty", "config.toml"), nil
}

// Load loads the configuration from the default path. Returns defaults if the file doesn't exist.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from path, layered over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	durations := map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"llm.timeout":          c.LLM.Timeout,
		"pokeapi.rate_limit":   c.PokeAPI.RateLimit,
		"pokeapi.timeout":      c.PokeAPI.Timeout,
	}
	for key, v := range durations {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	if !validProvider(c.LLM.Provider) {
		return fmt.Errorf("unknown llm provider %q (want one of %s)", c.LLM.Provider, strings.Join(Providers, ", "))
	}
	if c.LLM.RequestsPerMinute < 0 {
		return fmt.Errorf("llm requests per minute cannot be negative: %v", c.LLM.RequestsPerMinute)
	}

	if c.PokeAPI.Language != "en" && c.PokeAPI.Language != "ja" {
		return fmt.Errorf("unsupported language %q", c.PokeAPI.Language)
	}
	if c.PokeAPI.MaxRetries < 0 {
		return fmt.Errorf("pokeapi max retries cannot be negative: %d", c.PokeAPI.MaxRetries)
	}

	if c.Party.SampleSize < 1 || c.Party.LoadoutSize < 1 {
		return fmt.Errorf("party sample size and loadout size must be positive")
	}
	if c.Party.Buffer < 0 || c.Party.MaxCandidates < 1 {
		return fmt.Errorf("invalid party candidate limits: buffer %d, max %d", c.Party.Buffer, c.Party.MaxCandidates)
	}
	return nil
}

func validProvider(p string) bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// APIKey reads the provider key from the configured environment variable.
func (c LLMConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// GetTimeout returns the provider timeout as a duration.
func (c LLMConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// GetRateLimit returns the PokeAPI request spacing as a duration.
func (c PokeAPIConfig) GetRateLimit() time.Duration {
	d, _ := time.ParseDuration(c.RateLimit)
	return d
}

// GetTimeout returns the PokeAPI request timeout as a duration.
func (c PokeAPIConfig) GetTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// GetReadTimeout returns the server read timeout as a duration.
func (c ServerConfig) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c ServerConfig) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}
