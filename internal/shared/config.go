package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// PlaceholderSecret is the session secret shipped in the example config. It must be replaced before serving.
const PlaceholderSecret = "change-me-to-a-long-random-string"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api" envPrefix:"API_"`
	Session  SessionConfig  `toml:"session" envPrefix:"SESSION_"`
	Database DatabaseConfig `toml:"database" envPrefix:"DB_"`
	Server   ServerConfig   `toml:"server" envPrefix:"SERVER_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
	Search   SearchConfig   `toml:"search" envPrefix:"SEARCH_"`
}

// APIConfig contains settings for the catalog backend client.
type APIConfig struct {
	BaseURL   string   `toml:"base_url" env:"URL"`
	Timeout   Duration `toml:"timeout" env:"TIMEOUT"`
	RateLimit float64  `toml:"rate_limit" env:"RATE_LIMIT"`
	Burst     int      `toml:"burst" env:"BURST"`
}

// SessionConfig contains credential store and redirect settings.
type SessionConfig struct {
	LoginPath  string `toml:"login_path" env:"LOGIN_PATH"`
	HomePath   string `toml:"home_path" env:"HOME_PATH"`
	CookieName string `toml:"cookie_name" env:"COOKIE_NAME"`
	Secret     string `toml:"secret" env:"SECRET"`
	MaxAge     int    `toml:"max_age" env:"MAX_AGE"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"PATH"`
	MaxOpenConns int    `toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns int    `toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host" env:"HOST"`
	Port int    `toml:"port" env:"PORT"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level   string `toml:"level" env:"LEVEL"`
	TUIFile string `toml:"tui_file" env:"TUI_FILE"`
}

// SearchConfig contains search display settings.
type SearchConfig struct {
	DisplaySize int `toml:"display_size" env:"DISPLAY_SIZE"`
}

// Duration wraps [time.Duration] so it can be written as a string ("30s") in TOML and environment variables.
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", ErrInvalidConfig, string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Addr returns the host:port pair the web front end listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides config values with SONGHUB_* environment variables (e.g. SONGHUB_API_URL, SONGHUB_DB_PATH).
func ApplyEnv(config *Config) error {
	return ApplyEnvFrom(config, nil)
}

// ApplyEnvFrom is [ApplyEnv] reading from the given environment map instead of the process environment.
func ApplyEnvFrom(config *Config, environment map[string]string) error {
	opts := env.Options{Prefix: "SONGHUB_"}
	if environment != nil {
		opts.Environment = environment
	}

	if err := env.ParseWithOptions(config, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ResolveConfig loads the config at path when it exists, falls back to defaults otherwise, then applies environment overrides.
func ResolveConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
