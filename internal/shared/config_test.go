package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://127.0.0.1:8000" {
			t.Errorf("expected api base URL http://127.0.0.1:8000, got %s", config.API.BaseURL)
		}
		if config.API.Timeout.Duration != 0 {
			t.Errorf("expected no api timeout by default, got %v", config.API.Timeout.Duration)
		}
		if config.Session.LoginPath != "/login" {
			t.Errorf("expected login path /login, got %s", config.Session.LoginPath)
		}
		if config.Database.Path != "./songhub.db" {
			t.Errorf("expected database path ./songhub.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}
		if config.Search.DisplaySize != 3 {
			t.Errorf("expected display size 3, got %d", config.Search.DisplaySize)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[api]
base_url = "http://catalog.internal:9000"
timeout = "15s"

[database]
path = "/custom/path.db"

[server]
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "http://catalog.internal:9000" {
			t.Errorf("expected base URL override, got %s", config.API.BaseURL)
		}
		if config.API.Timeout.Duration != 15*time.Second {
			t.Errorf("expected 15s timeout, got %v", config.API.Timeout.Duration)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
		if config.Session.LoginPath != "/login" {
			t.Errorf("expected unspecified keys to keep defaults, got login path %q", config.Session.LoginPath)
		}
	})

	t.Run("LoadConfig With Invalid Duration", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api]\ntimeout = \"soon\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for invalid duration")
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("ApplyEnvFrom", func(t *testing.T) {
		config := DefaultConfig()
		err := ApplyEnvFrom(config, map[string]string{
			"SONGHUB_API_URL":        "http://override:1234",
			"SONGHUB_API_TIMEOUT":    "2s",
			"SONGHUB_DB_PATH":        ":memory:",
			"SONGHUB_SESSION_SECRET": "s3cret",
			"SONGHUB_LOG_LEVEL":      "debug",
			"SONGHUB_SERVER_PORT":    "4000",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.API.BaseURL != "http://override:1234" {
			t.Errorf("expected env base URL, got %s", config.API.BaseURL)
		}
		if config.API.Timeout.Duration != 2*time.Second {
			t.Errorf("expected env timeout, got %v", config.API.Timeout.Duration)
		}
		if config.Database.Path != ":memory:" {
			t.Errorf("expected env db path, got %s", config.Database.Path)
		}
		if config.Session.Secret != "s3cret" {
			t.Errorf("expected env secret, got %s", config.Session.Secret)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected env log level, got %s", config.Log.Level)
		}
		if config.Server.Port != 4000 {
			t.Errorf("expected env port, got %d", config.Server.Port)
		}
		if config.Session.LoginPath != "/login" {
			t.Errorf("expected untouched values to remain, got %s", config.Session.LoginPath)
		}
	})

	t.Run("ApplyEnvFrom Invalid Value", func(t *testing.T) {
		config := DefaultConfig()
		err := ApplyEnvFrom(config, map[string]string{"SONGHUB_SERVER_PORT": "not-a-port"})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ResolveConfig Without File", func(t *testing.T) {
		config, err := ResolveConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Server.Addr() == "" {
			t.Error("expected a server address")
		}
	})
}
