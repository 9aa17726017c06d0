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

		if config.Remote.BaseURL != "http://127.0.0.1:5000" {
			t.Errorf("expected remote base URL http://127.0.0.1:5000, got %s", config.Remote.BaseURL)
		}
		if config.Remote.Retries != 1 {
			t.Errorf("expected 1 retry, got %d", config.Remote.Retries)
		}
		if config.View.PageSize != 6 {
			t.Errorf("expected page size 6, got %d", config.View.PageSize)
		}
		if config.View.Sort != "newest" {
			t.Errorf("expected sort newest, got %s", config.View.Sort)
		}
		if config.Database.Path != "./emx.db" {
			t.Errorf("expected database path ./emx.db, got %s", config.Database.Path)
		}
		if config.Server.Addr() != "127.0.0.1:5000" {
			t.Errorf("expected server addr 127.0.0.1:5000, got %s", config.Server.Addr())
		}
		if config.Remote.Timeout() != 15*time.Second {
			t.Errorf("expected 15s timeout, got %v", config.Remote.Timeout())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.View.PageSize != DefaultConfig().View.PageSize {
			t.Errorf("created config page size doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[remote]
base_url = "http://roster.internal:8080"
retries = 2

[view]
page_size = 10
sort = "oldest"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Remote.BaseURL != "http://roster.internal:8080" {
			t.Errorf("expected custom base URL, got %s", config.Remote.BaseURL)
		}
		if config.View.PageSize != 10 {
			t.Errorf("expected page size 10, got %d", config.View.PageSize)
		}
		if config.View.Sort != "oldest" {
			t.Errorf("expected sort oldest, got %s", config.View.Sort)
		}
		if config.Server.Port != 5000 {
			t.Errorf("expected missing keys to keep defaults, got port %d", config.Server.Port)
		}
	})

	t.Run("LoadConfig Rejects Invalid Values", func(t *testing.T) {
		tc := []struct {
			name string
			body string
		}{
			{name: "zero page size", body: "[view]\npage_size = 0\n"},
			{name: "unknown sort", body: "[view]\nsort = \"alphabetical\"\n"},
			{name: "negative retries", body: "[remote]\nretries = -1\n"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(configPath, []byte(tt.body), 0644); err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}

				_, err := LoadConfig(configPath)
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("LoadConfigOrDefault Missing File", func(t *testing.T) {
		config, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("expected defaults, got error %v", err)
		}
		if config.View.PageSize != 6 {
			t.Errorf("expected default page size, got %d", config.View.PageSize)
		}
	})
}
