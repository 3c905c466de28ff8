package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Endpoint != "https://www.wikidata.org/w/api.php" {
		t.Errorf("expected default endpoint https://www.wikidata.org/w/api.php, got %s", cfg.API.Endpoint)
	}
	if cfg.API.UserAgent == "" {
		t.Error("expected a default user agent")
	}
	if cfg.Edit.Retries != 5 {
		t.Errorf("expected default retries 5, got %d", cfg.Edit.Retries)
	}
	if cfg.Edit.MaxLagWait != 5*time.Second {
		t.Errorf("expected default maxlag wait 5s, got %v", cfg.Edit.MaxLagWait)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing endpoint",
			modify:  func(c *Config) { c.API.Endpoint = "" },
			wantErr: true,
		},
		{
			name:    "endpoint without scheme",
			modify:  func(c *Config) { c.API.Endpoint = "www.wikidata.org/w/api.php" },
			wantErr: true,
		},
		{
			name:    "missing user agent",
			modify:  func(c *Config) { c.API.UserAgent = "" },
			wantErr: true,
		},
		{
			name:    "zero retries",
			modify:  func(c *Config) { c.Edit.Retries = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
api:
  endpoint: "https://test.wikidata.org/w/api.php"
  user_agent: "test-agent/1.0"
  timeout: 30s
edit:
  retries: 3
  maxlag_wait: 10s
  delay: 2s
  blocklist_title: "User:TestBot/Blocklist"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.API.Endpoint != "https://test.wikidata.org/w/api.php" {
		t.Errorf("expected endpoint https://test.wikidata.org/w/api.php, got %s", cfg.API.Endpoint)
	}
	if cfg.API.UserAgent != "test-agent/1.0" {
		t.Errorf("expected user agent test-agent/1.0, got %s", cfg.API.UserAgent)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.API.Timeout)
	}
	if cfg.Edit.Retries != 3 {
		t.Errorf("expected retries 3, got %d", cfg.Edit.Retries)
	}
	if cfg.Edit.MaxLagWait != 10*time.Second {
		t.Errorf("expected maxlag wait 10s, got %v", cfg.Edit.MaxLagWait)
	}
	if cfg.Edit.Delay != 2*time.Second {
		t.Errorf("expected delay 2s, got %v", cfg.Edit.Delay)
	}
	if cfg.Edit.BlocklistTitle != "User:TestBot/Blocklist" {
		t.Errorf("expected blocklist title User:TestBot/Blocklist, got %s", cfg.Edit.BlocklistTitle)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		API: APIConfig{
			Endpoint: "https://override.example/w/api.php",
		},
		Edit: EditConfig{
			BlocklistTitle: "User:Override/Blocklist",
		},
	}

	base.Merge(override)

	if base.API.Endpoint != "https://override.example/w/api.php" {
		t.Errorf("expected endpoint https://override.example/w/api.php, got %s", base.API.Endpoint)
	}
	// User agent should remain from base since override didn't set it
	if base.API.UserAgent == "" {
		t.Error("expected user agent to remain default")
	}
	if base.Edit.Retries != 5 {
		t.Errorf("expected retries to remain default, got %d", base.Edit.Retries)
	}
	if base.Edit.BlocklistTitle != "User:Override/Blocklist" {
		t.Errorf("expected blocklist title User:Override/Blocklist, got %s", base.Edit.BlocklistTitle)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Edit.BlocklistTitle = "User:SavedBot/Blocklist"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Edit.BlocklistTitle != "User:SavedBot/Blocklist" {
		t.Errorf("expected blocklist title User:SavedBot/Blocklist, got %s", loaded.Edit.BlocklistTitle)
	}
}
