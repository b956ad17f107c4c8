package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider != ProviderOpenAI {
		t.Errorf("provider = %q, want %q", cfg.Provider, ProviderOpenAI)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.Model)
	}
	if cfg.MaxConversationAge != 24*time.Hour {
		t.Errorf("max_conversation_age = %v, want 24h", cfg.MaxConversationAge)
	}
	if cfg.FAQThreshold != 0.6 {
		t.Errorf("faq_threshold = %v, want 0.6", cfg.FAQThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".supportdesk.yml")
	content := "provider: ollama\nmodel: llama3\nport: 9090\nsupport:\n  email: help@example.com\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOllama {
		t.Errorf("provider = %q, want ollama", cfg.Provider)
	}
	if cfg.Model != "llama3" {
		t.Errorf("model = %q, want llama3", cfg.Model)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
	if cfg.Support.Email != "help@example.com" {
		t.Errorf("support.email = %q, want help@example.com", cfg.Support.Email)
	}
	// Untouched fields keep defaults.
	if cfg.HistoryWindow != 6 {
		t.Errorf("history_window = %d, want 6", cfg.HistoryWindow)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SUPPORTDESK_MODEL", "gpt-4o-mini")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", cfg.Model)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"missing provider", func(c *Config) { c.Provider = "" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "carrier-pigeon" }, true},
		{"missing model", func(c *Config) { c.Model = "" }, true},
		{"bad port", func(c *Config) { c.Port = -1 }, true},
		{"zero max age", func(c *Config) { c.MaxConversationAge = 0 }, true},
		{"threshold above one", func(c *Config) { c.FAQThreshold = 1.5 }, true},
		{"negative rpm", func(c *Config) { c.RequestsPerMinute = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".supportdesk.yml")

	cfg := DefaultConfig()
	cfg.Model = "gpt-4o-mini"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", loaded.Model)
	}
}
