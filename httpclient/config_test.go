package httpclient

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.Name != "nap" {
		t.Errorf("expected default name 'nap', got %q", cfg.Name)
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Name: "github", Timeout: 10 * time.Second}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.Name != "github" {
		t.Errorf("expected name 'github', got %q", cfg.Name)
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	cfg := Config{Timeout: 10 * time.Second, Auth: BasicAuth("u", "p")}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfig_Validate_InvalidTimeout(t *testing.T) {
	cfg := Config{Timeout: -1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestConfig_Validate_InvalidAuth(t *testing.T) {
	cfg := Config{Timeout: time.Second, Auth: &AuthConfig{Type: "oauth"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown auth type")
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{Auth: &AuthConfig{Type: "oauth"}}); err == nil {
		t.Fatal("expected New to fail on invalid auth")
	}
}
