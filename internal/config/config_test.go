package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Errorf("expected default data_dir %q, got %q", "data", cfg.DataDir)
	}
	if cfg.TokenTTLHours != 168 {
		t.Errorf("expected default token_ttl_hours 168, got %d", cfg.TokenTTLHours)
	}
	if cfg.DefaultLanguage != "English" {
		t.Errorf("expected default language English, got %q", cfg.DefaultLanguage)
	}
	if !cfg.Translate.Enabled {
		t.Error("expected translation enabled by default")
	}
	if cfg.Translate.Endpoint != DefaultTranslateEndpoint {
		t.Errorf("unexpected default translate endpoint %q", cfg.Translate.Endpoint)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wellbot.yml")

	original := DefaultConfig()
	original.Port = 9090
	original.DataDir = "var/wellbot"
	original.JWTSecret = "test-secret"
	original.AdminEmail = "admin@example.com"
	original.AdminPassword = "hunter22hunter22"
	original.Translate.Enabled = false

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.JWTSecret != original.JWTSecret {
		t.Errorf("jwt_secret: got %q, want %q", loaded.JWTSecret, original.JWTSecret)
	}
	if loaded.AdminEmail != original.AdminEmail {
		t.Errorf("admin_email: got %q, want %q", loaded.AdminEmail, original.AdminEmail)
	}
	if loaded.Translate.Enabled {
		t.Error("expected translation disabled after round trip")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestEnvOverride(t *testing.T) {
	os.Setenv("WELLBOT_JWT_SECRET", "from-env")
	os.Setenv("WELLBOT_PORT", "1234")
	defer os.Unsetenv("WELLBOT_JWT_SECRET")
	defer os.Unsetenv("WELLBOT_PORT")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("expected jwt_secret from env, got %q", cfg.JWTSecret)
	}
	if cfg.Port != 1234 {
		t.Errorf("expected port from env, got %d", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing jwt_secret")
	}

	cfg.JWTSecret = "s"
	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPassword = "pw"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got: %v", err)
	}

	cfg.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}
	cfg.Port = 8080

	cfg.Translate.TimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero translate timeout")
	}
}
