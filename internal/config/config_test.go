package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 0},
		Database: DatabaseConfig{Driver: "valkey"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_InvalidDriver(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "postgres"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `database.driver must be "valkey" or "redis", got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_LLMKeyWithoutModel(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "valkey"},
		LLM:      LLMConfig{APIKey: "test-key"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for llm key without model")
	}
}

func TestValidate_NoAddrsAllowed(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "valkey"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("file-only config should validate, got %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Data.CatalogDir != "catalogs" {
		t.Errorf("expected CatalogDir=catalogs, got %q", cfg.Data.CatalogDir)
	}
	if cfg.Data.PackDir != "packs" {
		t.Errorf("expected PackDir=packs, got %q", cfg.Data.PackDir)
	}
	if cfg.Storage.KeyPrefix != "cavist:" {
		t.Errorf("expected KeyPrefix='cavist:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.CatalogTTLSec != 300 {
		t.Errorf("expected CatalogTTLSec=300, got %d", cfg.Storage.CatalogTTLSec)
	}
	if cfg.Storage.EventRetentionDay != 92 {
		t.Errorf("expected EventRetentionDay=92, got %d", cfg.Storage.EventRetentionDay)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: "redis", ReadinessTimeout: 15},
		Data:     DataConfig{CatalogDir: "/data/catalogs", PackDir: "/data/packs"},
		Storage:  StorageConfig{KeyPrefix: "custom:", CatalogTTLSec: 60, EventRetentionDay: 30},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Data.CatalogDir != "/data/catalogs" {
		t.Errorf("expected CatalogDir=/data/catalogs, got %q", cfg.Data.CatalogDir)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.EventRetentionDay != 30 {
		t.Errorf("expected EventRetentionDay=30, got %d", cfg.Storage.EventRetentionDay)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CAVIST_TEST_PORT", "9090")

	in := []byte("port: ${CAVIST_TEST_PORT}\nprefix: ${CAVIST_TEST_MISSING:-fallback:}\n")
	out := string(expandEnvVars(in))

	want := "port: 9090\nprefix: fallback:\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	content := []byte("http:\n  port: 8080\ndata:\n  catalog_dir: /tmp/catalogs\n")
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Data.CatalogDir != "/tmp/catalogs" {
		t.Errorf("CatalogDir = %q", cfg.Data.CatalogDir)
	}
	if cfg.Storage.KeyPrefix != "cavist:" {
		t.Errorf("defaults not applied, KeyPrefix = %q", cfg.Storage.KeyPrefix)
	}
}
