package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	config, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.App.BasePath != "." {
		t.Errorf("Expected default base path '.', got %s", config.App.BasePath)
	}
	if config.Archive.DefaultDays != 30 {
		t.Errorf("Expected default archive days 30, got %d", config.Archive.DefaultDays)
	}
	if config.Cleanup.KeepPerKind != 5 {
		t.Errorf("Expected default keep-per-kind 5, got %d", config.Cleanup.KeepPerKind)
	}
	if config.Logging.Level != "info" || config.Logging.Format != "console" {
		t.Errorf("Unexpected logging defaults: %+v", config.Logging)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
app:
  base_path: /var/lib/quantumwatch
archive:
  default_days: 60
cleanup:
  keep_per_kind: 10
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.App.BasePath != "/var/lib/quantumwatch" {
		t.Errorf("Unexpected base path: %s", config.App.BasePath)
	}
	if config.Archive.DefaultDays != 60 {
		t.Errorf("Unexpected archive days: %d", config.Archive.DefaultDays)
	}
	if config.Cleanup.KeepPerKind != 10 {
		t.Errorf("Unexpected keep-per-kind: %d", config.Cleanup.KeepPerKind)
	}
	if config.Logging.Level != "debug" || config.Logging.Format != "json" {
		t.Errorf("Unexpected logging config: %+v", config.Logging)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("QUANTUMWATCH_ARCHIVE_DEFAULT_DAYS", "90")
	t.Setenv("QUANTUMWATCH_LOGGING_LEVEL", "warn")

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Archive.DefaultDays != 90 {
		t.Errorf("Expected env override 90, got %d", config.Archive.DefaultDays)
	}
	if config.Logging.Level != "warn" {
		t.Errorf("Expected env override warn, got %s", config.Logging.Level)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: loud
  format: xml
archive:
  default_days: -1
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Expected validation error for invalid config values")
	}
}
