// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Planning Center defaults (credentials empty - required fields)
	if cfg.PCO.AppID != "" {
		t.Errorf("PCO.AppID should be empty by default, got %q", cfg.PCO.AppID)
	}
	if cfg.PCO.Secret != "" {
		t.Errorf("PCO.Secret should be empty by default, got %q", cfg.PCO.Secret)
	}
	if cfg.PCO.URL != DefaultPCOGroupsURL {
		t.Errorf("PCO.URL = %q, want %q", cfg.PCO.URL, DefaultPCOGroupsURL)
	}

	// Supabase defaults (credentials empty - required fields)
	if cfg.Supabase.URL != "" {
		t.Errorf("Supabase.URL should be empty by default, got %q", cfg.Supabase.URL)
	}
	if cfg.Supabase.ServiceKey != "" {
		t.Errorf("Supabase.ServiceKey should be empty by default, got %q", cfg.Supabase.ServiceKey)
	}
	if cfg.Supabase.Table != "groups" {
		t.Errorf("Supabase.Table = %q, want groups", cfg.Supabase.Table)
	}

	// Sync defaults
	if cfg.Sync.BatchSize != 200 {
		t.Errorf("Sync.BatchSize = %d, want 200", cfg.Sync.BatchSize)
	}
	if cfg.Sync.DryRun != false {
		t.Errorf("Sync.DryRun should be false by default")
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Logging.Caller != false {
		t.Errorf("Logging.Caller should be false by default")
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Planning Center
		{"PCO_APP_ID", "pco.app_id"},
		{"PCO_SECRET", "pco.secret"},
		{"PCO_URL", "pco.url"},

		// Supabase
		{"SUPABASE_URL", "supabase.url"},
		{"SUPABASE_SERVICE_KEY", "supabase.service_key"},
		{"SUPABASE_TABLE", "supabase.table"},

		// Sync
		{"SYNC_BATCH_SIZE", "sync.batch_size"},
		{"SYNC_DRY_RUN", "sync.dry_run"},

		// Logging
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},
		{"LOG_CALLER", "logging.caller"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := envTransformFunc(tt.input)
			if result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	// Create a temporary directory for test files
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Save original working directory
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	}()

	// Change to temp directory
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		os.Unsetenv(ConfigPathEnvVar)
		result := findConfigFile()
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("test: true"), 0644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		os.Unsetenv(ConfigPathEnvVar)
		result := findConfigFile()
		if result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom_config.yaml")
		if err := os.WriteFile(customPath, []byte("test: true"), 0644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		os.Setenv(ConfigPathEnvVar, customPath)
		defer os.Unsetenv(ConfigPathEnvVar)

		result := findConfigFile()
		if result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		os.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		defer os.Unsetenv(ConfigPathEnvVar)

		result := findConfigFile()
		// Should fall back to default paths (which don't exist in temp dir)
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	// Clear all environment variables
	os.Clearenv()

	// Set required variables
	os.Setenv("PCO_APP_ID", "abc123")
	os.Setenv("PCO_SECRET", "shhh")
	os.Setenv("SUPABASE_URL", "https://project.supabase.co")
	os.Setenv("SUPABASE_SERVICE_KEY", "service-role-key")

	// Set some custom values to override defaults
	os.Setenv("SUPABASE_TABLE", "small_groups")
	os.Setenv("SYNC_BATCH_SIZE", "500")
	os.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	// Verify required values
	if cfg.PCO.AppID != "abc123" {
		t.Errorf("PCO.AppID = %q, want abc123", cfg.PCO.AppID)
	}
	if cfg.PCO.Secret != "shhh" {
		t.Errorf("PCO.Secret = %q, want shhh", cfg.PCO.Secret)
	}
	if cfg.Supabase.URL != "https://project.supabase.co" {
		t.Errorf("Supabase.URL = %q, want https://project.supabase.co", cfg.Supabase.URL)
	}
	if cfg.Supabase.ServiceKey != "service-role-key" {
		t.Errorf("Supabase.ServiceKey = %q, want service-role-key", cfg.Supabase.ServiceKey)
	}

	// Verify custom overrides
	if cfg.Supabase.Table != "small_groups" {
		t.Errorf("Supabase.Table = %q, want small_groups", cfg.Supabase.Table)
	}
	if cfg.Sync.BatchSize != 500 {
		t.Errorf("Sync.BatchSize = %d, want 500", cfg.Sync.BatchSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Verify defaults are still applied for unset values
	if cfg.PCO.URL != DefaultPCOGroupsURL {
		t.Errorf("PCO.URL = %q, want %q (default)", cfg.PCO.URL, DefaultPCOGroupsURL)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json (default)", cfg.Logging.Format)
	}
}
