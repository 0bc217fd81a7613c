// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigPathEnvVar overrides the config file search paths.
	ConfigPathEnvVar = "CONFIG_PATH"

	// DefaultPCOGroupsURL is the hosted Groups API v2 collection endpoint.
	DefaultPCOGroupsURL = "https://api.planningcenteronline.com/groups/v2/groups"

	// DefaultTable is the destination table name.
	DefaultTable = "groups"

	// DefaultBatchSize is the number of rows per write batch.
	DefaultBatchSize = 200
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"/config/config.yaml",
}

// defaultConfig returns the built-in defaults applied before file and
// environment layers.
func defaultConfig() *Config {
	return &Config{
		PCO: PCOConfig{
			AppID:  "",
			Secret: "",
			URL:    DefaultPCOGroupsURL,
		},
		Supabase: SupabaseConfig{
			URL:        "",
			ServiceKey: "",
			Table:      DefaultTable,
		},
		Sync: SyncConfig{
			BatchSize: DefaultBatchSize,
			DryRun:    false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence: ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// PCO_APP_ID -> pco.app_id
	// SUPABASE_SERVICE_KEY -> supabase.service_key
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - PCO_APP_ID -> pco.app_id
//   - SUPABASE_URL -> supabase.url
//   - SYNC_DRY_RUN -> sync.dry_run
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Planning Center mappings
		"pco_app_id": "pco.app_id",
		"pco_secret": "pco.secret",
		"pco_url":    "pco.url",

		// Supabase mappings
		"supabase_url":         "supabase.url",
		"supabase_service_key": "supabase.service_key",
		"supabase_table":       "supabase.table",

		// Sync mappings
		"sync_batch_size": "sync.batch_size",
		"sync_dry_run":    "sync.dry_run",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
