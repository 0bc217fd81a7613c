// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package config

// Config holds all application configuration loaded from environment variables
// and an optional config file. It is constructed once at startup and passed by
// reference to each component; there is no ambient global configuration state.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Validation:
// Load() fails fast, before any network I/O, when a required credential is
// missing or a setting is malformed. Failures are *ConfigError values naming
// the environment variable to fix.
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	PCO      PCOConfig      `koanf:"pco"`
	Supabase SupabaseConfig `koanf:"supabase"`
	Sync     SyncConfig     `koanf:"sync"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// PCOConfig holds Planning Center Online API credentials and endpoint.
//
// Authentication uses a Personal Access Token: the application id and secret
// are sent as HTTP Basic auth on every request.
//
// Environment Variables:
//   - PCO_APP_ID: Personal Access Token application id (required)
//   - PCO_SECRET: Personal Access Token secret (required)
//   - PCO_URL: Groups collection endpoint (default: the hosted Groups API v2 URL)
type PCOConfig struct {
	AppID  string `koanf:"app_id"`
	Secret string `koanf:"secret"`
	URL    string `koanf:"url" validate:"omitempty,http_url"`
}

// SupabaseConfig holds the destination project URL, service credential, and
// target table.
//
// The service key is a server-side credential that bypasses row-level
// security; it is sent as both the apikey header and a bearer token, the
// supabase client convention.
//
// Environment Variables:
//   - SUPABASE_URL: Project base URL, e.g. https://xyzcompany.supabase.co (required)
//   - SUPABASE_SERVICE_KEY: Service role key (required)
//   - SUPABASE_TABLE: Destination table name (default: groups)
type SupabaseConfig struct {
	URL        string `koanf:"url" validate:"omitempty,http_url"`
	ServiceKey string `koanf:"service_key"`
	Table      string `koanf:"table"`
}

// SyncConfig holds synchronization run settings.
//
// Environment Variables:
//   - SYNC_BATCH_SIZE: Rows per write batch (default: 200)
//   - SYNC_DRY_RUN: Collect and transform but skip all writes (default: false)
type SyncConfig struct {
	BatchSize int  `koanf:"batch_size" validate:"min=1"`
	DryRun    bool `koanf:"dry_run"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include caller file:line in events (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all sources and validates it.
// This is the only constructor main should use.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
