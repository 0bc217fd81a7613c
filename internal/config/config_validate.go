// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/congregate/internal/validation"
)

// ConfigError reports a missing or malformed configuration setting.
// Setting is the environment variable to fix.
type ConfigError struct {
	Setting string
	Reason  string // empty means the setting is required and missing
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Setting)
	}
	return fmt.Sprintf("%s %s", e.Setting, e.Reason)
}

// Validate checks that required configuration is present and valid.
// It runs before any network I/O so credential problems surface immediately.
func (c *Config) Validate() error {
	if err := c.validateRequired(); err != nil {
		return err
	}

	if err := c.validateFormats(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateRequired checks the four credentials the run cannot start without,
// in the order an operator would configure them.
func (c *Config) validateRequired() error {
	if c.PCO.AppID == "" {
		return &ConfigError{Setting: "PCO_APP_ID"}
	}
	if c.PCO.Secret == "" {
		return &ConfigError{Setting: "PCO_SECRET"}
	}
	if c.Supabase.URL == "" {
		return &ConfigError{Setting: "SUPABASE_URL"}
	}
	if c.Supabase.ServiceKey == "" {
		return &ConfigError{Setting: "SUPABASE_SERVICE_KEY"}
	}
	return nil
}

// Struct field to environment variable names, per config section.
var (
	pcoFieldSettings = map[string]string{
		"AppID":  "PCO_APP_ID",
		"Secret": "PCO_SECRET",
		"URL":    "PCO_URL",
	}
	supabaseFieldSettings = map[string]string{
		"URL":        "SUPABASE_URL",
		"ServiceKey": "SUPABASE_SERVICE_KEY",
		"Table":      "SUPABASE_TABLE",
	}
	syncFieldSettings = map[string]string{
		"BatchSize": "SYNC_BATCH_SIZE",
		"DryRun":    "SYNC_DRY_RUN",
	}
)

// validateFormats runs tag-driven shape validation per config section and
// rewrites failures to name the environment variable instead of the Go field.
func (c *Config) validateFormats() error {
	if err := translateValidation(validation.ValidateStruct(&c.PCO), pcoFieldSettings); err != nil {
		return err
	}
	if err := translateValidation(validation.ValidateStruct(&c.Supabase), supabaseFieldSettings); err != nil {
		return err
	}
	return translateValidation(validation.ValidateStruct(&c.Sync), syncFieldSettings)
}

// translateValidation converts the first field failure into a *ConfigError.
func translateValidation(ve *validation.StructValidationError, settings map[string]string) error {
	if ve == nil {
		return nil
	}

	fe := ve.Errors()[0]
	setting, ok := settings[fe.Field()]
	if !ok {
		setting = fe.Field()
	}

	// The translated message leads with the field name; keep only the reason.
	reason := strings.TrimPrefix(fe.Error(), fe.Field()+" ")

	return &ConfigError{Setting: setting, Reason: reason}
}

// validLogLevels defines accepted LOG_LEVEL values.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines accepted LOG_FORMAT values.
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates log level and format settings.
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration.
func (c *Config) validateLogLevel() error {
	if c.Logging.Level == "" {
		return nil
	}
	if !validLogLevels[c.Logging.Level] {
		return &ConfigError{Setting: "LOG_LEVEL", Reason: "must be one of: trace, debug, info, warn, error"}
	}
	return nil
}

// validateLogFormat validates the log format configuration.
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return &ConfigError{Setting: "LOG_FORMAT", Reason: "must be one of: json, console"}
	}
	return nil
}
