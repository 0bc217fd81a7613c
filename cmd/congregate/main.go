// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

// Package main is the entry point for the congregate sync job.
//
// Congregate pulls small group records from the Planning Center Groups API
// and replicates them into a Supabase table, so a website or directory app
// can query group data without calling Planning Center directly. Each
// invocation is one complete resynchronization; schedule it with cron or a
// platform scheduler, with runs guaranteed not to overlap.
//
// # Run Sequence
//
//  1. Environment: load .env if present (local development convenience)
//  2. Configuration: load settings from environment and optional config file (Koanf v2)
//  3. Logging: initialize zerolog from configuration
//  4. Sync: collect every group page, transform, and upsert into Supabase
//
// # Configuration
//
// Required environment variables:
//   - PCO_APP_ID: Planning Center personal access token application ID
//   - PCO_SECRET: Planning Center personal access token secret
//   - SUPABASE_URL: Supabase project URL (https://<project>.supabase.co)
//   - SUPABASE_SERVICE_KEY: Supabase service role key
//
// Optional:
//   - PCO_URL: Groups API collection URL (defaults to the hosted endpoint)
//   - SUPABASE_TABLE: destination table name (default: groups)
//   - SYNC_BATCH_SIZE: rows per write batch (default: 200)
//   - SYNC_DRY_RUN: fetch and transform but skip all writes
//   - LOG_LEVEL, LOG_FORMAT, LOG_CALLER: logging behavior
//
// # Reconciliation Strategy
//
// This deployment upserts keyed on pco_group_id: existing rows update in
// place, new rows insert, and rows for groups that vanished upstream are
// left untouched. Purging vanished rows is deliberately not done here.
//
// # Exit Behavior
//
// Any configuration, transport, or storage failure terminates the process
// with a non-zero status and the failure logged. There is no partial-success
// exit code; rerun the job after fixing the cause.
package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/tomtom215/congregate/internal/config"
	"github.com/tomtom215/congregate/internal/logging"
	"github.com/tomtom215/congregate/internal/sync"
)

func main() {
	// Optional .env for local development; absence is normal in deployment
	_ = godotenv.Load()

	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("pco_url", cfg.PCO.URL).
		Str("supabase_url", cfg.Supabase.URL).
		Str("table", cfg.Supabase.Table).
		Int("batch_size", cfg.Sync.BatchSize).
		Bool("dry_run", cfg.Sync.DryRun).
		Msg("Configuration loaded")

	pco := sync.NewPCOClient(&cfg.PCO)
	store := sync.NewSupabaseClient(&cfg.Supabase)
	reconciler := sync.NewUpsertReconciler(store, cfg.Sync.BatchSize)
	manager := sync.NewManager(pco, reconciler, &cfg.Sync)

	if err := manager.Run(context.Background()); err != nil {
		var storageErr *sync.StorageError
		if errors.As(err, &storageErr) && storageErr.StatusCode == http.StatusNotFound {
			logging.Error().
				Str("table", cfg.Supabase.Table).
				Str("schema", sync.TableSchema()).
				Msg("Destination table not found, create it and rerun")
		}
		logging.Fatal().Err(err).Msg("Sync failed")
	}
}
