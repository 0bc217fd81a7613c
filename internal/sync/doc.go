// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

/*
Package sync orchestrates one-way group synchronization from Planning Center to Supabase.

This package implements the core business logic for fetching small group records
from the Planning Center Groups API, classifying them through tag-convention or
attribute-probing rules, and reconciling them into a destination table in Supabase.
A run is a single pass: fetch everything, transform everything, write everything,
exit. There is no daemon loop and no partial-refresh mode.

Key Components:

  - Manager: Orchestrates a full sync run from fetch through reconcile
  - PCOClient: HTTP client for the Planning Center Groups API (JSON:API pagination)
  - BuildTagLookup: ID-to-name index built from the sideloaded tag resources
  - GroupMapper: Transforms raw group resources into destination rows
  - SupabaseClient: PostgREST writer with delete, insert, and upsert operations
  - Reconcilers: Replace-all and upsert-by-key write strategies over batches

Pipeline:

 1. Collect: Page through the Groups API, accumulating groups and sideloaded tags
 2. Index: Build a tag ID-to-name lookup from the sideloaded resources
 3. Classify: Parse "Prefix: Value" tag names, or probe attributes when no tags exist
 4. Transform: Produce one destination row per group with explicit null fields
 5. Reconcile: Write rows in fixed-size batches, aborting on the first failure

Classification Modes:

A run uses exactly one classification source for campus, stage, type, and
meeting days. When the tag lookup contains at least one entry the run is in
tag-convention mode and those fields come only from parsed tag names. When the
lookup is empty the run falls back to probing the group attributes directly
through ordered candidate-key lists. The two sources are never mixed within a
run, which keeps rows comparable across the whole table.

Failure Model:

The job is intentionally brittle: any transport failure, malformed page, or
rejected write batch aborts the run with a non-zero exit. Batches already
written stay written. Errors are typed so the caller can tell configuration,
transport, and storage failures apart:

  - *config.ConfigError: a required setting is missing or malformed (pre-flight)
  - *TransportError: the Groups API request failed or returned a non-success status
  - *StorageError: Supabase rejected a write, including soft errors on HTTP 200

Usage Example:

	import (
	    "context"

	    "github.com/tomtom215/congregate/internal/config"
	    "github.com/tomtom215/congregate/internal/sync"
	)

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

	pco := sync.NewPCOClient(&cfg.PCO)
	store := sync.NewSupabaseClient(&cfg.Supabase)
	reconciler := sync.NewUpsertReconciler(store, cfg.Sync.BatchSize)
	manager := sync.NewManager(pco, reconciler, &cfg.Sync)

	if err := manager.Run(context.Background()); err != nil {
	    log.Fatal(err)
	}

Thread Safety:

A Manager performs one run at a time and is not safe for concurrent Run calls.
PCOClient and SupabaseClient are safe for concurrent use; each request builds
its own http.Request.

See Also:

  - internal/models: Destination row shape
  - internal/models/pco: JSON:API document decoding
  - internal/config: Configuration management
*/
package sync
