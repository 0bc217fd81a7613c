// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package sync

import (
	"context"
	"fmt"

	"github.com/tomtom215/congregate/internal/logging"
	"github.com/tomtom215/congregate/internal/models"
)

// ConflictKey is the natural key column of the destination table. Upserts
// key on it and the replace-all delete filters on it being non-empty.
const ConflictKey = "pco_group_id"

// defaultBatchSize is used when a reconciler is constructed without a
// positive batch size.
const defaultBatchSize = 200

// GroupStore is the destination interface consumed by reconcilers.
//
// Implemented by SupabaseClient for production use and by fakes in tests.
// Each method covers one whole batch; a returned error means the batch was
// rejected and nothing after it should be attempted.
type GroupStore interface {
	DeleteAll(ctx context.Context) error
	Insert(ctx context.Context, rows []*models.GroupRow) error
	Upsert(ctx context.Context, rows []*models.GroupRow, conflictKey string) error
	Table() string
}

// Reconciler writes a transformed row set to the destination table.
//
// The two implementations have different staleness semantics: replace-all
// removes rows for vanished upstream groups, upsert-by-key leaves them in
// place. A deployment picks one at build time; they are not runtime-switched.
type Reconciler interface {
	Reconcile(ctx context.Context, rows []*models.GroupRow) error
}

// ReplaceAllReconciler clears the destination table and bulk-inserts the
// fresh row set in fixed-size batches.
//
// There is no transaction across the run: the delete commits first, and a
// failed batch leaves earlier batches committed. A failed run therefore
// leaves the table partially repopulated until the next successful run.
type ReplaceAllReconciler struct {
	store     GroupStore
	batchSize int
}

// NewReplaceAllReconciler creates a replace-all reconciler over the store.
func NewReplaceAllReconciler(store GroupStore, batchSize int) *ReplaceAllReconciler {
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	return &ReplaceAllReconciler{
		store:     store,
		batchSize: batchSize,
	}
}

// Reconcile deletes every existing row, then inserts all rows in batches.
func (r *ReplaceAllReconciler) Reconcile(ctx context.Context, rows []*models.GroupRow) error {
	logging.CtxInfo(ctx).Str("table", r.store.Table()).Msg("Clearing destination table")

	if err := r.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing table %s: %w", r.store.Table(), err)
	}

	return writeBatches(ctx, rows, r.batchSize, "insert", func(ctx context.Context, batch []*models.GroupRow) error {
		return r.store.Insert(ctx, batch)
	})
}

// UpsertReconciler writes the row set through upserts keyed on the natural
// group id, in fixed-size batches.
//
// Rows for upstream groups no longer present are left untouched. A failed
// batch aborts the remaining ones with earlier batches committed.
type UpsertReconciler struct {
	store     GroupStore
	batchSize int
}

// NewUpsertReconciler creates an upsert reconciler over the store.
func NewUpsertReconciler(store GroupStore, batchSize int) *UpsertReconciler {
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	return &UpsertReconciler{
		store:     store,
		batchSize: batchSize,
	}
}

// Reconcile upserts all rows in batches keyed on ConflictKey.
func (r *UpsertReconciler) Reconcile(ctx context.Context, rows []*models.GroupRow) error {
	return writeBatches(ctx, rows, r.batchSize, "upsert", func(ctx context.Context, batch []*models.GroupRow) error {
		return r.store.Upsert(ctx, batch, ConflictKey)
	})
}

// writeBatches slices rows into consecutive batches and applies write to
// each in order, stopping at the first failure.
func writeBatches(ctx context.Context, rows []*models.GroupRow, batchSize int, operation string, write func(context.Context, []*models.GroupRow) error) error {
	if len(rows) == 0 {
		logging.CtxInfo(ctx).Msg("No rows to write")
		return nil
	}

	totalBatches := (len(rows) + batchSize - 1) / batchSize

	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		batchNum := start/batchSize + 1

		if err := write(ctx, batch); err != nil {
			return fmt.Errorf("%s batch %d of %d: %w", operation, batchNum, totalBatches, err)
		}

		logging.CtxInfo(ctx).
			Str("operation", operation).
			Int("batch", batchNum).
			Int("total_batches", totalBatches).
			Int("rows", len(batch)).
			Msg("Wrote batch")
	}

	return nil
}
