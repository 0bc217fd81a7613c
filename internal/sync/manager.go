// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/congregate/internal/config"
	"github.com/tomtom215/congregate/internal/logging"
	"github.com/tomtom215/congregate/internal/models"
)

// Manager orchestrates one full sync run: collect, index, transform,
// reconcile. It holds no state between runs; every Run is a complete
// resynchronization.
//
// A Manager is not safe for concurrent Run calls. The destination table
// cannot tolerate overlapping runs either, so the scheduler invoking this
// job must guarantee non-overlapping executions.
type Manager struct {
	fetcher    GroupFetcher
	reconciler Reconciler
	cfg        *config.SyncConfig
	stats      SyncStats
}

// NewManager creates a sync manager over the given source and destination.
func NewManager(fetcher GroupFetcher, reconciler Reconciler, cfg *config.SyncConfig) *Manager {
	return &Manager{
		fetcher:    fetcher,
		reconciler: reconciler,
		cfg:        cfg,
	}
}

// Stats returns statistics from the most recent run.
func (m *Manager) Stats() *SyncStats {
	return &m.stats
}

// Run executes one sync pass. Errors from any stage abort the run and
// propagate to the caller unmodified apart from stage context; batches
// written before a failure stay written.
func (m *Manager) Run(ctx context.Context) error {
	ctx = logging.ContextWithNewRunID(ctx)

	m.stats = SyncStats{
		StartTime: time.Now(),
		DryRun:    m.cfg.DryRun,
	}

	logging.CtxInfo(ctx).Bool("dry_run", m.cfg.DryRun).Msg("Starting group sync")

	collection, err := m.fetcher.FetchAllGroups(ctx)
	if err != nil {
		return fmt.Errorf("collecting groups: %w", err)
	}
	m.stats.Pages = collection.Pages
	m.stats.Groups = len(collection.Groups)

	lookup := BuildTagLookup(collection.Included)
	m.stats.TagsIndexed = len(lookup)

	mapper := NewGroupMapper(lookup)
	m.stats.Mode = mapper.Mode()

	logging.CtxInfo(ctx).
		Str("mode", string(mapper.Mode())).
		Int("tags_indexed", len(lookup)).
		Msg("Classification mode selected")

	rows := make([]*models.GroupRow, 0, len(collection.Groups))
	for i := range collection.Groups {
		rows = append(rows, mapper.ToRow(&collection.Groups[i]))
	}

	valid, skipped := mapper.FilterValidRows(rows)
	m.stats.Rows = len(valid)
	m.stats.Skipped = skipped
	if skipped > 0 {
		logging.CtxWarn(ctx).Int("skipped", skipped).Msg("Dropped rows missing a group id")
	}

	if m.cfg.DryRun {
		m.stats.EndTime = time.Now()
		logging.CtxInfo(ctx).
			Int("rows", len(valid)).
			Dur("duration", m.stats.Duration()).
			Msg("Dry run complete, no rows written")
		return nil
	}

	if err := m.reconciler.Reconcile(ctx, valid); err != nil {
		return fmt.Errorf("reconciling rows: %w", err)
	}

	m.stats.EndTime = time.Now()

	logging.CtxInfo(ctx).
		Int("pages", m.stats.Pages).
		Int("groups", m.stats.Groups).
		Int("rows", m.stats.Rows).
		Int("skipped", m.stats.Skipped).
		Str("mode", string(m.stats.Mode)).
		Dur("duration", m.stats.Duration()).
		Float64("rows_per_second", m.stats.RowsPerSecond()).
		Msg("Group sync complete")

	return nil
}
