// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package sync

import (
	"time"
)

// SyncStats holds statistics about one sync run.
type SyncStats struct {
	// Pages is the number of API pages fetched.
	Pages int

	// Groups is the number of group resources collected.
	Groups int

	// TagsIndexed is the number of entries in the tag lookup.
	TagsIndexed int

	// Rows is the number of rows handed to the reconciler.
	Rows int

	// Skipped is the number of rows dropped for missing a group id.
	Skipped int

	// Mode is the classification mode the run selected.
	Mode ClassificationMode

	// DryRun indicates the run stopped before writing.
	DryRun bool

	// StartTime is when the run started.
	StartTime time.Time

	// EndTime is when the run completed (zero if still running).
	EndTime time.Time
}

// Duration returns the duration of the sync run.
func (s *SyncStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsPerSecond returns the write throughput of the run.
func (s *SyncStats) RowsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Rows) / duration
}
