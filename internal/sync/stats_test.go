// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package sync

import (
	"testing"
	"time"
)

func TestSyncStatsDuration(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	stats := SyncStats{
		StartTime: start,
		EndTime:   start.Add(90 * time.Second),
	}

	if got := stats.Duration(); got != 90*time.Second {
		t.Errorf("Duration() = %v, want 90s", got)
	}
}

func TestSyncStatsDurationWhileRunning(t *testing.T) {
	t.Parallel()

	stats := SyncStats{StartTime: time.Now().Add(-time.Second)}

	if got := stats.Duration(); got < time.Second {
		t.Errorf("Duration() = %v, want at least 1s while running", got)
	}
}

func TestSyncStatsRowsPerSecond(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	stats := SyncStats{
		Rows:      300,
		StartTime: start,
		EndTime:   start.Add(10 * time.Second),
	}

	if got := stats.RowsPerSecond(); got != 30 {
		t.Errorf("RowsPerSecond() = %v, want 30", got)
	}
}

func TestSyncStatsRowsPerSecondZeroDuration(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	stats := SyncStats{Rows: 300, StartTime: start, EndTime: start}

	if got := stats.RowsPerSecond(); got != 0 {
		t.Errorf("RowsPerSecond() = %v, want 0 for a zero-duration run", got)
	}
}
