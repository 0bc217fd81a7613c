// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package sync

import (
	_ "embed"
)

//go:embed schema.sql
var tableSchema string

// TableSchema returns the destination table DDL. The entry point prints it
// when a write fails because the table does not exist, so an operator can
// create the table without hunting through documentation.
func TableSchema() string {
	return tableSchema
}
