// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

// Package pco defines the wire types for Planning Center Online API responses.
//
// The Groups API speaks a JSON:API dialect: each page carries a data array of
// primary resources, an included array of side-loaded related resources
// (referenced by id, not nested), pagination links, and metadata. Resource
// attributes are kept as a raw map rather than a fixed struct because the
// upstream attribute naming is not contractually stable; consumers probe
// candidate attribute names for each logical field.
package pco
