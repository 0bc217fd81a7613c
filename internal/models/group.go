// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

// Package models defines the destination-side data structures written to Supabase.
package models

// GroupRow is one row of the destination groups table. JSON tags match the
// table's column names; the payload sent to PostgREST is a flat array of these.
//
// Nullable columns use pointer types and marshal as explicit null rather than
// being omitted: PostgREST bulk writes require every object in the payload to
// carry the same keys.
//
// The id (bigserial) and updated_at (defaults to now()) columns are owned by
// the database and never sent.
type GroupRow struct {
	// Natural key: the upstream group's opaque identifier. Unique in the
	// destination table and the conflict target for upserts.
	PCOGroupID string `json:"pco_group_id"`

	// Core attributes
	Name        string  `json:"name"`
	Description *string `json:"description"`

	// Classification fields, derived from the tag convention or from
	// attribute probing depending on the run's classification mode
	Campus      *string  `json:"campus"`
	DaysOfWeek  []string `json:"days_of_week"` // nil marshals as null, never []
	TimeOfDay   *string  `json:"time_of_day"`
	StageOfLife *string  `json:"stage_of_life"`
	GroupType   *string  `json:"group_type"`

	// Open/closed flag: false when the upstream group carries an archival timestamp
	IsOpen bool `json:"is_open"`

	// Size metrics
	MaxSize     *int `json:"max_size"`
	CurrentSize *int `json:"current_size"`

	// Public signup/detail page
	ChurchCenterURL *string `json:"church_center_url"`

	// Raw tag payload (jsonb column)
	Tags TagSummary `json:"tags"`
}

// TagSummary is the free-form tag payload persisted in the jsonb tags column.
// Under tag-convention classification it carries the group's tag ids in
// relationship order and the display names that resolved through the lookup.
// Under attribute probing both slices are empty and it marshals as {}.
type TagSummary struct {
	IDs   []string `json:"ids,omitempty"`
	Names []string `json:"names,omitempty"`
}
