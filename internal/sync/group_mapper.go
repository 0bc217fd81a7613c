// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package sync

import (
	"fmt"
	"strconv"

	"github.com/tomtom215/congregate/internal/models"
	"github.com/tomtom215/congregate/internal/models/pco"
)

// ClassificationMode identifies where campus, stage, type, and meeting days
// come from during a run.
type ClassificationMode string

const (
	// ModeTagConvention derives classification from "Prefix: Value" tag names.
	ModeTagConvention ClassificationMode = "tag-convention"

	// ModeAttributeProbing derives classification from the group's own
	// attributes through ordered candidate-key lists.
	ModeAttributeProbing ClassificationMode = "attribute-probing"
)

// Candidate attribute keys per logical field, in probe order. The upstream
// schema does not contractually fix these names, so each field tolerates the
// variants observed across API versions. The first present non-null value of
// a usable kind wins.
var (
	descriptionKeys = []string{"description", "short_description"}
	campusKeys      = []string{"campus_name", "campus", "location_name"}
	dayKeys         = []string{"meeting_day", "meets_on"}
	timeKeys        = []string{"meeting_time", "time", "starts_at"}
	stageKeys       = []string{"life_stage", "group_lifestage", "age_range"}
	typeKeys        = []string{"group_type", "type", "category"}
	capacityKeys    = []string{"capacity", "max_participants"}
	enrollmentKeys  = []string{"enrollment", "current_participants"}
	urlKeys         = []string{"url", "web_url", "public_url"}
)

// archivedAtKey marks closed groups. Presence with a non-null value means
// the group is archived.
const archivedAtKey = "archived_at"

// GroupMapper converts raw group resources to destination rows.
//
// The mapper fixes its classification mode at construction from the tag
// lookup: a non-empty lookup selects tag-convention classification, an empty
// one selects attribute probing. The two sources are never merged per-field,
// so every row in a run classifies the same way.
type GroupMapper struct {
	mode   ClassificationMode
	lookup map[string]string
}

// NewGroupMapper creates a mapper over the given tag lookup.
func NewGroupMapper(lookup map[string]string) *GroupMapper {
	mode := ModeAttributeProbing
	if len(lookup) > 0 {
		mode = ModeTagConvention
	}
	return &GroupMapper{
		mode:   mode,
		lookup: lookup,
	}
}

// Mode returns the classification mode selected for this run.
func (m *GroupMapper) Mode() ClassificationMode {
	return m.mode
}

// ToRow converts one group resource to a destination row.
func (m *GroupMapper) ToRow(group *pco.Resource) *models.GroupRow {
	tags := ParseGroupTags(group.TagIDs(), m.lookup)

	row := &models.GroupRow{
		PCOGroupID:      group.ID,
		Name:            stringAttr(group, "name"),
		Description:     firstString(group, descriptionKeys),
		TimeOfDay:       firstString(group, timeKeys),
		IsOpen:          m.isOpen(group),
		MaxSize:         firstInt(group, capacityKeys),
		CurrentSize:     firstInt(group, enrollmentKeys),
		ChurchCenterURL: firstString(group, urlKeys),
		Tags: models.TagSummary{
			IDs:   tags.TagIDs,
			Names: tags.TagNames,
		},
	}

	if m.mode == ModeTagConvention {
		m.classifyFromTags(row, &tags)
	} else {
		m.classifyFromAttributes(row, group)
	}

	return row
}

// classifyFromTags fills campus, stage, type, and days from parsed tag fields.
func (m *GroupMapper) classifyFromTags(row *models.GroupRow, tags *TagFields) {
	row.Campus = optionalString(tags.Campus)
	row.StageOfLife = optionalString(tags.StageOfLife)
	row.GroupType = optionalString(tags.GroupType)
	if len(tags.DaysOfWeek) > 0 {
		row.DaysOfWeek = tags.DaysOfWeek
	}
}

// classifyFromAttributes fills campus, stage, type, and days by probing the
// group's own attributes. The attribute schema carries at most one meeting
// day, so days become a single-element list when present.
func (m *GroupMapper) classifyFromAttributes(row *models.GroupRow, group *pco.Resource) {
	row.Campus = firstString(group, campusKeys)
	row.StageOfLife = firstString(group, stageKeys)
	row.GroupType = firstString(group, typeKeys)
	if day := firstString(group, dayKeys); day != nil {
		row.DaysOfWeek = []string{*day}
	}
}

// isOpen reports whether the group is active. A present non-null archival
// timestamp means closed; an absent or null one means open.
func (m *GroupMapper) isOpen(group *pco.Resource) bool {
	v, present := group.Attr(archivedAtKey)
	return !(present && v != nil)
}

// ValidateRow checks that a row has the fields reconciliation depends on.
// Returns an error describing the failure.
func (m *GroupMapper) ValidateRow(row *models.GroupRow) error {
	if row.PCOGroupID == "" {
		return fmt.Errorf("missing group id")
	}
	return nil
}

// FilterValidRows filters out rows that cannot be reconciled and returns
// valid ones. Also returns a count of skipped rows.
func (m *GroupMapper) FilterValidRows(rows []*models.GroupRow) (valid []*models.GroupRow, skipped int) {
	for _, row := range rows {
		if err := m.ValidateRow(row); err == nil {
			valid = append(valid, row)
		} else {
			skipped++
		}
	}
	return valid, skipped
}

// stringAttr returns the attribute's string value, or empty when absent,
// null, or not a string.
func stringAttr(res *pco.Resource, key string) string {
	v, ok := res.Attr(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// firstString probes the candidate keys in order and returns the first
// present non-null string value. Values of other kinds are passed over.
// An empty string wins the probe but renders as absent: later candidates
// must not supply a value the primary key already answered.
func firstString(res *pco.Resource, keys []string) *string {
	for _, key := range keys {
		v, ok := res.Attr(key)
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			if s == "" {
				return nil
			}
			return &s
		}
	}
	return nil
}

// firstInt probes the candidate keys in order and returns the first present
// non-null numeric value. JSON numbers arrive as float64; numeric strings
// are accepted since the upstream API is inconsistent about quoting counts.
func firstInt(res *pco.Resource, keys []string) *int {
	for _, key := range keys {
		v, ok := res.Attr(key)
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			i := int(n)
			return &i
		case string:
			if i, err := strconv.Atoi(n); err == nil {
				return &i
			}
		}
	}
	return nil
}

// optionalString converts a possibly-empty string to a nullable field value.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
