// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package sync

import "strings"

// Tag name prefixes that carry classification meaning. Matching is exact and
// case-sensitive: the convention is an agreement with whoever curates the
// tags, not a guess at their intent.
const (
	prefixCampus = "Campus"
	prefixStage  = "Stage"
	prefixType   = "Type"
	prefixDay    = "Day"
)

// TagFields is the classification extracted from a group's tags.
//
// TagIDs carries every relationship id, including ids with no sideloaded
// resource. TagNames carries only the resolved names, in relationship order.
// Days accumulate in encounter order without deduplication; the destination
// renders them as given.
type TagFields struct {
	Campus      string
	StageOfLife string
	GroupType   string
	DaysOfWeek  []string
	TagIDs      []string
	TagNames    []string
}

// ParseGroupTags resolves a group's tag ids against the lookup and extracts
// classification fields from names following the "Prefix: Value" convention.
//
// A name splits on its first colon; both sides are trimmed. Campus, Stage,
// and Type set their field (a repeated prefix overwrites), Day appends.
// Names without a colon or with an unrecognized prefix contribute to
// TagNames but classify nothing.
func ParseGroupTags(tagIDs []string, lookup map[string]string) TagFields {
	fields := TagFields{TagIDs: tagIDs}

	for _, id := range tagIDs {
		name, ok := lookup[id]
		if !ok {
			continue
		}
		fields.TagNames = append(fields.TagNames, name)

		prefix, value, found := strings.Cut(name, ":")
		if !found {
			continue
		}
		prefix = strings.TrimSpace(prefix)
		value = strings.TrimSpace(value)

		switch prefix {
		case prefixCampus:
			fields.Campus = value
		case prefixStage:
			fields.StageOfLife = value
		case prefixType:
			fields.GroupType = value
		case prefixDay:
			fields.DaysOfWeek = append(fields.DaysOfWeek, value)
		}
	}

	return fields
}
