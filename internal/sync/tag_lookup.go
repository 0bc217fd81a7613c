// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package sync

import (
	"strings"

	"github.com/tomtom215/congregate/internal/models/pco"
)

// BuildTagLookup indexes sideloaded tag resources by id.
//
// A resource qualifies when its type label contains "tag" case-insensitively,
// which covers the labels different API versions emit ("Tag", "tag",
// "group_tag"). Qualifying resources need a non-empty id and a non-empty
// string name attribute; anything else is skipped without comment, since
// sideloaded pools routinely carry resource types this job has no use for.
//
// Duplicate ids across pages resolve last-write-wins.
func BuildTagLookup(included []pco.Resource) map[string]string {
	lookup := make(map[string]string)

	for _, res := range included {
		if !strings.Contains(strings.ToLower(res.Type), "tag") {
			continue
		}
		if res.ID == "" {
			continue
		}

		name, ok := tagName(&res)
		if !ok {
			continue
		}

		lookup[res.ID] = name
	}

	return lookup
}

// tagName extracts the name attribute. Non-string values are treated as missing.
func tagName(res *pco.Resource) (string, bool) {
	v, ok := res.Attr("name")
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
