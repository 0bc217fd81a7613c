// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package pco

import (
	"testing"

	json "github.com/goccy/go-json"
)

const samplePage = `{
	"data": [
		{
			"type": "Group",
			"id": "101",
			"attributes": {
				"name": "Tuesday Night Study",
				"archived_at": null,
				"enrollment": 12
			},
			"relationships": {
				"tags": {
					"data": [
						{"type": "Tag", "id": "7"},
						{"type": "Tag", "id": "3"}
					]
				}
			}
		}
	],
	"included": [
		{"type": "Tag", "id": "7", "attributes": {"name": "Campus: Conway"}}
	],
	"links": {
		"self": "https://api.planningcenteronline.com/groups/v2/groups?per_page=100",
		"next": "https://api.planningcenteronline.com/groups/v2/groups?offset=100&per_page=100"
	},
	"meta": {"total_count": 150, "count": 100}
}`

// TestDocumentDecode verifies a collection page decodes into the envelope types
func TestDocumentDecode(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(samplePage), &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(doc.Data) != 1 {
		t.Fatalf("len(Data) = %d, want 1", len(doc.Data))
	}
	group := doc.Data[0]
	if group.ID != "101" {
		t.Errorf("group.ID = %q, want 101", group.ID)
	}
	if group.Type != "Group" {
		t.Errorf("group.Type = %q, want Group", group.Type)
	}

	name, ok := group.Attr("name")
	if !ok || name != "Tuesday Night Study" {
		t.Errorf("Attr(name) = %v, %v, want Tuesday Night Study, true", name, ok)
	}

	// JSON null decodes as a present key with a nil value
	archived, ok := group.Attr("archived_at")
	if !ok {
		t.Error("Attr(archived_at) should report presence for an explicit null")
	}
	if archived != nil {
		t.Errorf("Attr(archived_at) = %v, want nil", archived)
	}

	if _, ok := group.Attr("missing"); ok {
		t.Error("Attr(missing) should report absence")
	}

	if got := group.TagIDs(); len(got) != 2 || got[0] != "7" || got[1] != "3" {
		t.Errorf("TagIDs = %v, want [7 3]", got)
	}

	if len(doc.Included) != 1 || doc.Included[0].ID != "7" {
		t.Errorf("Included = %+v, want single tag resource 7", doc.Included)
	}
	if doc.Meta.TotalCount != 150 {
		t.Errorf("Meta.TotalCount = %d, want 150", doc.Meta.TotalCount)
	}
}

// TestDocumentNextPageURL verifies cursor preference: links.next, then meta fallbacks
func TestDocumentNextPageURL(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		expected string
	}{
		{
			name:     "links next preferred",
			doc:      Document{Links: Links{Next: "https://x/page2"}, Meta: Meta{Next: "https://x/meta2"}},
			expected: "https://x/page2",
		},
		{
			name:     "meta next fallback",
			doc:      Document{Meta: Meta{Next: "https://x/meta2", NextPageURL: "https://x/meta3"}},
			expected: "https://x/meta2",
		},
		{
			name:     "meta next_page_url fallback",
			doc:      Document{Meta: Meta{NextPageURL: "https://x/meta3"}},
			expected: "https://x/meta3",
		},
		{
			name:     "exhausted",
			doc:      Document{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.NextPageURL(); got != tt.expected {
				t.Errorf("NextPageURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestResourceTagIDsEmpty verifies groups without tag relationships yield nil
func TestResourceTagIDsEmpty(t *testing.T) {
	var group Resource
	if err := json.Unmarshal([]byte(`{"type":"Group","id":"9","attributes":{}}`), &group); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got := group.TagIDs(); got != nil {
		t.Errorf("TagIDs = %v, want nil", got)
	}
}
