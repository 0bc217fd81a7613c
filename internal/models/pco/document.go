// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package pco

// Document is one page of a paginated collection response.
type Document struct {
	Data     []Resource `json:"data"`
	Included []Resource `json:"included"`
	Links    Links      `json:"links"`
	Meta     Meta       `json:"meta"`
}

// Resource is a single JSON:API resource object, primary or included.
type Resource struct {
	Type string `json:"type"`
	ID   string `json:"id"`

	// Attributes is the raw attribute map. Values decode as string, float64,
	// bool, nil, or nested structures per encoding/json conventions.
	Attributes map[string]interface{} `json:"attributes"`

	Relationships Relationships `json:"relationships"`
}

// Relationships carries the relationship collections of a resource.
// Only the tags relationship is consumed.
type Relationships struct {
	Tags RelationshipData `json:"tags"`
}

// RelationshipData is a to-many relationship: bare resource identifiers,
// resolved against the included pool.
type RelationshipData struct {
	Data []ResourceIdentifier `json:"data"`
}

// ResourceIdentifier references a resource by type and id without its attributes.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Links carries pagination links. Next is empty on the final page.
type Links struct {
	Self string `json:"self"`
	Next string `json:"next"`
}

// Meta carries page metadata. Next and NextPageURL are non-standard cursor
// fields some deployments emit instead of links.next.
type Meta struct {
	TotalCount  int    `json:"total_count"`
	Count       int    `json:"count"`
	Next        string `json:"next"`
	NextPageURL string `json:"next_page_url"`
}

// NextPageURL returns the URL of the next page, preferring links.next and
// falling back to the meta cursor fields. Returns empty when pagination is
// exhausted.
func (d *Document) NextPageURL() string {
	if d.Links.Next != "" {
		return d.Links.Next
	}
	if d.Meta.Next != "" {
		return d.Meta.Next
	}
	return d.Meta.NextPageURL
}

// Attr returns the raw attribute value and whether the key is present.
// A present key with a JSON null yields (nil, true).
func (r *Resource) Attr(key string) (interface{}, bool) {
	if r.Attributes == nil {
		return nil, false
	}
	v, ok := r.Attributes[key]
	return v, ok
}

// TagIDs returns the group's tag relationship ids in appearance order.
func (r *Resource) TagIDs() []string {
	refs := r.Relationships.Tags.Data
	if len(refs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

// Collection is the flattened result of paging through the group index:
// every group resource and every sideloaded resource across all pages, in
// the order the API returned them.
type Collection struct {
	Groups   []Resource
	Included []Resource

	// Pages is how many pages the walk fetched.
	Pages int
}
