// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

/*
pco_groups.go - Paginated Group Collection

This file implements the collection stage of a sync run: paging through the
Groups API index and flattening every page into a single in-memory collection.

Pagination Contract:
  - The first request asks for 100 records per page with tags sideloaded
  - Subsequent requests follow the next-page URL from the response verbatim,
    trusting the API to preserve query parameters across pages
  - links.next is preferred; meta.next and meta.next_page_url are accepted as
    fallbacks for deployments that paginate through meta cursors
  - An absent next-page URL ends the walk

The full collection is held in memory. Congregation group catalogs are
hundreds of records, not millions, so a run fits comfortably in a few MB.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tomtom215/congregate/internal/logging"
	"github.com/tomtom215/congregate/internal/models/pco"
)

// perPage is the page size requested from the Groups API.
const perPage = "100"

// FetchAllGroups retrieves every group from the Groups API, following
// pagination until exhausted. The returned collection preserves API order for
// both the group resources and the sideloaded tag resources.
//
// Returns *TransportError on any request or status failure. There is no
// retry: a mid-walk failure aborts the run with whatever page failed named
// in the error.
func (c *PCOClient) FetchAllGroups(ctx context.Context) (*pco.Collection, error) {
	firstURL, err := c.firstPageURL()
	if err != nil {
		return nil, err
	}

	collection := &pco.Collection{}
	nextURL := firstURL
	page := 0

	for nextURL != "" {
		page++

		doc, err := c.fetchDocument(ctx, nextURL)
		if err != nil {
			return nil, err
		}

		collection.Groups = append(collection.Groups, doc.Data...)
		collection.Included = append(collection.Included, doc.Included...)

		logging.CtxInfo(ctx).
			Int("page", page).
			Str("url", nextURL).
			Int("page_groups", len(doc.Data)).
			Int("total_groups", len(collection.Groups)).
			Int("total_included", len(collection.Included)).
			Msg("Fetched groups page")

		nextURL = doc.NextPageURL()
	}

	collection.Pages = page

	logging.CtxInfo(ctx).
		Int("pages", page).
		Int("groups", len(collection.Groups)).
		Int("included", len(collection.Included)).
		Msg("Group collection complete")

	return collection, nil
}

// firstPageURL builds the initial request URL. Only the first request carries
// query parameters; the API echoes them back through its pagination links.
func (c *PCOClient) firstPageURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid groups API URL %q: %w", c.baseURL, err)
	}

	params := u.Query()
	params.Set("per_page", perPage)
	params.Set("include", "tags")
	u.RawQuery = params.Encode()

	return u.String(), nil
}
