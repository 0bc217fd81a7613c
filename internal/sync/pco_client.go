// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

/*
pco_client.go - Core Planning Center API Client

This file provides the core PCOClient struct and HTTP communication layer for
the Planning Center Groups API.

Client Features:
  - HTTP client with 30-second timeout
  - HTTP Basic authentication (application ID and secret)
  - JSON:API document decoding via goccy/go-json
  - Context support for cancellation and timeouts

There is deliberately no retry or backoff: a failed request fails the run.
The job is re-runnable from scratch, so resuming a half-fetched collection
is worth less than surfacing the failure immediately.

Related Files:
  - pco_groups.go: Paginated group collection
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/congregate/internal/config"
	"github.com/tomtom215/congregate/internal/models/pco"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
// This prevents unbounded memory allocation when reading large error responses
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB)
// Returns the body content or a placeholder message if reading fails
// Uses io.LimitReader to prevent unbounded memory allocation
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	// If we hit the limit, indicate truncation
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// TransportError reports a failed Planning Center API request. It covers both
// connection-level failures and non-success HTTP statuses. StatusCode is zero
// when the request never completed.
type TransportError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("planning center request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("planning center request to %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Unwrap returns the underlying transport failure, if any.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// GroupFetcher defines the upstream side of a sync run.
//
// Implemented by PCOClient for production use and by stubs in tests. The
// returned page holds the full flattened collection: every group resource and
// every sideloaded resource across all pages, in API order.
type GroupFetcher interface {
	FetchAllGroups(ctx context.Context) (*pco.Collection, error)
}

// PCOClient handles communication with the Planning Center Groups API.
//
// Authentication uses a Personal Access Token pair sent as HTTP Basic
// credentials: the application ID as username and the secret as password.
//
// Thread Safety: Safe for concurrent use. Each request creates its own HTTP request.
//
// Example:
//
//	client := sync.NewPCOClient(&cfg.PCO)
//	collection, err := client.FetchAllGroups(ctx)
type PCOClient struct {
	baseURL string
	appID   string
	secret  string
	client  *http.Client
}

// NewPCOClient creates a new Planning Center API client with the provided
// configuration. The client uses a 30-second HTTP timeout.
func NewPCOClient(cfg *config.PCOConfig) *PCOClient {
	return &PCOClient{
		baseURL: cfg.URL,
		appID:   cfg.AppID,
		secret:  cfg.Secret,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// fetchDocument performs a single authenticated GET against the given URL and
// decodes the JSON:API document. The URL must be complete: pagination URLs
// returned by the API are followed exactly as given, with no parameters
// re-applied.
//
// Returns *TransportError when the request fails or the status is outside 2xx.
func (c *PCOClient) fetchDocument(ctx context.Context, reqURL string) (*pco.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.appID, c.secret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body := readBodyForError(resp.Body)
		return nil, &TransportError{URL: reqURL, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var doc pco.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", reqURL, err)
	}

	return &doc, nil
}
