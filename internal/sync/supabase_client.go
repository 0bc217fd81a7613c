// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

/*
supabase_client.go - Supabase PostgREST Writer

This file provides the SupabaseClient struct implementing the destination
side of a sync run over Supabase's PostgREST interface.

Write Semantics:
  - Insert: POST rows as a JSON array, Prefer: return=minimal
  - Upsert: POST with Prefer: resolution=merge-duplicates and an on_conflict
    query parameter naming the natural key column
  - DeleteAll: DELETE filtered on the natural key being non-empty, which
    PostgREST requires instead of an unfiltered delete

Soft Failures:
PostgREST can report errors out-of-band from HTTP status, returning a JSON
error object on an otherwise successful response. Every write therefore
decodes the response body and treats a non-empty error message as failure
regardless of status code.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/congregate/internal/config"
	"github.com/tomtom215/congregate/internal/models"
)

// StorageError reports a rejected destination write. Message and Code carry
// the backend's error payload when one was decodable; StatusCode is the HTTP
// status of the response. Err is set for connection-level failures.
type StorageError struct {
	Operation  string
	Table      string
	StatusCode int
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("supabase %s on table %s failed: %v", e.Operation, e.Table, e.Err)
	}
	if e.Code != "" {
		return fmt.Sprintf("supabase %s on table %s failed with status %d: %s (code %s)",
			e.Operation, e.Table, e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("supabase %s on table %s failed with status %d: %s",
		e.Operation, e.Table, e.StatusCode, e.Message)
}

// Unwrap returns the underlying transport failure, if any.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// postgrestError is the error payload PostgREST returns on rejected requests.
type postgrestError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// SupabaseClient writes group rows to a Supabase table through PostgREST.
//
// Authentication sends the service role key both as the apikey header and as
// a bearer token, the pair Supabase expects from server-side clients.
//
// Thread Safety: Safe for concurrent use. Each request creates its own HTTP request.
type SupabaseClient struct {
	baseURL    string
	serviceKey string
	table      string
	client     *http.Client
}

// NewSupabaseClient creates a new Supabase PostgREST client with the provided
// configuration. The client uses a 30-second HTTP timeout.
func NewSupabaseClient(cfg *config.SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		table:      cfg.Table,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Table returns the destination table name.
func (c *SupabaseClient) Table() string {
	return c.table
}

// DeleteAll removes every row from the destination table.
//
// PostgREST refuses unfiltered deletes, so the filter matches every row whose
// natural key is non-empty, which by construction is all of them.
func (c *SupabaseClient) DeleteAll(ctx context.Context) error {
	params := url.Values{}
	params.Set(ConflictKey, "neq.")

	req, err := c.newRequest(ctx, http.MethodDelete, params, nil)
	if err != nil {
		return &StorageError{Operation: "delete", Table: c.table, Err: err}
	}

	return c.do(req, "delete")
}

// Insert appends rows to the destination table as one bulk POST.
func (c *SupabaseClient) Insert(ctx context.Context, rows []*models.GroupRow) error {
	return c.writeRows(ctx, "insert", rows, nil)
}

// Upsert inserts rows, updating in place any row whose conflictKey column
// already holds the same value.
func (c *SupabaseClient) Upsert(ctx context.Context, rows []*models.GroupRow, conflictKey string) error {
	params := url.Values{}
	params.Set("on_conflict", conflictKey)
	return c.writeRows(ctx, "upsert", rows, params)
}

// writeRows marshals rows and POSTs them to the table endpoint.
func (c *SupabaseClient) writeRows(ctx context.Context, operation string, rows []*models.GroupRow, params url.Values) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return &StorageError{Operation: operation, Table: c.table, Err: fmt.Errorf("failed to marshal rows: %w", err)}
	}

	req, err := c.newRequest(ctx, http.MethodPost, params, bytes.NewReader(payload))
	if err != nil {
		return &StorageError{Operation: operation, Table: c.table, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	prefer := "return=minimal"
	if operation == "upsert" {
		prefer = "resolution=merge-duplicates,return=minimal"
	}
	req.Header.Set("Prefer", prefer)

	return c.do(req, operation)
}

// newRequest builds an authenticated request against the table endpoint.
func (c *SupabaseClient) newRequest(ctx context.Context, method string, params url.Values, body *bytes.Reader) (*http.Request, error) {
	reqURL := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, c.table)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, reqURL, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, reqURL, http.NoBody)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	return req, nil
}

// do executes the request and interprets the response.
//
// Failure is either a non-2xx status or a decodable error object in the body.
// The latter check runs even on success statuses: with Prefer: return=minimal
// a healthy write returns an empty body, so any substantive payload is
// suspect and a decodable error message fails the operation.
func (c *SupabaseClient) do(req *http.Request, operation string) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return &StorageError{Operation: operation, Table: c.table, Err: err}
	}
	defer resp.Body.Close()

	body := readBodyForError(resp.Body)

	var backendErr postgrestError
	if len(body) > 0 {
		// Best effort: non-JSON bodies are reported raw below
		_ = json.Unmarshal(body, &backendErr)
	}

	success := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if success && backendErr.Message == "" {
		return nil
	}

	storageErr := &StorageError{
		Operation:  operation,
		Table:      c.table,
		StatusCode: resp.StatusCode,
		Message:    backendErr.Message,
		Code:       backendErr.Code,
	}
	if storageErr.Message == "" {
		storageErr.Message = string(body)
	}

	return storageErr
}
