// Congregate - Planning Center to Supabase Group Synchronization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/congregate

package validation

import (
	"strings"
	"testing"
)

type testSettings struct {
	Endpoint  string `validate:"required,http_url"`
	Secret    string `validate:"required"`
	BatchSize int    `validate:"min=1"`
}

// TestValidateStructPasses verifies a fully valid struct produces no error
func TestValidateStructPasses(t *testing.T) {
	s := testSettings{
		Endpoint:  "https://example.supabase.co",
		Secret:    "service-key",
		BatchSize: 200,
	}

	if err := ValidateStruct(&s); err != nil {
		t.Errorf("ValidateStruct = %v, want nil", err)
	}
}

// TestValidateStructRequired verifies missing required fields are reported by name
func TestValidateStructRequired(t *testing.T) {
	s := testSettings{
		Endpoint:  "https://example.supabase.co",
		BatchSize: 200,
	}

	err := ValidateStruct(&s)
	if err == nil {
		t.Fatal("ValidateStruct = nil, want error for missing Secret")
	}

	errs := err.Errors()
	if len(errs) != 1 {
		t.Fatalf("len(Errors()) = %d, want 1", len(errs))
	}
	if errs[0].Field() != "Secret" {
		t.Errorf("Field() = %q, want Secret", errs[0].Field())
	}
	if errs[0].Tag() != "required" {
		t.Errorf("Tag() = %q, want required", errs[0].Tag())
	}
	if got := errs[0].Error(); got != "Secret is required" {
		t.Errorf("Error() = %q, want %q", got, "Secret is required")
	}
}

// TestValidateStructURLFormat verifies http_url rejects non-HTTP values
func TestValidateStructURLFormat(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		valid    bool
	}{
		{"https url", "https://example.supabase.co", true},
		{"http url", "http://localhost:54321", true},
		{"missing scheme", "example.supabase.co", false},
		{"wrong scheme", "postgres://db:5432", false},
		{"garbage", "not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettings{
				Endpoint:  tt.endpoint,
				Secret:    "service-key",
				BatchSize: 1,
			}

			err := ValidateStruct(&s)
			if tt.valid && err != nil {
				t.Errorf("ValidateStruct(%q) = %v, want nil", tt.endpoint, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidateStruct(%q) = nil, want error", tt.endpoint)
			}
		})
	}
}

// TestValidateStructMin verifies numeric minimum translation
func TestValidateStructMin(t *testing.T) {
	s := testSettings{
		Endpoint:  "https://example.supabase.co",
		Secret:    "service-key",
		BatchSize: 0,
	}

	err := ValidateStruct(&s)
	if err == nil {
		t.Fatal("ValidateStruct = nil, want error for BatchSize 0")
	}
	if got := err.Error(); got != "BatchSize must be at least 1" {
		t.Errorf("Error() = %q, want %q", got, "BatchSize must be at least 1")
	}
}

// TestValidateStructCombinesMessages verifies multiple failures join with semicolons
func TestValidateStructCombinesMessages(t *testing.T) {
	s := testSettings{}

	err := ValidateStruct(&s)
	if err == nil {
		t.Fatal("ValidateStruct = nil, want error")
	}
	if got := len(err.Errors()); got != 3 {
		t.Errorf("len(Errors()) = %d, want 3", got)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("combined message should join with semicolons: %q", err.Error())
	}
}
