package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/erazemk/zaloga/internal/apperr"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      any
		want    int
		wantErr bool
	}{
		{nil, 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"7", 7, false},
		{" 12 ", 12, false},
		{json.Number("5"), 5, false},
		{json.Number("5.0"), 5, false},
		{float64(3), 3, false},
		{0, 0, false},
		{"-1", 0, true},
		{json.Number("-1"), 0, true},
		{json.Number("2.5"), 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
		{true, 0, true},
		{[]any{1}, 0, true},
		{json.Number("99999999999"), 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCount(tt.in, "Quantity")
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCount(%#v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("ParseCount(%#v) error is not a validation error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseCount(%#v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeItemName(t *testing.T) {
	tests := []struct {
		in      any
		want    string
		wantErr bool
	}{
		{"Flour", "Flour", false},
		{"  Eggs ", "Eggs", false},
		{"", "", true},
		{"   ", "", true},
		{"x", "", true},
		{nil, "", true},
		{json.Number("42"), "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeItemName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeItemName(%#v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeItemName(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeUnit(t *testing.T) {
	u, err := NormalizeUnit(" kg ")
	if err != nil || u == nil || *u != "kg" {
		t.Errorf("NormalizeUnit(\" kg \") = %v, %v; want kg", u, err)
	}

	for _, in := range []any{nil, "", "  "} {
		u, err := NormalizeUnit(in)
		if err != nil || u != nil {
			t.Errorf("NormalizeUnit(%#v) = %v, %v; want nil, nil", in, u, err)
		}
	}

	if _, err := NormalizeUnit(json.Number("3")); err == nil {
		t.Error("expected error for non-string unit")
	}
}

func TestNormalizeInventoryName(t *testing.T) {
	if _, err := NormalizeInventoryName(" K "); err == nil {
		t.Error("expected error for one-character name")
	}
	got, err := NormalizeInventoryName("  Kitchen ")
	if err != nil || got != "Kitchen" {
		t.Errorf("NormalizeInventoryName = %q, %v; want Kitchen", got, err)
	}
}
