package model

import (
	"errors"
	"testing"

	"github.com/erazemk/zaloga/internal/apperr"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", true},
		{"ab", "", true},
		{"  ab  ", "", true},
		{"bob", "bob", false},
		{"  bob  ", "bob", false},
		{"žan", "žan", false},
	}

	for _, tt := range tests {
		got, err := NormalizeUsername(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeUsername(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("NormalizeUsername(%q) error kind = %v, want validation", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"12345", true},
		{"123456", false},
		{"secret1", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"manager", RoleManager},
		{"staff", RoleStaff},
		{" Staff ", RoleStaff},
		{"MANAGER", RoleManager},
		{"", RoleManager},
		{"owner", RoleManager},
	}

	for _, tt := range tests {
		if got := NormalizeRole(tt.in); got != tt.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
