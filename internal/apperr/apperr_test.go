package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("loading item: %w", NotFound("item not found"))

	if !errors.Is(err, ErrNotFound) {
		t.Error("expected wrapped not-found error to match ErrNotFound")
	}
	if errors.Is(err, ErrPermission) {
		t.Error("not-found error must not match ErrPermission")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{Validation("bad"), KindValidation},
		{fmt.Errorf("wrapped: %w", Auth("no session")), KindAuth},
		{Permission("nope"), KindPermission},
		{Conflict("taken", errors.New("unique")), KindConflict},
		{errors.New("disk on fire"), KindInternal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMessageOfHidesInternal(t *testing.T) {
	if _, ok := MessageOf(errors.New("sql: connection refused")); ok {
		t.Error("expected unclassified error to have no client message")
	}

	msg, ok := MessageOf(fmt.Errorf("x: %w", Validation("name required")))
	if !ok || msg != "name required" {
		t.Errorf("MessageOf = %q, %v; want %q, true", msg, ok, "name required")
	}
}

func TestConflictUnwraps(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed")
	err := Conflict("username already taken", cause)

	if !errors.Is(err, cause) {
		t.Error("expected conflict to unwrap to its cause")
	}
}
