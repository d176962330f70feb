// Package apperr classifies failures of core operations so the dispatch layer
// can turn them into client responses without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the classification of an error.
type Kind string

// Error kinds.
const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "authentication"
	KindPermission Kind = "permission"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// Error is a classified error carrying a message that is safe to show to the
// caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind, so that
// errors.Is(err, apperr.ErrNotFound) matches any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrPermission = &Error{Kind: KindPermission}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
)

// Validation returns a caller-fixable input error.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// Auth returns an error for a missing or invalid principal.
func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

// Permission returns an error for an authenticated principal lacking access.
func Permission(msg string) *Error { return &Error{Kind: KindPermission, Message: msg} }

// NotFound returns an error for a missing resource.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict returns an error for a uniqueness violation.
func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}

// KindOf returns the kind of the first classified error in err's chain, or
// KindInternal if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message of a classified error. The second
// result is false for unclassified errors, whose text must not be exposed.
func MessageOf(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}
