package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/erazemk/zaloga/internal/apperr"
)

// Minimum field lengths, counted in characters after trimming.
const (
	MinUsernameLength      = 3
	MinPasswordLength      = 6
	MinInventoryNameLength = 2
	MinItemNameLength      = 2
)

// NormalizeUsername trims and validates a username.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return "", apperr.Validation("Username must be at least 3 characters.")
	}
	return username, nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperr.Validation("Password must be at least 6 characters.")
	}
	return nil
}

// NormalizeInventoryName trims and validates an inventory name.
func NormalizeInventoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinInventoryNameLength {
		return "", apperr.Validation("Inventory name must be at least 2 characters.")
	}
	return name, nil
}

// NormalizeItemName trims and validates a raw item name.
func NormalizeItemName(v any) (string, error) {
	var name string
	switch s := v.(type) {
	case nil:
	case string:
		name = strings.TrimSpace(s)
	default:
		return "", apperr.Validation("Item name must be a string.")
	}
	if utf8.RuneCountInString(name) < MinItemNameLength {
		return "", apperr.Validation("Item name must be at least 2 characters.")
	}
	return name, nil
}

// NormalizeUnit trims a raw unit label. Null and blank labels become nil.
func NormalizeUnit(v any) (*string, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		return &s, nil
	default:
		return nil, apperr.Validation("Unit must be a string.")
	}
}

// NormalizeRole lowercases a role and coerces unknown values to manager.
func NormalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == RoleManager || role == RoleStaff {
		return role
	}
	return RoleManager
}

// ParseCount interprets a raw quantity-like value as a non-negative integer.
// Null and the empty string count as zero. Numeric strings and integral JSON
// numbers are accepted; anything else is a validation error naming label.
func ParseCount(v any, label string) (int, error) {
	notNumber := apperr.Validation(label + " must be a number.")

	var n int64
	switch x := v.(type) {
	case nil:
		return 0, nil
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, notNumber
		}
		n = parsed
	case json.Number:
		parsed, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
				return 0, notNumber
			}
			parsed = int64(f)
		}
		n = parsed
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
			return 0, notNumber
		}
		n = int64(x)
	case int:
		n = int64(x)
	case int64:
		n = x
	default:
		return 0, notNumber
	}

	if n < 0 {
		return 0, apperr.Validation(label + " cannot be negative.")
	}
	if n > math.MaxInt32 {
		return 0, apperr.Validation(label + " is too large.")
	}
	return int(n), nil
}
