package validation

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentifier is returned for empty identifiers or identifiers
// with characters outside the allowed set.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// IsValidIdentifierChar checks if a character is valid for identifiers
// (alphanumeric, hyphen, or underscore).
//
// Tab IDs, tool IDs and scenario names share this character set.
func IsValidIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_'
}

// IsValidIdentifier reports whether s is non-empty and made of identifier
// characters only.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !IsValidIdentifierChar(ch) {
			return false
		}
	}
	return true
}

// ValidateIdentifier returns an error naming field when value is not a
// valid identifier.
func ValidateIdentifier(field, value string) error {
	if !IsValidIdentifier(value) {
		return fmt.Errorf("%w: %s %q", ErrInvalidIdentifier, field, value)
	}
	return nil
}
