package core

import (
	"strings"

	"github.com/google/uuid"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanStringPtr is CleanString for optional fields; nil stays nil.
func CleanStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := CleanString(*s)
	return &cleaned
}

// NormalizeID returns the canonical form of a row id: UUIDs in their lowercase hyphenated
// form, anything else trimmed.
func NormalizeID(id string) string {
	id = CleanString(id)
	if uid, err := uuid.Parse(id); err == nil {
		return uid.String()
	}
	return id
}
