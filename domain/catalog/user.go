package catalog

import (
	"strings"

	pkgerrors "cinegraph-backend/pkg/errors"
)

// Username is a value object for a case-insensitive user identity.
// All comparisons and storage keys use the lowercased form.
type Username struct {
	value string
}

// NewUsername normalizes and validates a raw username
func NewUsername(raw string) (Username, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Username{}, pkgerrors.NewValidationError("username cannot be empty")
	}
	if len(trimmed) > 64 {
		return Username{}, pkgerrors.NewValidationError("username cannot exceed 64 characters")
	}
	return Username{value: strings.ToLower(trimmed)}, nil
}

// String returns the normalized username
func (u Username) String() string {
	return u.value
}

// Equals checks if two usernames refer to the same identity
func (u Username) Equals(other Username) bool {
	return u.value == other.value
}

// IsZero checks if the Username is the zero value
func (u Username) IsZero() bool {
	return u.value == ""
}

// User is the engine's read-only view of an account. Accounts are owned by
// the auth subsystem; the engine reads identity and writes preference edges.
type User struct {
	Username    Username
	DisplayName string
	AvatarKey   string
}
