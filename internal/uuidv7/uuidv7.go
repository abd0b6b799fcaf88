// Package uuidv7 generates time-ordered user IDs.
package uuidv7

import (
	"fmt"

	"github.com/google/uuid"
	"go.inout.gg/foundations/must"
)

// Must returns a new random UUIDv7. It panics if there is an error.
func Must() uuid.UUID {
	return must.Must(uuid.NewV7())
}

// FromString parses a user ID. Only version 7 UUIDs are accepted.
func FromString(s string) (uuid.UUID, error) {
	uid, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("bastion: failed to parse UUID: %w", err)
	}

	if uid.Version() != 7 {
		return uuid.Nil, fmt.Errorf("bastion: unexpected UUID %v", uid.Version())
	}

	return uid, nil
}
