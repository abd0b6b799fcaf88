// Package password implements the self-describing password hash record used
// to store user credentials.
//
// A record has the shape
//
//	pbkdf2_sha256$<iterations>$<salt>$<base64 derived key>
//
// and carries every parameter needed to verify it, so records produced with an
// older work factor remain verifiable after DefaultIterations changes.
// NeedsRehash reports such records so callers can re-hash them on the next
// successful login.
//
// All functions are safe for concurrent use. Hashing is deliberately
// CPU-expensive, keep it out of database transactions.
package password

import "go.inout.gg/foundations/debug"

// PasswordHasher is a hashing algorithm to hash password securely.
type PasswordHasher interface {
	// Hash returns a new hash record for password.
	Hash(password string) string

	// Verify reports whether password matches hashedPassword.
	// Malformed records never match.
	Verify(hashedPassword string, password string) bool

	// NeedsRehash reports whether hashedPassword should be replaced with
	// a fresh Hash result.
	NeedsRehash(hashedPassword string) bool
}

// DefaultPasswordHasher is the default password hashing algorithm used across.
//
//nolint:gochecknoglobals
var DefaultPasswordHasher PasswordHasher = NewPBKDF2PasswordHasher()

//nolint:gochecknoglobals
var d = debug.Debuglog("bastion/password")
