package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	"go.inout.gg/foundations/must"
	"golang.org/x/crypto/pbkdf2"

	"go.inout.gg/bastion/internal/random"
)

const (
	// Algorithm tags records produced by this package. Changing it is
	// a breaking format change.
	Algorithm = "pbkdf2_sha256"

	// DefaultIterations is the work factor of newly produced records.
	DefaultIterations = 150000

	// SaltLength is the number of alphanumeric characters in a salt.
	SaltLength = 12

	// KeyLength is the size of the derived key in bytes.
	KeyLength = 32
)

const (
	separator   = "$"
	recordParts = 4
)

var errInvalidParams = errors.New("bastion/password: invalid key derivation parameters")

var _ PasswordHasher = (*PBKDF2PasswordHasher)(nil)

// PBKDF2PasswordHasher hashes passwords with PBKDF2-HMAC-SHA256.
//
// It has no configuration: the work factor and sizes are package constants.
type PBKDF2PasswordHasher struct{}

// NewPBKDF2PasswordHasher returns a PBKDF2-HMAC-SHA256 password hasher.
func NewPBKDF2PasswordHasher() *PBKDF2PasswordHasher { return &PBKDF2PasswordHasher{} }

func (*PBKDF2PasswordHasher) Hash(password string) string { return Hash(password) }

func (*PBKDF2PasswordHasher) Verify(hashedPassword, password string) bool {
	return Verify(hashedPassword, password)
}

func (*PBKDF2PasswordHasher) NeedsRehash(hashedPassword string) bool {
	return NeedsRehash(hashedPassword)
}

// Hash hashes password with a fresh random salt and DefaultIterations.
//
// Hash panics if the system random source fails.
func Hash(password string) string {
	salt := must.Must(random.SecureAlphanumericString(SaltLength))
	return HashWithSalt(password, salt)
}

// HashWithSalt hashes password with the given salt and DefaultIterations.
// The result is deterministic for identical inputs.
//
// HashWithSalt panics if salt is empty. A record that cannot be derived is
// a programming error, never an empty or partial hash.
func HashWithSalt(password, salt string) string {
	key := must.Must(deriveKey(password, salt, DefaultIterations))
	return record{iterations: DefaultIterations, salt: salt, key: key}.String()
}

// Verify reports whether password matches the hashedPassword record.
//
// The record's own iteration count is used, not DefaultIterations.
// Records with any other shape than produced by Hash return false.
func Verify(hashedPassword, password string) bool {
	rec, ok := parseRecord(hashedPassword)
	if !ok {
		d("malformed password record")
		return false
	}

	key, err := deriveKey(password, rec.salt, rec.iterations)
	if err != nil {
		d("failed to derive key: %v", err)
		return false
	}

	return subtle.ConstantTimeCompare([]byte(key), []byte(rec.key)) == 1
}

// NeedsRehash reports whether hashedPassword is malformed or was produced
// with a work factor other than DefaultIterations.
func NeedsRehash(hashedPassword string) bool {
	rec, ok := parseRecord(hashedPassword)
	if !ok {
		return true
	}

	return rec.iterations != DefaultIterations
}

// record is a parsed hash record.
type record struct {
	iterations int
	salt       string
	key        string // base64 encoded
}

func (r record) String() string {
	return strings.Join([]string{
		Algorithm,
		strconv.Itoa(r.iterations),
		r.salt,
		r.key,
	}, separator)
}

// parseRecord splits s into a record. It returns false if s does not have
// exactly four fields, carries a foreign algorithm tag, an empty salt or an
// iteration count that is not a positive unsigned decimal.
//
// A leading "+" on the iteration count is rejected even though it denotes
// a valid number: Hash never writes one.
func parseRecord(s string) (record, bool) {
	parts := strings.Split(s, separator)
	if len(parts) != recordParts || parts[0] != Algorithm || parts[2] == "" {
		return record{}, false
	}

	iterations, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil || iterations == 0 {
		return record{}, false
	}

	return record{
		iterations: int(iterations),
		salt:       parts[2],
		key:        parts[3],
	}, true
}

// deriveKey returns the base64 encoded PBKDF2-HMAC-SHA256 key of password.
func deriveKey(password, salt string, iterations int) (string, error) {
	if salt == "" || iterations <= 0 {
		return "", errInvalidParams
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, KeyLength, sha256.New)

	return base64.StdEncoding.EncodeToString(key), nil
}
