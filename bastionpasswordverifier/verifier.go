// Package bastionpasswordverifier checks password strength before a password
// is hashed and stored.
package bastionpasswordverifier

import (
	"strings"
	"unicode/utf8"

	"go.inout.gg/bastion/internal/sliceutil"
)

var (
	_ PasswordVerifier = (*passwordVerifier)(nil)
	_ error            = (*PasswordVerificationError)(nil)
)

// DefaultMinLength is the minimum password length in characters.
const DefaultMinLength = 8

type Reason string

const (
	ReasonPasswordTooShort     Reason = "Password is too short"
	ReasonMissingRequiredChars Reason = "Password is missing required characters"
)

type PasswordVerificationError struct {
	Reasons []Reason
}

func (e *PasswordVerificationError) Error() string {
	return "bastion/passwordverifier: " + strings.Join(
		sliceutil.Map(e.Reasons, func(r Reason) string { return string(r) }),
		", ",
	)
}

type Config struct {
	// MinLength is the minimum length of the password in characters.
	MinLength int

	// RequiredChars is the list of required characters.
	RequiredChars PasswordRequiredChars
}

// NewConfig creates a new Config with defaults.
//
// cfgs modifiers can be used to optionally override the defaults.
func NewConfig(cfgs ...func(*Config)) *Config {
	config := &Config{}
	for _, f := range cfgs {
		f(config)
	}

	config.defaults()

	return config
}

// WithMinLength sets the minimum password length.
func WithMinLength(l int) func(*Config) {
	return func(c *Config) { c.MinLength = l }
}

// WithRequiredChars sets the required character groups.
func WithRequiredChars(chars PasswordRequiredChars) func(*Config) {
	return func(c *Config) { c.RequiredChars = chars }
}

func (c *Config) defaults() {
	if c.MinLength == 0 {
		c.MinLength = DefaultMinLength
	}
}

// PasswordVerifier verifies strongness of the password.
type PasswordVerifier interface {
	Verify(password string) error
}

type passwordVerifier struct {
	config *Config
}

// New creates a new PasswordVerifier. A nil config uses the defaults.
func New(config *Config) PasswordVerifier {
	if config == nil {
		config = NewConfig()
	}

	return &passwordVerifier{config}
}

// Verify returns a *PasswordVerificationError listing every failed rule.
func (v *passwordVerifier) Verify(password string) error {
	var reasons []Reason

	if utf8.RuneCountInString(password) < v.config.MinLength {
		reasons = append(reasons, ReasonPasswordTooShort)
	}

	for _, group := range v.config.RequiredChars {
		if !strings.ContainsAny(password, group) {
			reasons = append(reasons, ReasonMissingRequiredChars)
			break
		}
	}

	if len(reasons) > 0 {
		return &PasswordVerificationError{Reasons: reasons}
	}

	return nil
}
