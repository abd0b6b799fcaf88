package bastionpasswordverifier

import (
	"strings"

	"go.inout.gg/bastion/internal/sliceutil"
)

// PasswordRequiredChars represents groups of characters of which at least one
// character per group must be present in the password.
type PasswordRequiredChars []string

// Parse reads groups separated by "::", e.g. "0123456789::!@#$%".
// Empty and repeated groups are skipped.
func (s *PasswordRequiredChars) Parse(source string) error {
	parts := sliceutil.Unique(sliceutil.Filter(
		strings.Split(source, "::"),
		func(s string) bool { return len(s) > 0 },
	))

	*s = PasswordRequiredChars(parts)

	return nil
}
