package random_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/bastion/internal/random"
)

func TestSecureAlphanumericString(t *testing.T) {
	t.Parallel()

	t.Run("returns exactly l characters", func(t *testing.T) {
		t.Parallel()

		for _, l := range []int{1, 12, 64, 257} {
			s, err := random.SecureAlphanumericString(l)
			require.NoError(t, err)
			assert.Len(t, s, l)
		}
	})

	t.Run("uses the alphanumeric alphabet only", func(t *testing.T) {
		t.Parallel()

		s, err := random.SecureAlphanumericString(4096)
		require.NoError(t, err)

		for _, r := range s {
			assert.True(t, strings.ContainsRune(
				"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", r,
			), "unexpected rune %q", r)
		}
	})

	t.Run("successive values differ", func(t *testing.T) {
		t.Parallel()

		a, err := random.SecureAlphanumericString(12)
		require.NoError(t, err)
		b, err := random.SecureAlphanumericString(12)
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		t.Parallel()

		_, err := random.SecureAlphanumericString(0)
		require.Error(t, err)
	})
}

func TestSecureHexString(t *testing.T) {
	t.Parallel()

	s, err := random.SecureHexString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)
}
