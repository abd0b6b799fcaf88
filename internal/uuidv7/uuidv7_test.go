package uuidv7_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/bastion/internal/uuidv7"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		id := uuidv7.Must()
		parsed, err := uuidv7.FromString(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("rejects other versions", func(t *testing.T) {
		t.Parallel()

		_, err := uuidv7.FromString(uuid.New().String())
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		_, err := uuidv7.FromString("not-a-uuid")
		require.Error(t, err)
	})
}
