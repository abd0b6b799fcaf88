package driverpgxv5_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/bastion"
	"go.inout.gg/bastion/bastionuser"
	"go.inout.gg/bastion/db/driverpgxv5"
	"go.inout.gg/bastion/internal/testutil"
	"go.inout.gg/bastion/password"
)

func TestDriver(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustDB(ctx, t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	drv := driverpgxv5.New(logger, db.Pool())
	h := bastionuser.NewHandler(drv, bastionuser.NewConfig(bastionuser.WithLogger(logger)))

	require.NoError(t, drv.Ping(ctx))

	user, err := h.CreateUser(ctx, bastionuser.NewUserData("John@Example.com", "john", "MySecurePassword123!"))
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("unique constraints", func(t *testing.T) {
		_, err := h.CreateUser(ctx, bastionuser.NewUserData("john@example.com", "other", "MySecurePassword123!"))
		require.ErrorIs(t, err, bastion.ErrEmailAlreadyTaken)

		_, err = h.CreateUser(ctx, bastionuser.NewUserData("other@example.com", "john", "MySecurePassword123!"))
		require.ErrorIs(t, err, bastion.ErrUsernameAlreadyTaken)
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := h.Authenticate(ctx, "JOHN@example.com", "MySecurePassword123!")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = h.Authenticate(ctx, "john", "WrongPassword456!")
		require.ErrorIs(t, err, bastion.ErrInvalidCredentials)
	})

	t.Run("change password in transaction", func(t *testing.T) {
		got, err := h.ChangePassword(ctx, user.ID, "MySecurePassword123!", "AnotherPassword789!")
		require.NoError(t, err)
		assert.True(t, password.Verify(got.PasswordHash, "AnotherPassword789!"))
	})

	t.Run("flags", func(t *testing.T) {
		got, err := h.Deactivate(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		got, err = h.VerifyEmail(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.IsVerified)
		assert.False(t, got.IsActive)
	})

	t.Run("lookups", func(t *testing.T) {
		exists, err := h.UsernameExists(ctx, "john")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = h.EmailExists(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = h.FindByUsername(ctx, "nobody")
		require.ErrorIs(t, err, bastion.ErrUserNotFound)
	})
}
