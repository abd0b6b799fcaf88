package bastionuser

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/bastion"
	"go.inout.gg/bastion/bastionpasswordverifier"
	"go.inout.gg/bastion/internal/dbsqlc"
	"go.inout.gg/bastion/internal/testutil"
	"go.inout.gg/bastion/password"
)

// legacyRecord is "legacy-password" hashed with 100000 iterations.
const legacyRecord = "pbkdf2_sha256$100000$oldsalt12345$9CouUoxf2BRY0xAtbqX9hVpFn/LjV16v2uwLUxqQh+g="

func newHandler(t *testing.T, opts ...func(*Config)) (*Handler, *testutil.MemDriver) {
	t.Helper()

	drv := testutil.NewMemDriver()

	return NewHandler(drv, NewConfig(opts...)), drv
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("register user", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		h, drv := newHandler(t)

		// Act
		user, err := h.CreateUser(ctx, NewUserData(" Test@Test.org ", "test", "MySecurePassword123!"))
		require.NoError(t, err)

		// Assert
		assert.Equal(t, "test@test.org", user.Email)
		assert.Equal(t, "test", user.Username)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsVerified)
		assert.False(t, user.IsSuperuser)
		assert.False(t, user.IsStaff)
		assert.Equal(t, uuid.Version(7), user.ID.Version())

		assert.True(t, strings.HasPrefix(user.PasswordHash, "pbkdf2_sha256$150000$"))
		assert.True(t, password.Verify(user.PasswordHash, "MySecurePassword123!"))
		assert.True(t, h.VerifyPassword(user, "MySecurePassword123!"))
		assert.False(t, h.VerifyPassword(user, "WrongPassword456!"))

		users := drv.Users()
		require.Len(t, users, 1)
		assert.Equal(t, user.PasswordHash, users[0].Password)
	})

	t.Run("email already taken", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		h, drv := newHandler(t)

		_, err := h.CreateUser(ctx, NewUserData("test@test.org", "first", "password"))
		require.NoError(t, err)

		_, err = h.CreateUser(ctx, NewUserData("TEST@test.org", "second", "password"))
		require.ErrorIs(t, err, bastion.ErrEmailAlreadyTaken)
		assert.Len(t, drv.Users(), 1)
	})

	t.Run("username already taken", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		h, drv := newHandler(t)

		_, err := h.CreateUser(ctx, NewUserData("first@test.org", "test", "password"))
		require.NoError(t, err)

		_, err = h.CreateUser(ctx, NewUserData("second@test.org", "test", "password"))
		require.ErrorIs(t, err, bastion.ErrUsernameAlreadyTaken)
		assert.Len(t, drv.Users(), 1)
	})

	t.Run("weak password", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		h, drv := newHandler(t, WithPasswordVerifier(bastionpasswordverifier.New(nil)))

		_, err := h.CreateUser(ctx, NewUserData("test@test.org", "test", "short"))

		var verr *bastionpasswordverifier.PasswordVerificationError
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, drv.Users())
	})
}

func TestCreateSuperuser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, _ := newHandler(t)

	user, err := h.CreateSuperuser(ctx, "admin@test.org", "admin", "MySecurePassword123!")
	require.NoError(t, err)

	assert.True(t, user.IsActive)
	assert.True(t, user.IsVerified)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsStaff)

	authenticated, err := h.Authenticate(ctx, "admin", "MySecurePassword123!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, drv := newHandler(t)

	user, err := h.CreateUser(ctx, NewUserData("test@test.org", "test", "MySecurePassword123!"))
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		authenticated, err := h.Authenticate(ctx, "test", "MySecurePassword123!")
		require.NoError(t, err)
		assert.Equal(t, user.ID, authenticated.ID)
	})

	t.Run("by email, case-insensitive", func(t *testing.T) {
		authenticated, err := h.Authenticate(ctx, "Test@Test.org", "MySecurePassword123!")
		require.NoError(t, err)
		assert.Equal(t, user.ID, authenticated.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := h.Authenticate(ctx, "test", "WrongPassword456!")
		require.ErrorIs(t, err, bastion.ErrInvalidCredentials)
	})

	t.Run("unknown user is indistinguishable from wrong password", func(t *testing.T) {
		_, err := h.Authenticate(ctx, "nobody", "MySecurePassword123!")
		require.ErrorIs(t, err, bastion.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		_, err := h.Deactivate(ctx, user.ID)
		require.NoError(t, err)

		_, err = h.Authenticate(ctx, "test", "MySecurePassword123!")
		require.ErrorIs(t, err, bastion.ErrInactiveAccount)

		// A wrong password does not reveal the account state.
		_, err = h.Authenticate(ctx, "test", "WrongPassword456!")
		require.ErrorIs(t, err, bastion.ErrInvalidCredentials)

		_, err = h.Activate(ctx, user.ID)
		require.NoError(t, err)

		_, err = h.Authenticate(ctx, "test", "MySecurePassword123!")
		require.NoError(t, err)
	})

	t.Run("updates last login", func(t *testing.T) {
		later := time.Now().Add(time.Hour)
		drv.Now = func() time.Time { return later }
		t.Cleanup(func() { drv.Now = time.Now })

		authenticated, err := h.Authenticate(ctx, "test", "MySecurePassword123!")
		require.NoError(t, err)
		assert.Equal(t, later, authenticated.LastLogin)
	})

	t.Run("malformed stored hash", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		drv.PutUser(dbsqlc.BastionUser{
			ID:       id,
			Email:    "broken@test.org",
			Username: "broken",
			Password: "not-a-valid-record",
			IsActive: true,
		})

		_, err := h.Authenticate(ctx, "broken", "not-a-valid-record")
		require.ErrorIs(t, err, bastion.ErrInvalidCredentials)
	})
}

// countingHasher counts the calls made to the default hasher.
type countingHasher struct {
	hashes   atomic.Int32
	verifies atomic.Int32
}

func (c *countingHasher) Hash(pw string) string {
	c.hashes.Add(1)
	return password.DefaultPasswordHasher.Hash(pw)
}

func (c *countingHasher) Verify(hashedPassword, pw string) bool {
	c.verifies.Add(1)
	return password.DefaultPasswordHasher.Verify(hashedPassword, pw)
}

func (c *countingHasher) NeedsRehash(hashedPassword string) bool {
	return password.DefaultPasswordHasher.NeedsRehash(hashedPassword)
}

func TestAuthenticateUnknownUserCost(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hasher := &countingHasher{}
	h, _ := newHandler(t, WithPasswordHasher(hasher))

	// The dummy record is derived when the handler is created.
	require.Equal(t, int32(1), hasher.hashes.Load())

	for range 2 {
		_, err := h.Authenticate(ctx, "nobody", "MySecurePassword123!")
		require.ErrorIs(t, err, bastion.ErrInvalidCredentials)
	}

	// Every unknown identifier costs exactly one verification, no hashing.
	assert.Equal(t, int32(1), hasher.hashes.Load())
	assert.Equal(t, int32(2), hasher.verifies.Load())
}

func TestAuthenticateUpgradesLegacyHash(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, drv := newHandler(t)

	id := uuid.Must(uuid.NewV7())
	drv.PutUser(dbsqlc.BastionUser{
		ID:       id,
		Email:    "legacy@test.org",
		Username: "legacy",
		Password: legacyRecord,
		IsActive: true,
	})

	require.True(t, password.NeedsRehash(legacyRecord))

	user, err := h.Authenticate(ctx, "legacy", "legacy-password")
	require.NoError(t, err)

	assert.NotEqual(t, legacyRecord, user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "pbkdf2_sha256$150000$"))
	assert.False(t, password.NeedsRehash(user.PasswordHash))

	// The upgraded record keeps accepting the same password.
	_, err = h.Authenticate(ctx, "legacy", "legacy-password")
	require.NoError(t, err)

	stored, err := h.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)
}

func TestAuthenticateKeepsConcurrentPasswordChange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, drv := newHandler(t)

	id := uuid.Must(uuid.NewV7())
	legacy := dbsqlc.BastionUser{
		ID:       id,
		Email:    "legacy@test.org",
		Username: "legacy",
		Password: legacyRecord,
		IsActive: true,
	}
	drv.PutUser(legacy)

	changed := password.Hash("NewPassword789!")

	// The password is changed after the legacy record has been verified,
	// but before it is upgraded.
	drv.OnBegin = func() {
		u := legacy
		u.Password = changed
		drv.PutUser(u)
	}

	_, err := h.Authenticate(ctx, "legacy", "legacy-password")
	require.NoError(t, err)

	stored, err := h.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, changed, stored.PasswordHash)
	assert.False(t, password.Verify(stored.PasswordHash, "legacy-password"))

	drv.OnBegin = nil

	_, err = h.Authenticate(ctx, "legacy", "legacy-password")
	require.ErrorIs(t, err, bastion.ErrInvalidCredentials)
}

func TestAuthenticateDoesNotUpgradeOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, drv := newHandler(t)

	id := uuid.Must(uuid.NewV7())
	drv.PutUser(dbsqlc.BastionUser{
		ID:       id,
		Email:    "legacy@test.org",
		Username: "legacy",
		Password: legacyRecord,
		IsActive: true,
	})

	_, err := h.Authenticate(ctx, "legacy", "wrong-password")
	require.ErrorIs(t, err, bastion.ErrInvalidCredentials)

	stored, err := h.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, legacyRecord, stored.PasswordHash)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, _ := newHandler(t)

	user, err := h.CreateUser(ctx, NewUserData("test@test.org", "test", "old-password"))
	require.NoError(t, err)

	t.Run("wrong old password", func(t *testing.T) {
		_, err := h.ChangePassword(ctx, user.ID, "not-the-old-password", "new-password")
		require.ErrorIs(t, err, bastion.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := h.ChangePassword(ctx, uuid.Must(uuid.NewV7()), "old-password", "new-password")
		require.ErrorIs(t, err, bastion.ErrUserNotFound)
	})

	t.Run("changes password", func(t *testing.T) {
		changed, err := h.ChangePassword(ctx, user.ID, "old-password", "new-password")
		require.NoError(t, err)
		assert.NotEqual(t, user.PasswordHash, changed.PasswordHash)

		_, err = h.Authenticate(ctx, "test", "old-password")
		require.ErrorIs(t, err, bastion.ErrInvalidCredentials)

		_, err = h.Authenticate(ctx, "test", "new-password")
		require.NoError(t, err)
	})
}

func TestSetPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, _ := newHandler(t)

	user, err := h.CreateUser(ctx, NewUserData("test@test.org", "test", "old-password"))
	require.NoError(t, err)

	updated, err := h.SetPassword(ctx, user.ID, "パスワード123!🔒")
	require.NoError(t, err)
	assert.True(t, h.VerifyPassword(updated, "パスワード123!🔒"))
	assert.False(t, h.VerifyPassword(updated, "old-password"))

	_, err = h.SetPassword(ctx, uuid.Must(uuid.NewV7()), "password")
	require.ErrorIs(t, err, bastion.ErrUserNotFound)
}

func TestAccountFlags(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, _ := newHandler(t)

	user, err := h.CreateUser(ctx, NewUserData("test@test.org", "test", "password"))
	require.NoError(t, err)

	verified, err := h.VerifyEmail(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	deactivated, err := h.Deactivate(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	activated, err := h.Activate(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	_, err = h.VerifyEmail(ctx, uuid.Must(uuid.NewV7()))
	require.ErrorIs(t, err, bastion.ErrUserNotFound)
}

func TestLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h, _ := newHandler(t)

	user, err := h.CreateUser(ctx, NewUserData("test@test.org", "test", "password"))
	require.NoError(t, err)

	found, err := h.FindByEmail(ctx, "TEST@test.org")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	found, err = h.FindByUsername(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = h.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, bastion.ErrUserNotFound)

	_, err = h.FindByID(ctx, uuid.Must(uuid.NewV7()))
	require.ErrorIs(t, err, bastion.ErrUserNotFound)

	exists, err := h.EmailExists(ctx, "test@test.org")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = h.EmailExists(ctx, "nobody@test.org")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = h.UsernameExists(ctx, "test")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = h.UsernameExists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}
