package bastionuser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.inout.gg/foundations/debug"
	"go.inout.gg/foundations/sqldb"
	"golang.org/x/text/cases"

	"go.inout.gg/bastion"
	"go.inout.gg/bastion/db/driver"
	"go.inout.gg/bastion/internal/dbsqlc"
	"go.inout.gg/bastion/internal/uuidv7"
)

// ErrPasswordChanged is returned by ChangePassword when the stored password
// changed concurrently between verification and update. A hash upgrade on
// login is skipped in the same case.
var ErrPasswordChanged = errors.New("bastion/user: password changed concurrently")

const usernameUniqueConstraint = "bastion_users_username_key"

// CreateUserData describes a new user account.
//
// Use NewUserData to get the defaults of a regular account.
type CreateUserData struct {
	Email     string
	Username  string
	Password  string
	FirstName *string
	LastName  *string

	IsActive    bool
	IsVerified  bool
	IsSuperuser bool
	IsStaff     bool
}

// NewUserData returns the data of an active, unverified regular account.
func NewUserData(email, username, password string) CreateUserData {
	return CreateUserData{
		Email:    email,
		Username: username,
		Password: password,
		IsActive: true,
	}
}

// Handler manages user accounts.
type Handler struct {
	driver driver.Driver
	config *Config

	// dummyHash is verified against when no user matches an identifier,
	// so unknown identifiers cost as much as wrong passwords.
	dummyHash string
}

// NewHandler creates a new user handler.
//
// If config is nil, the default config is used.
func NewHandler(drv driver.Driver, config *Config) *Handler {
	if config == nil {
		config = NewConfig()
	}

	config.assert()

	h := Handler{
		driver: drv,
		config: config,
		dummyHash: config.PasswordHasher.Hash("bastion/dummy-password"),
	}

	debug.Assert(h.driver != nil, "driver must be set")

	return &h
}

// NormalizeEmail trims and case folds email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// CreateUser registers a new user account.
//
// It fails with bastion.ErrEmailAlreadyTaken or bastion.ErrUsernameAlreadyTaken
// if the email or the username is in use. The password is hashed before
// anything is written.
func (h *Handler) CreateUser(ctx context.Context, data CreateUserData) (*bastion.User, error) {
	email := NormalizeEmail(data.Email)
	username := strings.TrimSpace(data.Username)

	if err := h.ensureAvailable(ctx, email, username); err != nil {
		return nil, err
	}

	if err := h.verifyPasswordStrength(data.Password); err != nil {
		return nil, err
	}

	passwordHash := h.config.PasswordHasher.Hash(data.Password)

	row, err := h.driver.Queries().CreateUser(ctx, dbsqlc.CreateUserParams{
		ID:          uuidv7.Must(),
		Email:       email,
		Username:    username,
		Password:    passwordHash,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		IsActive:    data.IsActive,
		IsVerified:  data.IsVerified,
		IsSuperuser: data.IsSuperuser,
		IsStaff:     data.IsStaff,
	})
	if err != nil {
		// The availability check above is not atomic with the insert.
		if sqldb.IsUniqueViolationError(err) {
			d("unique violation on user creation")
			return nil, uniqueViolationError(err)
		}

		return nil, fmt.Errorf("bastion/user: failed to create user: %w", err)
	}

	h.config.Logger.InfoContext(
		ctx,
		"user created",
		slog.String("user_id", row.ID.String()),
		slog.Bool("superuser", row.IsSuperuser),
	)

	return toUser(row), nil
}

// CreateSuperuser registers an active, verified superuser with staff access.
func (h *Handler) CreateSuperuser(
	ctx context.Context,
	email, username, password string,
) (*bastion.User, error) {
	return h.CreateUser(ctx, CreateUserData{
		Email:       email,
		Username:    username,
		Password:    password,
		IsActive:    true,
		IsVerified:  true,
		IsSuperuser: true,
		IsStaff:     true,
	})
}

// Authenticate looks up a user by username or email and checks password.
//
// An unknown identifier and a wrong password both result in
// bastion.ErrInvalidCredentials. A correct password of a deactivated account
// results in bastion.ErrInactiveAccount.
//
// On success the stored hash is replaced if it was produced with outdated
// parameters, and the last login time is updated.
func (h *Handler) Authenticate(
	ctx context.Context,
	usernameOrEmail, password string,
) (*bastion.User, error) {
	q := h.driver.Queries()

	row, err := q.FindUserByUsernameOrEmail(ctx, dbsqlc.FindUserByUsernameOrEmailParams{
		Username: strings.TrimSpace(usernameOrEmail),
		Email:    NormalizeEmail(usernameOrEmail),
	})
	if err != nil {
		if sqldb.IsNotFoundError(err) {
			_ = h.config.PasswordHasher.Verify(h.dummyHash, password)

			d("user not found")

			return nil, bastion.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("bastion/user: failed to find user: %w", err)
	}

	if !h.config.PasswordHasher.Verify(row.Password, password) {
		d("password mismatch")
		return nil, bastion.ErrInvalidCredentials
	}

	if !row.IsActive {
		d("inactive account")
		return nil, bastion.ErrInactiveAccount
	}

	if h.config.PasswordHasher.NeedsRehash(row.Password) {
		row = h.rehash(ctx, row, password)
	}

	row, err = q.UpdateUserLastLogin(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("bastion/user: failed to update last login: %w", err)
	}

	return toUser(row), nil
}

// rehash replaces the stored password hash of row with a fresh one, unless
// the stored hash is no longer row.Password.
// Failures are logged and do not fail the login.
func (h *Handler) rehash(ctx context.Context, row dbsqlc.BastionUser, password string) dbsqlc.BastionUser {
	// Make sure that the password hashing is performed outside of the transaction
	// as it is an expensive operation.
	passwordHash := h.config.PasswordHasher.Hash(password)

	updated, err := h.replacePassword(ctx, row, passwordHash)
	if err != nil {
		h.config.Logger.WarnContext(
			ctx,
			"failed to upgrade password hash",
			slog.String("user_id", row.ID.String()),
			slog.Any("error", err),
		)

		return row
	}

	h.config.Logger.InfoContext(
		ctx,
		"password hash upgraded",
		slog.String("user_id", row.ID.String()),
	)

	return updated
}

// replacePassword swaps the stored hash of row for passwordHash if the
// stored hash still equals row.Password.
func (h *Handler) replacePassword(
	ctx context.Context,
	row dbsqlc.BastionUser,
	passwordHash string,
) (dbsqlc.BastionUser, error) {
	tx, err := h.driver.Begin(ctx)
	if err != nil {
		return row, fmt.Errorf("bastion/user: failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback(ctx) }()

	current, err := tx.Queries().FindUserByIDForUpdate(ctx, row.ID)
	if err != nil {
		return row, fmt.Errorf("bastion/user: failed to lock user: %w", err)
	}

	if current.Password != row.Password {
		return row, ErrPasswordChanged
	}

	updated, err := tx.Queries().UpdateUserPassword(ctx, dbsqlc.UpdateUserPasswordParams{
		ID:       row.ID,
		Password: passwordHash,
	})
	if err != nil {
		return row, fmt.Errorf("bastion/user: failed to update password: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return row, fmt.Errorf("bastion/user: failed to commit transaction: %w", err)
	}

	return updated, nil
}

// VerifyPassword reports whether password matches the stored hash of user.
func (h *Handler) VerifyPassword(user *bastion.User, password string) bool {
	return h.config.PasswordHasher.Verify(user.PasswordHash, password)
}

// SetPassword replaces the password of the user with the given id.
func (h *Handler) SetPassword(ctx context.Context, id uuid.UUID, password string) (*bastion.User, error) {
	if err := h.verifyPasswordStrength(password); err != nil {
		return nil, err
	}

	passwordHash := h.config.PasswordHasher.Hash(password)

	row, err := h.driver.Queries().UpdateUserPassword(ctx, dbsqlc.UpdateUserPasswordParams{
		ID:       id,
		Password: passwordHash,
	})
	if err != nil {
		return nil, updateError(err, "password")
	}

	return toUser(row), nil
}

// ChangePassword changes the password of the user with the given id to
// newPassword, if oldPassword matches the currently stored one.
func (h *Handler) ChangePassword(
	ctx context.Context,
	id uuid.UUID,
	oldPassword, newPassword string,
) (*bastion.User, error) {
	current, err := h.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !h.config.PasswordHasher.Verify(current.PasswordHash, oldPassword) {
		d("password mismatch")
		return nil, bastion.ErrInvalidCredentials
	}

	if err := h.verifyPasswordStrength(newPassword); err != nil {
		return nil, err
	}

	// Make sure that the password hashing is performed outside of the transaction
	// as it is an expensive operation.
	passwordHash := h.config.PasswordHasher.Hash(newPassword)

	tx, err := h.driver.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("bastion/user: failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback(ctx) }()

	row, err := tx.Queries().FindUserByIDForUpdate(ctx, id)
	if err != nil {
		return nil, updateError(err, "password")
	}

	if row.Password != current.PasswordHash {
		return nil, ErrPasswordChanged
	}

	row, err = tx.Queries().UpdateUserPassword(ctx, dbsqlc.UpdateUserPasswordParams{
		ID:       id,
		Password: passwordHash,
	})
	if err != nil {
		return nil, updateError(err, "password")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("bastion/user: failed to commit transaction: %w", err)
	}

	h.config.Logger.InfoContext(ctx, "password changed", slog.String("user_id", id.String()))

	return toUser(row), nil
}

// Activate marks the user account as active.
func (h *Handler) Activate(ctx context.Context, id uuid.UUID) (*bastion.User, error) {
	return h.setActive(ctx, id, true)
}

// Deactivate marks the user account as inactive. Inactive users cannot
// authenticate.
func (h *Handler) Deactivate(ctx context.Context, id uuid.UUID) (*bastion.User, error) {
	return h.setActive(ctx, id, false)
}

func (h *Handler) setActive(ctx context.Context, id uuid.UUID, active bool) (*bastion.User, error) {
	row, err := h.driver.Queries().UpdateUserActive(ctx, dbsqlc.UpdateUserActiveParams{
		ID:       id,
		IsActive: active,
	})
	if err != nil {
		return nil, updateError(err, "active flag")
	}

	return toUser(row), nil
}

// VerifyEmail marks the user email as verified.
func (h *Handler) VerifyEmail(ctx context.Context, id uuid.UUID) (*bastion.User, error) {
	row, err := h.driver.Queries().UpdateUserVerified(ctx, dbsqlc.UpdateUserVerifiedParams{
		ID:         id,
		IsVerified: true,
	})
	if err != nil {
		return nil, updateError(err, "verified flag")
	}

	return toUser(row), nil
}

// UpdateLastLogin sets the last login time of the user to now.
func (h *Handler) UpdateLastLogin(ctx context.Context, id uuid.UUID) (*bastion.User, error) {
	row, err := h.driver.Queries().UpdateUserLastLogin(ctx, id)
	if err != nil {
		return nil, updateError(err, "last login")
	}

	return toUser(row), nil
}

// FindByID returns the user with the given id or bastion.ErrUserNotFound.
func (h *Handler) FindByID(ctx context.Context, id uuid.UUID) (*bastion.User, error) {
	row, err := h.driver.Queries().FindUserByID(ctx, id)
	return findResult(row, err)
}

// FindByEmail returns the user with the given email or bastion.ErrUserNotFound.
func (h *Handler) FindByEmail(ctx context.Context, email string) (*bastion.User, error) {
	row, err := h.driver.Queries().FindUserByEmail(ctx, NormalizeEmail(email))
	return findResult(row, err)
}

// FindByUsername returns the user with the given username or bastion.ErrUserNotFound.
func (h *Handler) FindByUsername(ctx context.Context, username string) (*bastion.User, error) {
	row, err := h.driver.Queries().FindUserByUsername(ctx, strings.TrimSpace(username))
	return findResult(row, err)
}

// EmailExists reports whether an account uses email.
func (h *Handler) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := h.driver.Queries().UserEmailExists(ctx, NormalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("bastion/user: failed to check email: %w", err)
	}

	return exists, nil
}

// UsernameExists reports whether an account uses username.
func (h *Handler) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := h.driver.Queries().UserUsernameExists(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("bastion/user: failed to check username: %w", err)
	}

	return exists, nil
}

func (h *Handler) ensureAvailable(ctx context.Context, email, username string) error {
	q := h.driver.Queries()

	exists, err := q.UserEmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("bastion/user: failed to check email: %w", err)
	}

	if exists {
		d("email already exists")
		return bastion.ErrEmailAlreadyTaken
	}

	exists, err = q.UserUsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("bastion/user: failed to check username: %w", err)
	}

	if exists {
		d("username already exists")
		return bastion.ErrUsernameAlreadyTaken
	}

	return nil
}

func (h *Handler) verifyPasswordStrength(password string) error {
	if h.config.PasswordVerifier == nil {
		return nil
	}

	if err := h.config.PasswordVerifier.Verify(password); err != nil {
		return fmt.Errorf("bastion/user: weak password: %w", err)
	}

	return nil
}

func updateError(err error, what string) error {
	if sqldb.IsNotFoundError(err) {
		return bastion.ErrUserNotFound
	}

	return fmt.Errorf("bastion/user: failed to update user %s: %w", what, err)
}

func findResult(row dbsqlc.BastionUser, err error) (*bastion.User, error) {
	if err != nil {
		if sqldb.IsNotFoundError(err) {
			return nil, bastion.ErrUserNotFound
		}

		return nil, fmt.Errorf("bastion/user: failed to find user: %w", err)
	}

	return toUser(row), nil
}

func uniqueViolationError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == usernameUniqueConstraint {
		return bastion.ErrUsernameAlreadyTaken
	}

	return bastion.ErrEmailAlreadyTaken
}

func toUser(row dbsqlc.BastionUser) *bastion.User {
	return &bastion.User{
		ID:           row.ID,
		Email:        row.Email,
		Username:     row.Username,
		PasswordHash: row.Password,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		IsActive:     row.IsActive,
		IsVerified:   row.IsVerified,
		IsSuperuser:  row.IsSuperuser,
		IsStaff:      row.IsStaff,
		LastLogin:    row.LastLogin,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
