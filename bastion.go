// Package bastion holds the user account model and errors shared by the
// user management, storage and HTTP packages.
package bastion

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/mold/v4/scrubbers"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyTaken    = errors.New("bastion: email already taken")
	ErrUsernameAlreadyTaken = errors.New("bastion: username already taken")
	ErrInvalidCredentials   = errors.New("bastion: invalid credentials")
	ErrInactiveAccount      = errors.New("bastion: inactive account")
	ErrUserNotFound         = errors.New("bastion: user not found")
)

//nolint:gochecknoglobals
var (
	DefaultLogger = slog.Default()

	DefaultFormValidator = validator.New(validator.WithRequiredStructEnabled())
	DefaultFormModifier  = modifiers.New()
	DefaultFormScrubber  = scrubbers.New()
)

// User is a user account.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string // hash record, see package password

	FirstName *string
	LastName  *string

	IsActive    bool
	IsVerified  bool
	IsSuperuser bool
	IsStaff     bool

	LastLogin time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the user representation safe to hand out to clients.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FirstName   *string   `json:"first_name,omitempty"`
	LastName    *string   `json:"last_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsVerified  bool      `json:"is_verified"`
	IsSuperuser bool      `json:"is_superuser"`
	IsStaff     bool      `json:"is_staff"`
	LastLogin   time.Time `json:"last_login"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public strips the password hash from u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsVerified:  u.IsVerified,
		IsSuperuser: u.IsSuperuser,
		IsStaff:     u.IsStaff,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
	}
}
