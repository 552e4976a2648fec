// Package store persists user records. The UserStore interface keeps
// the account service independent of the storage technology; the pgx
// implementation backs it with PostgreSQL.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"account-server/internal/schemas"
)

// Sentinel errors the account service maps onto field errors.
var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when an insert or update violates
	// the username unique index.
	ErrUsernameTaken = errors.New("username already in use")

	// ErrEmailTaken is returned when an insert or update violates the
	// email unique index.
	ErrEmailTaken = errors.New("email already in use")
)

// UserStore is the persistence capability the account service needs.
// Every mutation is a single atomic write; the uniqueness of username
// and email is enforced by the storage layer itself, not by prior
// existence checks.
type UserStore interface {
	Create(ctx context.Context, user *schemas.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*schemas.User, error)
	FindByUsername(ctx context.Context, username string) (*schemas.User, error)
	FindByEmail(ctx context.Context, email string) (*schemas.User, error)

	// ClearVerification marks the user as verified by setting the
	// verified digest to the empty string.
	ClearVerification(ctx context.Context, id uuid.UUID) error

	// UpdatePassword replaces the password digest and stamps
	// password_last_updated.
	UpdatePassword(ctx context.Context, id uuid.UUID, digest string) error

	// ResetPassword replaces the password digest and clears the active
	// reset record in the same write.
	ResetPassword(ctx context.Context, id uuid.UUID, digest string) error

	// SetPasswordReset installs a reset record, overwriting any prior
	// one so at most one is ever active.
	SetPasswordReset(ctx context.Context, id uuid.UUID, reset *schemas.PasswordReset) error

	// SetEmailUpdate installs a pending email change, overwriting any
	// prior one.
	SetEmailUpdate(ctx context.Context, id uuid.UUID, update *schemas.EmailUpdate) error

	// ApplyEmailUpdate promotes the pending address to the user's email
	// and clears the pending record in the same write. It returns the
	// new address.
	ApplyEmailUpdate(ctx context.Context, id uuid.UUID) (string, error)

	UpdateAvatar(ctx context.Context, id uuid.UUID, avatar *schemas.Avatar) error
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
