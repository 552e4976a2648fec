// Package schemas defines the data structures
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// User represents the data model for a user account in the system.
// Password and Verified only ever hold bcrypt digests, never plaintext.
// Verified is the digest of the one-time signup code and becomes the
// empty string once the account has been verified.
type User struct {
	ID                  uuid.UUID      `json:"id"`                  // Unique identifier for the user.
	Username            string         `json:"username"`            // Username, stored trimmed and lowercased.
	Email               string         `json:"email"`               // Email address, stored trimmed and lowercased.
	Password            string         `json:"-"`                   // Password hash of the user.
	PasswordLastUpdated time.Time      `json:"passwordLastUpdated"` // Timestamp of the last password change.
	Verified            string         `json:"-"`                   // Digest of the signup code, "" once verified.
	FirstName           *string        `json:"firstName"`           // Optional first name.
	LastName            *string        `json:"lastName"`            // Optional last name.
	Avatar              *Avatar        `json:"-"`                   // Optional avatar payload.
	PasswordReset       *PasswordReset `json:"-"`                   // Active password-reset record, if any.
	EmailUpdate         *EmailUpdate   `json:"-"`                   // Pending email change, if any.
	CreatedAt           time.Time      `json:"createdAt"`           // Timestamp when the user was created.
	UpdatedAt           time.Time      `json:"-"`                   // Timestamp of the last modification.
}

// IsVerified reports whether the signup code has been consumed.
func (u *User) IsVerified() bool {
	return u.Verified == ""
}

// Avatar is the stored avatar payload together with its MIME type.
type Avatar struct {
	Data     []byte `json:"-"`
	MimeType string `json:"mimeType"`
}

// PasswordReset is the ephemeral reset credential embedded in the user
// record. Token holds a digest of the one-time code. At most one record
// is active per user; issuing a new one overwrites the previous record.
type PasswordReset struct {
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmailUpdate is the pending email change embedded in the user record.
// It follows the same single-active-record and validity-window rules as
// PasswordReset.
type EmailUpdate struct {
	NewEmail  string    `json:"newEmail"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
