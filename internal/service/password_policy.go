package service

import "account-server/internal/utils"

const (
	minPasswordLength = 8

	// bcrypt only hashes the first 72 bytes of a secret and errors on
	// anything longer, so the policy must not admit such passwords.
	maxPasswordLength = 72
)

// PasswordPolicy decides whether a candidate password is acceptable.
// The default policy can be swapped out without touching the service logic.
type PasswordPolicy interface {
	Allows(password string) bool
}

// DefaultPasswordPolicy requires at least eight characters with an upper
// case letter, a lower case letter, a number and a special character.
type DefaultPasswordPolicy struct{}

func (DefaultPasswordPolicy) Allows(password string) bool {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return false
	}
	return utils.HasRequiredCharClasses(password)
}
