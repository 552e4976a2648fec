// Package schemas defines the request structures for the account routes.
package schemas

// SignupRequest is a struct that represents a signup request.
// The account service performs the full field validation and collects
// all violations, so the struct itself carries no binding constraints.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is a struct that represents a login request
// LongSession requests the ~30 day session class instead of ~1 day
type LoginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	LongSession bool   `json:"longSession"`
}

// VerifyRequest is a struct that represents an email verification request
// Code is the 6-digit one-time code delivered by mail
type VerifyRequest struct {
	Code string `json:"code"`
}

// RequestPasswordResetRequest is a struct that represents a reset-request
// Email is the address the reset code is mailed to
type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is a struct that represents a password reset request
// The one-time code travels as a query parameter on the same route
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// UpdatePasswordRequest is a struct that represents a password change request
type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest is a struct that represents a profile update request
// Both fields replace the stored values wholesale
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RequestEmailUpdateRequest is a struct that represents an email change request
// Email is the new address; the confirmation code is mailed there
type RequestEmailUpdateRequest struct {
	Email string `json:"email"`
}

// UpdateEmailRequest is a struct that represents an email change confirmation
type UpdateEmailRequest struct {
	Code string `json:"code"`
}
