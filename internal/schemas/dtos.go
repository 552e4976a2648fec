package schemas

import (
	"time"

	"github.com/google/uuid"
)

// UserDTO is a struct that represents a user response
// ID is the unique identifier of the user
// Username is the username of the user
// Email is the email of the user
type UserDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// ProfileDTO is a struct that represents the full profile response
// returned from login and authorize. Avatar only signals presence; the
// payload is served from the avatar route.
type ProfileDTO struct {
	ID                  uuid.UUID `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	FirstName           *string   `json:"firstName"`
	LastName            *string   `json:"lastName"`
	Avatar              bool      `json:"avatar"`
	PasswordLastUpdated time.Time `json:"passwordLastUpdated"`
	CreatedAt           time.Time `json:"createdAt"`
}

// UserCardDTO is a struct that represents the public user lookup response
type UserCardDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// UsernameDTO is a struct that represents a response carrying only the username
type UsernameDTO struct {
	Username string `json:"username"`
}

// EmailDTO is a struct that represents a response carrying only an email address
type EmailDTO struct {
	Email string `json:"email"`
}

// TokenDTO is a struct that represents a session token response
// Token is the signed JWT, also attached as an httpOnly cookie
type TokenDTO struct {
	Token string `json:"token"`
}

// LoginResponseDTO is a struct that represents a login response
type LoginResponseDTO struct {
	ProfileDTO
	Token string `json:"token"`
}

// MetadataDTO is a struct that represents the version metadata response
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}

// NewProfileDTO maps a stored user onto the profile response shape.
func NewProfileDTO(user *User) ProfileDTO {
	return ProfileDTO{
		ID:                  user.ID,
		Username:            user.Username,
		Email:               user.Email,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		Avatar:              user.Avatar != nil,
		PasswordLastUpdated: user.PasswordLastUpdated,
		CreatedAt:           user.CreatedAt,
	}
}
