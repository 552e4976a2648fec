// Package service implements the account operations on top of the user
// store. Handlers translate its FieldErrors results into HTTP
// responses; the service itself is transport-agnostic.
package service

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"account-server/internal/schemas"
	"account-server/internal/store"
	"account-server/internal/utils"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minEmailLength    = 3
	maxEmailLength    = 50
	minNameLength     = 3
	maxNameLength     = 80

	// CodeValidity is how long a one-time verification, reset or email
	// change code stays usable after it was issued.
	CodeValidity = 10 * time.Minute
)

// AccountService carries out every user-facing account operation.
// Methods return *schemas.User plus an error; validation and state
// failures surface as schemas.FieldErrors, anything else is a storage
// failure the caller should treat as internal.
type AccountService struct {
	store  store.UserStore
	hasher Hasher
	policy PasswordPolicy
}

func NewAccountService(userStore store.UserStore) *AccountService {
	return &AccountService{
		store:  userStore,
		hasher: NewBcryptHasher(),
		policy: DefaultPasswordPolicy{},
	}
}

// generateCode produces the six-digit one-time code sent out by mail.
// Only its bcrypt digest is ever persisted.
func generateCode() string {
	return strconv.Itoa(rand.Intn(900000) + 100000)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Signup creates an unverified account and returns it together with the
// plaintext verification code the caller mails out. Field violations
// are collected across all fields before failing, so a client sees
// every problem at once.
func (s *AccountService) Signup(ctx context.Context, req *schemas.SignupRequest) (*schemas.User, string, error) {
	username := normalize(req.Username)
	email := normalize(req.Email)
	validator := utils.GetValidator()

	errs := schemas.FieldErrors{}
	if len(username) < minUsernameLength || len(username) > maxUsernameLength || !validator.IsValidUsername(username) {
		errs.Add("username", schemas.MsgUsernameInvalid)
	}
	if len(email) < minEmailLength || len(email) > maxEmailLength || !validator.IsValidEmail(email) ||
		!validator.DeepVerifyEmail(email) {
		errs.Add("email", schemas.MsgEmailInvalid)
	}
	if !s.policy.Allows(req.Password) {
		errs.Add("password", schemas.MsgPasswordInvalid)
	}
	if len(errs) > 0 {
		return nil, "", errs
	}

	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		errs.Add("username", schemas.MsgUsernameTaken)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		errs.Add("email", schemas.MsgEmailTaken)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}
	if len(errs) > 0 {
		return nil, "", errs
	}

	passwordDigest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", err
	}
	code := generateCode()
	codeDigest, err := s.hasher.Hash(code)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &schemas.User{
		ID:                  uuid.New(),
		Username:            username,
		Email:               email,
		Password:            passwordDigest,
		PasswordLastUpdated: now,
		Verified:            codeDigest,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		// The unique indexes close the race between the pre-checks
		// above and the insert.
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			return nil, "", schemas.FieldErrors{"username": schemas.MsgUsernameTaken}
		case errors.Is(err, store.ErrEmailTaken):
			return nil, "", schemas.FieldErrors{"email": schemas.MsgEmailTaken}
		}
		return nil, "", err
	}
	return user, code, nil
}

// Login checks the credentials and returns the user. Unverified
// accounts are rejected even with a correct password.
func (s *AccountService) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.User, error) {
	username := normalize(req.Username)
	errs := schemas.FieldErrors{}
	if username == "" {
		errs.Add("username", schemas.MsgUsernameInvalid)
	}
	if req.Password == "" {
		errs.Add("password", schemas.MsgPasswordInvalid)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	user, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, schemas.FieldErrors{"username": schemas.MsgNoSuchUsername}
	} else if err != nil {
		return nil, err
	}
	if !s.hasher.Compare(req.Password, user.Password) {
		return nil, schemas.FieldErrors{"password": schemas.MsgPasswordInvalid}
	}
	if !user.IsVerified() {
		return nil, schemas.Global(schemas.MsgNotVerified)
	}
	return user, nil
}

// Verify consumes the signup code. The failure message never reveals
// whether the user, the code, or its state was the invalid part.
func (s *AccountService) Verify(ctx context.Context, userId, code string) (*schemas.User, error) {
	if code == "" {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}
	id, err := uuid.Parse(userId)
	if err != nil {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}
	user, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	} else if err != nil {
		return nil, err
	}
	if user.IsVerified() {
		return nil, schemas.Global(schemas.MsgAlreadyVerified)
	}
	if !s.hasher.Compare(code, user.Verified) {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}
	if err := s.store.ClearVerification(ctx, id); err != nil {
		return nil, err
	}
	user.Verified = ""
	return user, nil
}

// RequestPasswordReset installs a fresh reset record for the account
// behind the given email and returns the plaintext code. Any previously
// issued code stops working.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) (*schemas.User, string, error) {
	email = normalize(email)
	if email == "" {
		return nil, "", schemas.FieldErrors{"email": schemas.MsgEmailInvalid}
	}
	user, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", schemas.Global(schemas.MsgNoUser)
	} else if err != nil {
		return nil, "", err
	}

	code := generateCode()
	digest, err := s.hasher.Hash(code)
	if err != nil {
		return nil, "", err
	}
	reset := &schemas.PasswordReset{Token: digest, CreatedAt: time.Now()}
	if err := s.store.SetPasswordReset(ctx, user.ID, reset); err != nil {
		return nil, "", err
	}
	user.PasswordReset = reset
	return user, code, nil
}

// ResetPassword sets a new password if the reset code matches and is
// still inside its validity window. The gates short-circuit in order;
// the record is cleared together with the password write, so a code is
// usable at most once.
func (s *AccountService) ResetPassword(ctx context.Context, userId, code, newPassword string) (*schemas.User, error) {
	if code == "" {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}
	id, err := uuid.Parse(userId)
	if err != nil {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}
	user, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, schemas.Global(schemas.MsgNoUser)
	} else if err != nil {
		return nil, err
	}
	if user.PasswordReset == nil {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}
	if time.Since(user.PasswordReset.CreatedAt) >= CodeValidity {
		return nil, schemas.Global(schemas.MsgTokenExpired)
	}
	if !s.hasher.Compare(code, user.PasswordReset.Token) {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}
	if !s.policy.Allows(newPassword) {
		return nil, schemas.FieldErrors{"newPassword": schemas.MsgPasswordInvalid}
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.store.ResetPassword(ctx, id, digest); err != nil {
		return nil, err
	}
	user.Password = digest
	user.PasswordReset = nil
	return user, nil
}

// UpdatePassword changes the password of an authenticated user. Reusing
// the current password is rejected.
func (s *AccountService) UpdatePassword(ctx context.Context, id uuid.UUID, newPassword string) (*schemas.User, error) {
	if !s.policy.Allows(newPassword) {
		return nil, schemas.FieldErrors{"newPassword": schemas.MsgPasswordInvalid}
	}
	user, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, schemas.Global(schemas.MsgNoUser)
	} else if err != nil {
		return nil, err
	}
	if s.hasher.Compare(newPassword, user.Password) {
		return nil, schemas.FieldErrors{"newPassword": schemas.MsgPasswordUnchanged}
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdatePassword(ctx, id, digest); err != nil {
		return nil, err
	}
	user.Password = digest
	return user, nil
}

// RequestEmailUpdate stages a new address for the user and returns the
// plaintext confirmation code. The current address stays in effect
// until the code is confirmed.
func (s *AccountService) RequestEmailUpdate(ctx context.Context, id uuid.UUID, email string) (*schemas.User, string, error) {
	email = normalize(email)
	validator := utils.GetValidator()
	if len(email) < minEmailLength || len(email) > maxEmailLength || !validator.IsValidEmail(email) ||
		!validator.DeepVerifyEmail(email) {
		return nil, "", schemas.FieldErrors{"email": schemas.MsgEmailInvalid}
	}

	user, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", schemas.Global(schemas.MsgNoUser)
	} else if err != nil {
		return nil, "", err
	}
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, "", schemas.FieldErrors{"email": schemas.MsgEmailTaken}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	code := generateCode()
	digest, err := s.hasher.Hash(code)
	if err != nil {
		return nil, "", err
	}
	update := &schemas.EmailUpdate{NewEmail: email, Token: digest, CreatedAt: time.Now()}
	if err := s.store.SetEmailUpdate(ctx, id, update); err != nil {
		return nil, "", err
	}
	user.EmailUpdate = update
	return user, code, nil
}

// UpdateEmail promotes the staged address once the confirmation code
// checks out. It returns the user with the new address in effect.
func (s *AccountService) UpdateEmail(ctx context.Context, id uuid.UUID, code string) (*schemas.User, error) {
	if code == "" {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}
	user, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, schemas.Global(schemas.MsgNoUser)
	} else if err != nil {
		return nil, err
	}
	if user.EmailUpdate == nil {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}
	if time.Since(user.EmailUpdate.CreatedAt) >= CodeValidity {
		return nil, schemas.Global(schemas.MsgTokenExpired)
	}
	if !s.hasher.Compare(code, user.EmailUpdate.Token) {
		return nil, schemas.Global(schemas.MsgTokenInvalid)
	}

	newEmail, err := s.store.ApplyEmailUpdate(ctx, id)
	if errors.Is(err, store.ErrEmailTaken) {
		// The address was claimed between request and confirmation.
		return nil, schemas.FieldErrors{"email": schemas.MsgEmailTaken}
	} else if err != nil {
		return nil, err
	}
	user.Email = newEmail
	user.EmailUpdate = nil
	return user, nil
}

// UpdateAvatar stores a processed avatar payload for the user.
func (s *AccountService) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar *schemas.Avatar) (*schemas.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, schemas.Global(schemas.MsgNoUser)
	} else if err != nil {
		return nil, err
	}
	if err := s.store.UpdateAvatar(ctx, id, avatar); err != nil {
		return nil, err
	}
	user.Avatar = avatar
	return user, nil
}

// UpdateProfile sets the optional first and last name. Empty values
// clear the field; non-empty values must be within the length bounds.
// Violations for both fields are collected before failing.
func (s *AccountService) UpdateProfile(ctx context.Context, id uuid.UUID, req *schemas.UpdateProfileRequest) (*schemas.User, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	errs := schemas.FieldErrors{}
	if firstName != "" && (len(firstName) < minNameLength || len(firstName) > maxNameLength) {
		errs.Add("firstName", schemas.MsgNameInvalid)
	}
	if lastName != "" && (len(lastName) < minNameLength || len(lastName) > maxNameLength) {
		errs.Add("lastName", schemas.MsgNameInvalid)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	user, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, schemas.Global(schemas.MsgNoUser)
	} else if err != nil {
		return nil, err
	}

	var first, last *string
	if firstName != "" {
		first = &firstName
	}
	if lastName != "" {
		last = &lastName
	}
	if err := s.store.UpdateProfile(ctx, id, first, last); err != nil {
		return nil, err
	}
	user.FirstName = first
	user.LastName = last
	return user, nil
}

// Delete removes the account permanently. Tokens issued for the user
// stop authorizing requests because the auth middleware re-checks
// existence on every request.
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return schemas.Global(schemas.MsgNoUser)
	}
	return err
}

// GetByID loads a user by the string form of its id.
func (s *AccountService) GetByID(ctx context.Context, userId string) (*schemas.User, error) {
	id, err := uuid.Parse(userId)
	if err != nil {
		return nil, schemas.Global(schemas.MsgUserIdInvalid)
	}
	user, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, schemas.Global(schemas.MsgUserNotFound)
	} else if err != nil {
		return nil, err
	}
	return user, nil
}
