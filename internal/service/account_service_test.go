package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-server/internal/schemas"
	"account-server/internal/store"
	"account-server/internal/utils"
)

// fakeUserStore is an in-memory UserStore used to exercise the service
// rules without a database. Uniqueness is enforced the same way the
// real store does it, by rejecting the write itself.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*schemas.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*schemas.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *schemas.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return store.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return store.ErrEmailTaken
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*schemas.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*schemas.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*schemas.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) ClearVerification(_ context.Context, id uuid.UUID) error {
	return f.update(id, func(user *schemas.User) { user.Verified = "" })
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id uuid.UUID, digest string) error {
	return f.update(id, func(user *schemas.User) {
		user.Password = digest
		user.PasswordLastUpdated = time.Now()
	})
}

func (f *fakeUserStore) ResetPassword(_ context.Context, id uuid.UUID, digest string) error {
	return f.update(id, func(user *schemas.User) {
		user.Password = digest
		user.PasswordLastUpdated = time.Now()
		user.PasswordReset = nil
	})
}

func (f *fakeUserStore) SetPasswordReset(_ context.Context, id uuid.UUID, reset *schemas.PasswordReset) error {
	clone := *reset
	return f.update(id, func(user *schemas.User) { user.PasswordReset = &clone })
}

func (f *fakeUserStore) SetEmailUpdate(_ context.Context, id uuid.UUID, update *schemas.EmailUpdate) error {
	clone := *update
	return f.update(id, func(user *schemas.User) { user.EmailUpdate = &clone })
}

func (f *fakeUserStore) ApplyEmailUpdate(_ context.Context, id uuid.UUID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return "", store.ErrNotFound
	}
	for _, other := range f.users {
		if other.ID != id && other.Email == user.EmailUpdate.NewEmail {
			return "", store.ErrEmailTaken
		}
	}
	user.Email = user.EmailUpdate.NewEmail
	user.EmailUpdate = nil
	return user.Email, nil
}

func (f *fakeUserStore) UpdateAvatar(_ context.Context, id uuid.UUID, avatar *schemas.Avatar) error {
	clone := *avatar
	return f.update(id, func(user *schemas.User) { user.Avatar = &clone })
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id uuid.UUID, firstName, lastName *string) error {
	return f.update(id, func(user *schemas.User) {
		user.FirstName = firstName
		user.LastName = lastName
	})
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) update(id uuid.UUID, apply func(*schemas.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	apply(user)
	user.UpdatedAt = time.Now()
	return nil
}

// backdate moves a stored timestamp record into the past to simulate an
// expired code without waiting.
func (f *fakeUserStore) backdate(id uuid.UUID, age time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := f.users[id]
	if user.PasswordReset != nil {
		user.PasswordReset.CreatedAt = time.Now().Add(-age)
	}
	if user.EmailUpdate != nil {
		user.EmailUpdate.CreatedAt = time.Now().Add(-age)
	}
}

func newTestService() (*AccountService, *fakeUserStore) {
	userStore := newFakeUserStore()
	return NewAccountService(userStore), userStore
}

func signupTestUser(t *testing.T, svc *AccountService) (*schemas.User, string) {
	t.Helper()
	user, code, err := svc.Signup(context.Background(), &schemas.SignupRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "test.Password123",
	})
	require.NoError(t, err)
	return user, code
}

func verifiedTestUser(t *testing.T, svc *AccountService) *schemas.User {
	t.Helper()
	user, code := signupTestUser(t, svc)
	verified, err := svc.Verify(context.Background(), user.ID.String(), code)
	require.NoError(t, err)
	return verified
}

func TestSignupValidation(t *testing.T) {
	testCases := []struct {
		name    string
		request schemas.SignupRequest
		fields  map[string]string
	}{
		{
			"AllFieldsMissing",
			schemas.SignupRequest{},
			map[string]string{
				"username": schemas.MsgUsernameInvalid,
				"email":    schemas.MsgEmailInvalid,
				"password": schemas.MsgPasswordInvalid,
			},
		},
		{
			"UsernameTooShort",
			schemas.SignupRequest{Username: "ab", Email: "test@example.com", Password: "test.Password123"},
			map[string]string{"username": schemas.MsgUsernameInvalid},
		},
		{
			"UsernameBadCharset",
			schemas.SignupRequest{Username: "bad user!", Email: "test@example.com", Password: "test.Password123"},
			map[string]string{"username": schemas.MsgUsernameInvalid},
		},
		{
			"UsernameTooLong",
			schemas.SignupRequest{Username: strings.Repeat("a", 31), Email: "test@example.com", Password: "test.Password123"},
			map[string]string{"username": schemas.MsgUsernameInvalid},
		},
		{
			"EmailMalformed",
			schemas.SignupRequest{Username: "testuser", Email: "not-an-email", Password: "test.Password123"},
			map[string]string{"email": schemas.MsgEmailInvalid},
		},
		{
			"PasswordTooShort",
			schemas.SignupRequest{Username: "testuser", Email: "test@example.com", Password: "aB1!"},
			map[string]string{"password": schemas.MsgPasswordInvalid},
		},
		{
			"PasswordMissingClasses",
			schemas.SignupRequest{Username: "testuser", Email: "test@example.com", Password: "alllowercase"},
			map[string]string{"password": schemas.MsgPasswordInvalid},
		},
		{
			"CollectsAllViolations",
			schemas.SignupRequest{Username: "x", Email: "nope", Password: "weak"},
			map[string]string{
				"username": schemas.MsgUsernameInvalid,
				"email":    schemas.MsgEmailInvalid,
				"password": schemas.MsgPasswordInvalid,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService()
			_, _, err := svc.Signup(context.Background(), &tc.request)
			require.Error(t, err)

			var fieldErrors schemas.FieldErrors
			require.ErrorAs(t, err, &fieldErrors)
			assert.Equal(t, schemas.FieldErrors(tc.fields), fieldErrors)
		})
	}
}

func TestSignupNormalizesAndHashes(t *testing.T) {
	svc, userStore := newTestService()

	user, code, err := svc.Signup(context.Background(), &schemas.SignupRequest{
		Username: "  TestUser  ",
		Email:    " Test@Example.COM ",
		Password: "test.Password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	assert.False(t, user.IsVerified())

	stored, err := userStore.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "test.Password123", stored.Password)
	assert.NotEqual(t, code, stored.Verified)

	hasher := NewBcryptHasher()
	assert.True(t, hasher.Compare("test.Password123", stored.Password))
	assert.True(t, hasher.Compare(code, stored.Verified))
}

func TestPasswordLengthBoundary(t *testing.T) {
	atLimit := "aB1!" + strings.Repeat("x", 68)
	overLimit := "aB1!" + strings.Repeat("x", 69)

	policy := DefaultPasswordPolicy{}
	assert.True(t, policy.Allows(atLimit))
	assert.False(t, policy.Allows(overLimit))

	svc, _ := newTestService()

	_, _, err := svc.Signup(context.Background(), &schemas.SignupRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: atLimit,
	})
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), &schemas.SignupRequest{
		Username: "otheruser",
		Email:    "other@example.com",
		Password: overLimit,
	})
	assert.Equal(t, schemas.FieldErrors{"password": schemas.MsgPasswordInvalid}, err)
}

func TestDeepEmailVerification(t *testing.T) {
	svc, _ := newTestService()
	user := verifiedTestUser(t, svc)

	t.Setenv("EMAIL_VERIFICATION", "mx")
	validator := utils.GetValidator()
	originalVerify := validator.VerifyEmail
	validator.VerifyEmail = func(string) bool { return false }
	t.Cleanup(func() { validator.VerifyEmail = originalVerify })

	t.Run("SignupRejectsUndeliverableAddress", func(t *testing.T) {
		_, _, err := svc.Signup(context.Background(), &schemas.SignupRequest{
			Username: "otheruser",
			Email:    "ghost@example.com",
			Password: "test.Password123",
		})
		var fieldErrors schemas.FieldErrors
		require.ErrorAs(t, err, &fieldErrors)
		assert.Equal(t, schemas.MsgEmailInvalid, fieldErrors["email"])
	})

	t.Run("EmailUpdateRejectsUndeliverableAddress", func(t *testing.T) {
		_, _, err := svc.RequestEmailUpdate(context.Background(), user.ID, "ghost@example.com")
		assert.Equal(t, schemas.FieldErrors{"email": schemas.MsgEmailInvalid}, err)
	})

	t.Run("PassesWhenAddressResolves", func(t *testing.T) {
		validator.VerifyEmail = func(string) bool { return true }
		_, _, err := svc.RequestEmailUpdate(context.Background(), user.ID, "new@example.com")
		assert.NoError(t, err)
	})
}

func TestSignupDuplicates(t *testing.T) {
	svc, _ := newTestService()
	signupTestUser(t, svc)

	t.Run("UsernameCaseInsensitive", func(t *testing.T) {
		_, _, err := svc.Signup(context.Background(), &schemas.SignupRequest{
			Username: "TESTUSER",
			Email:    "other@example.com",
			Password: "test.Password123",
		})
		var fieldErrors schemas.FieldErrors
		require.ErrorAs(t, err, &fieldErrors)
		assert.Equal(t, schemas.MsgUsernameTaken, fieldErrors["username"])
	})

	t.Run("EmailCaseInsensitive", func(t *testing.T) {
		_, _, err := svc.Signup(context.Background(), &schemas.SignupRequest{
			Username: "otheruser",
			Email:    "Test@Example.com",
			Password: "test.Password123",
		})
		var fieldErrors schemas.FieldErrors
		require.ErrorAs(t, err, &fieldErrors)
		assert.Equal(t, schemas.MsgEmailTaken, fieldErrors["email"])
	})
}

func TestVerify(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, _ := newTestService()
		user, code := signupTestUser(t, svc)

		verified, err := svc.Verify(context.Background(), user.ID.String(), code)
		require.NoError(t, err)
		assert.True(t, verified.IsVerified())
	})

	t.Run("CodeIsSingleUse", func(t *testing.T) {
		svc, _ := newTestService()
		user, code := signupTestUser(t, svc)

		_, err := svc.Verify(context.Background(), user.ID.String(), code)
		require.NoError(t, err)

		_, err = svc.Verify(context.Background(), user.ID.String(), code)
		assert.Equal(t, schemas.Global(schemas.MsgAlreadyVerified), err)
	})

	t.Run("UniformFailureMessage", func(t *testing.T) {
		svc, _ := newTestService()
		user, _ := signupTestUser(t, svc)

		for name, verify := range map[string]func() error{
			"MissingCode": func() error { _, err := svc.Verify(context.Background(), user.ID.String(), ""); return err },
			"WrongCode":   func() error { _, err := svc.Verify(context.Background(), user.ID.String(), "000000"); return err },
			"BadUserId":   func() error { _, err := svc.Verify(context.Background(), "not-a-uuid", "123456"); return err },
			"UnknownUser": func() error { _, err := svc.Verify(context.Background(), uuid.NewString(), "123456"); return err },
		} {
			assert.Equal(t, schemas.Global(schemas.MsgTokenInvalid), verify(), name)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("UnknownUsername", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Login(context.Background(), &schemas.LoginRequest{Username: "nobody", Password: "test.Password123"})
		assert.Equal(t, schemas.FieldErrors{"username": schemas.MsgNoSuchUsername}, err)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, _ := newTestService()
		verifiedTestUser(t, svc)

		_, err := svc.Login(context.Background(), &schemas.LoginRequest{Username: "testuser", Password: "wrong.Password123"})
		assert.Equal(t, schemas.FieldErrors{"password": schemas.MsgPasswordInvalid}, err)
	})

	t.Run("UnverifiedAccountRejected", func(t *testing.T) {
		svc, _ := newTestService()
		signupTestUser(t, svc)

		_, err := svc.Login(context.Background(), &schemas.LoginRequest{Username: "testuser", Password: "test.Password123"})
		assert.Equal(t, schemas.Global(schemas.MsgNotVerified), err)
	})

	t.Run("SignupVerifyLoginFlow", func(t *testing.T) {
		svc, _ := newTestService()
		verifiedTestUser(t, svc)

		user, err := svc.Login(context.Background(), &schemas.LoginRequest{Username: "TestUser", Password: "test.Password123"})
		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("HashIsNotAValidPassword", func(t *testing.T) {
		svc, userStore := newTestService()
		user := verifiedTestUser(t, svc)

		stored, err := userStore.FindByID(context.Background(), user.ID)
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), &schemas.LoginRequest{Username: "testuser", Password: stored.Password})
		assert.Equal(t, schemas.FieldErrors{"password": schemas.MsgPasswordInvalid}, err)
	})
}

func TestPasswordReset(t *testing.T) {
	t.Run("UnknownEmail", func(t *testing.T) {
		svc, _ := newTestService()
		_, _, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
		assert.Equal(t, schemas.Global(schemas.MsgNoUser), err)
	})

	t.Run("Success", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, code, err := svc.RequestPasswordReset(context.Background(), "test@example.com")
		require.NoError(t, err)

		_, err = svc.ResetPassword(context.Background(), user.ID.String(), code, "new.Password456")
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), &schemas.LoginRequest{Username: "testuser", Password: "new.Password456"})
		assert.NoError(t, err)
	})

	t.Run("CodeIsSingleUse", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, code, err := svc.RequestPasswordReset(context.Background(), "test@example.com")
		require.NoError(t, err)

		_, err = svc.ResetPassword(context.Background(), user.ID.String(), code, "new.Password456")
		require.NoError(t, err)

		_, err = svc.ResetPassword(context.Background(), user.ID.String(), code, "other.Password789")
		assert.Equal(t, schemas.Global(schemas.MsgTokenInvalid), err)
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		svc, userStore := newTestService()
		user := verifiedTestUser(t, svc)

		_, code, err := svc.RequestPasswordReset(context.Background(), "test@example.com")
		require.NoError(t, err)
		userStore.backdate(user.ID, 11*time.Minute)

		_, err = svc.ResetPassword(context.Background(), user.ID.String(), code, "new.Password456")
		assert.Equal(t, schemas.Global(schemas.MsgTokenExpired), err)
	})

	t.Run("NewRequestInvalidatesOldCode", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, firstCode, err := svc.RequestPasswordReset(context.Background(), "test@example.com")
		require.NoError(t, err)
		_, secondCode, err := svc.RequestPasswordReset(context.Background(), "test@example.com")
		require.NoError(t, err)

		if firstCode != secondCode {
			_, err = svc.ResetPassword(context.Background(), user.ID.String(), firstCode, "new.Password456")
			assert.Equal(t, schemas.Global(schemas.MsgTokenInvalid), err)
		}

		_, err = svc.ResetPassword(context.Background(), user.ID.String(), secondCode, "new.Password456")
		assert.NoError(t, err)
	})

	t.Run("WeakNewPassword", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, code, err := svc.RequestPasswordReset(context.Background(), "test@example.com")
		require.NoError(t, err)

		_, err = svc.ResetPassword(context.Background(), user.ID.String(), code, "weak")
		assert.Equal(t, schemas.FieldErrors{"newPassword": schemas.MsgPasswordInvalid}, err)
	})
}

func TestUpdatePassword(t *testing.T) {
	t.Run("RejectsUnchangedPassword", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, err := svc.UpdatePassword(context.Background(), user.ID, "test.Password123")
		assert.Equal(t, schemas.FieldErrors{"newPassword": schemas.MsgPasswordUnchanged}, err)
	})

	t.Run("RejectsWeakPassword", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, err := svc.UpdatePassword(context.Background(), user.ID, "weak")
		assert.Equal(t, schemas.FieldErrors{"newPassword": schemas.MsgPasswordInvalid}, err)
	})

	t.Run("Success", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, err := svc.UpdatePassword(context.Background(), user.ID, "new.Password456")
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), &schemas.LoginRequest{Username: "testuser", Password: "new.Password456"})
		assert.NoError(t, err)
	})
}

func TestEmailUpdate(t *testing.T) {
	t.Run("InvalidNewEmail", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, _, err := svc.RequestEmailUpdate(context.Background(), user.ID, "not-an-email")
		assert.Equal(t, schemas.FieldErrors{"email": schemas.MsgEmailInvalid}, err)
	})

	t.Run("NewEmailAlreadyInUse", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, _, err := svc.RequestEmailUpdate(context.Background(), user.ID, "test@example.com")
		assert.Equal(t, schemas.FieldErrors{"email": schemas.MsgEmailTaken}, err)
	})

	t.Run("Success", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		staged, code, err := svc.RequestEmailUpdate(context.Background(), user.ID, "New@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", staged.EmailUpdate.NewEmail)
		assert.Equal(t, "test@example.com", staged.Email)

		updated, err := svc.UpdateEmail(context.Background(), user.ID, code)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
		assert.Nil(t, updated.EmailUpdate)
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		svc, userStore := newTestService()
		user := verifiedTestUser(t, svc)

		_, code, err := svc.RequestEmailUpdate(context.Background(), user.ID, "new@example.com")
		require.NoError(t, err)
		userStore.backdate(user.ID, 11*time.Minute)

		_, err = svc.UpdateEmail(context.Background(), user.ID, code)
		assert.Equal(t, schemas.Global(schemas.MsgTokenExpired), err)
	})

	t.Run("WrongCode", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, _, err := svc.RequestEmailUpdate(context.Background(), user.ID, "new@example.com")
		require.NoError(t, err)

		_, err = svc.UpdateEmail(context.Background(), user.ID, "000000")
		assert.Equal(t, schemas.Global(schemas.MsgTokenInvalid), err)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("CollectsBothViolations", func(t *testing.T) {
		svc, _ := newTestService()
		user := verifiedTestUser(t, svc)

		_, err := svc.UpdateProfile(context.Background(), user.ID, &schemas.UpdateProfileRequest{
			FirstName: "ab",
			LastName:  strings.Repeat("z", 81),
		})
		assert.Equal(t, schemas.FieldErrors{
			"firstName": schemas.MsgNameInvalid,
			"lastName":  schemas.MsgNameInvalid,
		}, err)
	})

	t.Run("SetsAndClears", func(t *testing.T) {
		svc, userStore := newTestService()
		user := verifiedTestUser(t, svc)

		updated, err := svc.UpdateProfile(context.Background(), user.ID, &schemas.UpdateProfileRequest{FirstName: "Jane", LastName: "Doe"})
		require.NoError(t, err)
		require.NotNil(t, updated.FirstName)
		assert.Equal(t, "Jane", *updated.FirstName)

		updated, err = svc.UpdateProfile(context.Background(), user.ID, &schemas.UpdateProfileRequest{})
		require.NoError(t, err)
		assert.Nil(t, updated.FirstName)
		assert.Nil(t, updated.LastName)

		stored, err := userStore.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.FirstName)
	})
}

func TestDelete(t *testing.T) {
	svc, userStore := newTestService()
	user := verifiedTestUser(t, svc)

	require.NoError(t, svc.Delete(context.Background(), user.ID))

	_, err := userStore.FindByID(context.Background(), user.ID)
	assert.Equal(t, store.ErrNotFound, err)

	assert.Equal(t, schemas.Global(schemas.MsgNoUser), svc.Delete(context.Background(), user.ID))
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService()
	user := verifiedTestUser(t, svc)

	t.Run("Success", func(t *testing.T) {
		found, err := svc.GetByID(context.Background(), user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, user.Username, found.Username)
	})

	t.Run("MalformedId", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), "not-a-uuid")
		assert.Equal(t, schemas.Global(schemas.MsgUserIdInvalid), err)
	})

	t.Run("UnknownId", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), uuid.NewString())
		assert.Equal(t, schemas.Global(schemas.MsgUserNotFound), err)
	})
}
