package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-server/internal/schemas"
)

var userRowColumns = []string{
	"user_id", "username", "email", "password", "password_last_updated", "verified",
	"first_name", "last_name", "avatar", "avatar_mime", "reset_token", "reset_created_at",
	"new_email", "email_token", "email_created_at", "created_at", "updated_at",
}

func setupStore(t *testing.T) (*PostgresUserStore, pgxmock.PgxPoolIface) {
	t.Helper()
	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(poolMock.Close)
	return NewPostgresUserStore(poolMock), poolMock
}

func TestFindByID(t *testing.T) {
	userStore, poolMock := setupStore(t)

	id := uuid.New()
	now := time.Now()
	resetToken := "$2a$10$resetdigest"

	t.Run("FoldsNullableColumns", func(t *testing.T) {
		poolMock.ExpectQuery("SELECT user_id").WithArgs(id).WillReturnRows(
			pgxmock.NewRows(userRowColumns).AddRow(
				id, "testuser", "test@example.com", "$2a$10$digest", now, "",
				nil, nil, nil, nil, &resetToken, &now,
				nil, nil, nil, now, now,
			))

		user, err := userStore.FindByID(context.Background(), id)
		require.NoError(t, err)

		assert.Equal(t, "testuser", user.Username)
		assert.True(t, user.IsVerified())
		assert.Nil(t, user.Avatar)
		assert.Nil(t, user.EmailUpdate)
		require.NotNil(t, user.PasswordReset)
		assert.Equal(t, resetToken, user.PasswordReset.Token)
	})

	t.Run("NotFound", func(t *testing.T) {
		poolMock.ExpectQuery("SELECT user_id").WithArgs(id).WillReturnRows(pgxmock.NewRows(userRowColumns))

		_, err := userStore.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestCreateMapsUniqueViolations(t *testing.T) {
	testCases := []struct {
		name       string
		constraint string
		expected   error
	}{
		{"UsernameIndex", "users_username_key", ErrUsernameTaken},
		{"EmailIndex", "users_email_key", ErrEmailTaken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			userStore, poolMock := setupStore(t)

			user := &schemas.User{
				ID:       uuid.New(),
				Username: "testuser",
				Email:    "test@example.com",
				Password: "$2a$10$digest",
				Verified: "$2a$10$codedigest",
			}
			poolMock.ExpectExec("INSERT INTO users").
				WithArgs(user.ID, user.Username, user.Email, user.Password,
					pgxmock.AnyArg(), user.Verified, pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})

			err := userStore.Create(context.Background(), user)
			assert.ErrorIs(t, err, tc.expected)
			assert.NoError(t, poolMock.ExpectationsWereMet())
		})
	}
}

func TestResetPasswordClearsRecord(t *testing.T) {
	userStore, poolMock := setupStore(t)

	id := uuid.New()
	poolMock.ExpectExec("UPDATE users SET password").
		WithArgs("$2a$10$newdigest", pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := userStore.ResetPassword(context.Background(), id, "$2a$10$newdigest")
	assert.NoError(t, err)
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestApplyEmailUpdate(t *testing.T) {
	t.Run("ReturnsPromotedAddress", func(t *testing.T) {
		userStore, poolMock := setupStore(t)

		id := uuid.New()
		poolMock.ExpectQuery("UPDATE users SET email").
			WithArgs(pgxmock.AnyArg(), id).
			WillReturnRows(pgxmock.NewRows([]string{"email"}).AddRow("new@example.com"))

		email, err := userStore.ApplyEmailUpdate(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", email)
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("AddressClaimedMeanwhile", func(t *testing.T) {
		userStore, poolMock := setupStore(t)

		id := uuid.New()
		poolMock.ExpectQuery("UPDATE users SET email").
			WithArgs(pgxmock.AnyArg(), id).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := userStore.ApplyEmailUpdate(context.Background(), id)
		assert.ErrorIs(t, err, ErrEmailTaken)
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userStore, poolMock := setupStore(t)

		id := uuid.New()
		poolMock.ExpectExec("DELETE FROM users").WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, userStore.Delete(context.Background(), id))
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		userStore, poolMock := setupStore(t)

		id := uuid.New()
		poolMock.ExpectExec("DELETE FROM users").WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, userStore.Delete(context.Background(), id), ErrNotFound)
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})
}
