package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"account-server/internal/interfaces"
	"account-server/internal/schemas"
)

const userColumns = "user_id, username, email, password, password_last_updated, verified, " +
	"first_name, last_name, avatar, avatar_mime, reset_token, reset_created_at, " +
	"new_email, email_token, email_created_at, created_at, updated_at"

// PostgresUserStore implements UserStore on top of a pgx pool.
type PostgresUserStore struct {
	pool interfaces.PgxPoolIface
}

func NewPostgresUserStore(pool interfaces.PgxPoolIface) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) Create(ctx context.Context, user *schemas.User) error {
	queryString := "INSERT INTO users (user_id, username, email, password, password_last_updated, verified, created_at, updated_at) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8)"
	_, err := s.pool.Exec(ctx, queryString,
		user.ID, user.Username, user.Email, user.Password, user.PasswordLastUpdated,
		user.Verified, user.CreatedAt, user.UpdatedAt)

	return mapUniqueViolation(err)
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id uuid.UUID) (*schemas.User, error) {
	queryString := "SELECT " + userColumns + " FROM users WHERE user_id = $1"
	return scanUser(s.pool.QueryRow(ctx, queryString, id))
}

func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (*schemas.User, error) {
	queryString := "SELECT " + userColumns + " FROM users WHERE username = $1"
	return scanUser(s.pool.QueryRow(ctx, queryString, username))
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*schemas.User, error) {
	queryString := "SELECT " + userColumns + " FROM users WHERE email = $1"
	return scanUser(s.pool.QueryRow(ctx, queryString, email))
}

func (s *PostgresUserStore) ClearVerification(ctx context.Context, id uuid.UUID) error {
	queryString := "UPDATE users SET verified = '', updated_at = $1 WHERE user_id = $2"
	return s.exec(ctx, queryString, time.Now(), id)
}

func (s *PostgresUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, digest string) error {
	queryString := "UPDATE users SET password = $1, password_last_updated = $2, updated_at = $2 WHERE user_id = $3"
	return s.exec(ctx, queryString, digest, time.Now(), id)
}

func (s *PostgresUserStore) ResetPassword(ctx context.Context, id uuid.UUID, digest string) error {
	queryString := "UPDATE users SET password = $1, password_last_updated = $2, updated_at = $2, " +
		"reset_token = NULL, reset_created_at = NULL WHERE user_id = $3"
	return s.exec(ctx, queryString, digest, time.Now(), id)
}

func (s *PostgresUserStore) SetPasswordReset(ctx context.Context, id uuid.UUID, reset *schemas.PasswordReset) error {
	queryString := "UPDATE users SET reset_token = $1, reset_created_at = $2, updated_at = $3 WHERE user_id = $4"
	return s.exec(ctx, queryString, reset.Token, reset.CreatedAt, time.Now(), id)
}

func (s *PostgresUserStore) SetEmailUpdate(ctx context.Context, id uuid.UUID, update *schemas.EmailUpdate) error {
	queryString := "UPDATE users SET new_email = $1, email_token = $2, email_created_at = $3, updated_at = $4 WHERE user_id = $5"
	return s.exec(ctx, queryString, update.NewEmail, update.Token, update.CreatedAt, time.Now(), id)
}

func (s *PostgresUserStore) ApplyEmailUpdate(ctx context.Context, id uuid.UUID) (string, error) {
	queryString := "UPDATE users SET email = new_email, new_email = NULL, email_token = NULL, " +
		"email_created_at = NULL, updated_at = $1 WHERE user_id = $2 RETURNING email"

	var email string
	if err := s.pool.QueryRow(ctx, queryString, time.Now(), id).Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", mapUniqueViolation(err)
	}
	return email, nil
}

func (s *PostgresUserStore) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar *schemas.Avatar) error {
	queryString := "UPDATE users SET avatar = $1, avatar_mime = $2, updated_at = $3 WHERE user_id = $4"
	return s.exec(ctx, queryString, avatar.Data, avatar.MimeType, time.Now(), id)
}

func (s *PostgresUserStore) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName *string) error {
	queryString := "UPDATE users SET first_name = $1, last_name = $2, updated_at = $3 WHERE user_id = $4"
	return s.exec(ctx, queryString, firstName, lastName, time.Now(), id)
}

func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	commandTag, err := s.pool.Exec(ctx, "DELETE FROM users WHERE user_id = $1", id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresUserStore) exec(ctx context.Context, queryString string, args ...interface{}) error {
	commandTag, err := s.pool.Exec(ctx, queryString, args...)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanUser assembles a user record from a full-column row, folding the
// nullable token columns into their embedded record types.
func scanUser(row pgx.Row) (*schemas.User, error) {
	user := &schemas.User{}
	var (
		avatarData     []byte
		avatarMime     *string
		resetToken     *string
		resetCreatedAt *time.Time
		newEmail       *string
		emailToken     *string
		emailCreatedAt *time.Time
	)

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.PasswordLastUpdated,
		&user.Verified, &user.FirstName, &user.LastName, &avatarData, &avatarMime,
		&resetToken, &resetCreatedAt, &newEmail, &emailToken, &emailCreatedAt,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if avatarData != nil && avatarMime != nil {
		user.Avatar = &schemas.Avatar{Data: avatarData, MimeType: *avatarMime}
	}
	if resetToken != nil && resetCreatedAt != nil {
		user.PasswordReset = &schemas.PasswordReset{Token: *resetToken, CreatedAt: *resetCreatedAt}
	}
	if newEmail != nil && emailToken != nil && emailCreatedAt != nil {
		user.EmailUpdate = &schemas.EmailUpdate{NewEmail: *newEmail, Token: *emailToken, CreatedAt: *emailCreatedAt}
	}

	return user, nil
}

// mapUniqueViolation translates a unique-index violation into the
// matching sentinel. This is what closes the race between concurrent
// signups for the same identity: the index decides, not the pre-check.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return ErrEmailTaken
		}
		return ErrUsernameTaken
	}

	return err
}
