package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"patitas/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Store interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error
	DeleteRefreshToken(ctx context.Context, userID int64) error
	GetRefreshToken(ctx context.Context, userID int64) (string, error)
	UpdateResetToken(ctx context.Context, email, resetToken string, resetTokenExpires time.Time) error
	GetByResetToken(ctx context.Context, resetToken string) (*User, error)
	UpdatePassword(ctx context.Context, user *User) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

const uniqueViolation = "23505"

func (r *Repository) Create(ctx context.Context, user *User) error {
	query := `
	  INSERT INTO users (alias, email, password) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, user.Alias, user.Email, user.Password.hash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "users_email_key" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*User, error) {
	query := `
		SELECT id, alias, email, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var user User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Alias, &user.Email, &user.Password.hash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail matches case-insensitively; emails are stored as typed at registration.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, alias, email, password, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var user User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Alias, &user.Email, &user.Password.hash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `UPDATE users SET refresh_token = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, refreshToken, userID); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *Repository) DeleteRefreshToken(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `UPDATE users SET refresh_token = NULL, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken returns the stored refresh token, or ErrNotFound when the user has
// none (never logged in, or logged out).
func (r *Repository) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var refreshToken *string
	err := r.db.QueryRow(ctx, `SELECT refresh_token FROM users WHERE id = $1`, userID).Scan(&refreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to retrieve refresh token: %w", err)
	}
	if refreshToken == nil {
		return "", ErrNotFound
	}
	return *refreshToken, nil
}

// UpdateResetToken stores the hashed reset token. ErrNotFound when no user has email.
func (r *Repository) UpdateResetToken(ctx context.Context, email, resetToken string, resetTokenExpires time.Time) error {
	query := `
        UPDATE users
        SET reset_password_token = $1, reset_password_expires = $2
        WHERE LOWER(email) = LOWER($3)
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, resetToken, resetTokenExpires, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetByResetToken(ctx context.Context, resetToken string) (*User, error) {
	query := `
        SELECT id, alias, email, password, reset_password_token, reset_password_expires, created_at, updated_at
        FROM users
        WHERE reset_password_token = $1
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var user User
	err := r.db.QueryRow(ctx, query, resetToken).Scan(
		&user.ID, &user.Alias, &user.Email, &user.Password.hash,
		&user.ResetPasswordToken, &user.ResetPasswordExpires, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword writes the new hash and clears any pending reset token and the
// refresh token, so sessions opened with the old password cannot refresh.
func (r *Repository) UpdatePassword(ctx context.Context, user *User) error {
	query := `
        UPDATE users
        SET password = $1,
            reset_password_token = NULL,
            reset_password_expires = NULL,
            refresh_token = NULL,
            updated_at = NOW()
        WHERE id = $2
        RETURNING updated_at
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if err := r.db.QueryRow(ctx, query, user.Password.hash, user.ID).Scan(&user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	return nil
}
