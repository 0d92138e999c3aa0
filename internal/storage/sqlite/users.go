package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, strings.ToLower(user.Email), user.PasswordHash,
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt))
	if isUniqueViolation(err) {
		return apperrors.Conflict("an account with this email already exists")
	}
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users WHERE email = ?`, strings.ToLower(email))
	return scanUser(row)
}

// ListUsers returns every account ordered by creation time
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		hash, formatTime(at), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

func scanUser(row scanner) (models.User, error) {
	var u models.User
	var createdAt, updatedAt string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, apperrors.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, err
	}

	if u.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.User{}, err
	}
	if u.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) SaveResetToken(ctx context.Context, token models.ResetToken) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO password_resets (token_hash, user_id, expires_at)
		VALUES (?, ?, ?)`,
		token.TokenHash, token.UserID, formatTime(token.ExpiresAt))
	return err
}

func (s *Store) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (models.ResetToken, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE password_resets SET used_at = ?
		WHERE token_hash = ? AND used_at IS NULL AND expires_at > ?
		RETURNING token_hash, user_id, expires_at, used_at`,
		formatTime(now), tokenHash, formatTime(now))

	var t models.ResetToken
	var expiresAt string
	var usedAt sql.NullString
	err := row.Scan(&t.TokenHash, &t.UserID, &expiresAt, &usedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ResetToken{}, apperrors.NotFound("reset token is invalid or expired")
	}
	if err != nil {
		return models.ResetToken{}, err
	}

	if t.ExpiresAt, err = parseTime("expires_at", expiresAt); err != nil {
		return models.ResetToken{}, err
	}
	if usedAt.Valid {
		used, err := parseTime("used_at", usedAt.String)
		if err != nil {
			return models.ResetToken{}, fmt.Errorf("reset token: %w", err)
		}
		t.UsedAt = &used
	}
	return t, nil
}
