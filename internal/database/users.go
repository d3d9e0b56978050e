package database

import (
	"context"
	"errors"
	"items-backend/internal/models"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

var ErrEmailTaken = errors.New("a user with this email already exists")

const userColumns = `id, email, password_hash, display_name, avatar_url, created_at, updated_at, last_login`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	DisplayName  *string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(q.db.QueryRow(ctx, query, strings.ToLower(arg.Email), arg.PasswordHash, arg.DisplayName))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(q.db.QueryRow(ctx, query, email))
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.db.QueryRow(ctx, query, id))
}

// UserPatch holds the profile fields a caller wants to change. Nil fields are
// left untouched.
type UserPatch struct {
	Email       *string
	DisplayName *string
	AvatarURL   *string
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.DisplayName == nil && p.AvatarURL == nil
}

func (q *Queries) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*models.User, error) {
	query := `
		UPDATE users
		SET
			email = COALESCE($2, email),
			display_name = COALESCE($3, display_name),
			avatar_url = COALESCE($4, avatar_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var email *string
	if patch.Email != nil {
		lowered := strings.ToLower(*patch.Email)
		email = &lowered
	}

	user, err := scanUser(q.db.QueryRow(ctx, query, id, email, patch.DisplayName, patch.AvatarURL))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (q *Queries) UpdateUserPassword(ctx context.Context, userID int64, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	_, err := q.db.Exec(ctx, query, newPasswordHash, userID)
	return err
}

func (q *Queries) TouchLastLogin(ctx context.Context, userID int64, at time.Time) error {
	query := `UPDATE users SET last_login = $1 WHERE id = $2`
	_, err := q.db.Exec(ctx, query, at, userID)
	return err
}

// DeleteUser removes the user; items, sessions, uploads and events cascade.
func (q *Queries) DeleteUser(ctx context.Context, userID int64) (bool, error) {
	res, err := q.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
