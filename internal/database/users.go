package database

import (
	"context"
	"errors"

	"dining-reviews/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrUsernameTaken = errors.New("username is already taken")

const userColumns = `id, username, password_hash, profile_image_id, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.ProfileImageID,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type CreateUserParams struct {
	Username       string
	PasswordHash   string
	ProfileImageID *string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, profile_image_id)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(q.db.QueryRow(ctx, query, arg.Username, arg.PasswordHash, arg.ProfileImageID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID returns nil, nil when no user has the id.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(q.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsername returns nil, nil when the username is unknown.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(q.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (q *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`

	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

type UpdateUserParams struct {
	Username       string
	PasswordHash   string
	ProfileImageID *string
}

// UpdateUserByUsername overwrites the password hash and profile image of the
// named user. It reports whether a row matched.
func (q *Queries) UpdateUserByUsername(ctx context.Context, arg UpdateUserParams) (bool, error) {
	query := `UPDATE users SET password_hash = $2, profile_image_id = $3 WHERE username = $1`

	res, err := q.db.Exec(ctx, query, arg.Username, arg.PasswordHash, arg.ProfileImageID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// DeleteUserByUsername returns the removed user, or nil, nil if none matched.
func (q *Queries) DeleteUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `DELETE FROM users WHERE username = $1 RETURNING ` + userColumns

	user, err := scanUser(q.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
