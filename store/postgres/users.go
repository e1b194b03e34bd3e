package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/bilguun/peergram/social"
)

const userColumns = `id, email, phone, full_name, handle, password_digest, profile_url,
                     post_count, followers_count, following_count, created_at, updated_at`

// UserRepository persists social.User records inside PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository wraps an existing *sql.DB connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user social.User) error {
	const query = `INSERT INTO users (` + userColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Phone, user.FullName, user.Handle,
		user.PasswordDigest, user.ProfileURL,
		user.PostCount, user.FollowersCount, user.FollowingCount,
		user.CreatedAt, user.UpdatedAt,
	)
	return translateUserError(err)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (social.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetUserByHandle(ctx context.Context, handle string) (social.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE handle = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, handle))
}

func (r *UserRepository) GetUserByCredential(ctx context.Context, credential string) (social.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
                   WHERE handle = $1
                      OR (email <> '' AND email = $1)
                      OR (phone <> '' AND phone = $1)`
	return r.scanUser(r.db.QueryRowContext(ctx, query, credential))
}

func (r *UserRepository) UpdatePasswordDigest(ctx context.Context, id, digest string) error {
	const query = `UPDATE users SET password_digest = $2, updated_at = now() WHERE id = $1`
	return r.execOnUser(ctx, query, id, digest)
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id, email string) error {
	const query = `UPDATE users SET email = $2, updated_at = now() WHERE id = $1`
	return r.execOnUser(ctx, query, id, email)
}

func (r *UserRepository) UpdateProfileURL(ctx context.Context, id, url string) error {
	const query = `UPDATE users SET profile_url = $2, updated_at = now() WHERE id = $1`
	return r.execOnUser(ctx, query, id, url)
}

// AddToUserCounter applies an atomic delta to one counter column. The field
// is interpolated into the statement, so it must pass the whitelist first.
func (r *UserRepository) AddToUserCounter(ctx context.Context, id string, field social.CounterField, delta int64) error {
	switch field {
	case social.CounterPosts, social.CounterFollowers, social.CounterFollowing:
	default:
		return fmt.Errorf("postgres: unknown user counter %q", field)
	}
	query := fmt.Sprintf(`UPDATE users SET %s = %s + $2 WHERE id = $1`, field, field)
	return r.execOnUser(ctx, query, id, delta)
}

func (r *UserRepository) execOnUser(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateUserError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return social.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (social.User, error) {
	var user social.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Phone,
		&user.FullName,
		&user.Handle,
		&user.PasswordDigest,
		&user.ProfileURL,
		&user.PostCount,
		&user.FollowersCount,
		&user.FollowingCount,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return social.User{}, social.ErrUserNotFound
		}
		return social.User{}, translateUserError(err)
	}
	return user, nil
}

func translateUserError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "users_handle_uniq":
			return social.ErrHandleTaken
		case "users_email_uniq":
			return social.ErrEmailTaken
		case "users_phone_uniq":
			return social.ErrPhoneTaken
		}
	}
	return err
}
