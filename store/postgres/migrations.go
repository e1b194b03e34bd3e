package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// ApplyMigrations executes the provided SQL statements in order within the given context.
func ApplyMigrations(ctx context.Context, db *sql.DB, statements ...string) error {
	if db == nil {
		return fmt.Errorf("postgres: db is nil")
	}
	for _, stmt := range statements {
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}

// Schema returns the DDL statements for all peergram tables, in apply order.
func Schema() []string {
	return []string{
		usersTableSchema,
		postsTableSchema,
		commentsTableSchema,
		edgesTableSchema,
	}
}

const usersTableSchema = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    email           TEXT NOT NULL DEFAULT '',
    phone           TEXT NOT NULL DEFAULT '',
    full_name       TEXT NOT NULL,
    handle          TEXT NOT NULL,
    password_digest TEXT NOT NULL,
    profile_url     TEXT NOT NULL DEFAULT '',
    post_count      BIGINT NOT NULL DEFAULT 0,
    followers_count BIGINT NOT NULL DEFAULT 0,
    following_count BIGINT NOT NULL DEFAULT 0,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL,
    CONSTRAINT users_handle_uniq UNIQUE (handle)
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_uniq ON users (email) WHERE email <> '';
CREATE UNIQUE INDEX IF NOT EXISTS users_phone_uniq ON users (phone) WHERE phone <> '';
`

const postsTableSchema = `
CREATE TABLE IF NOT EXISTS posts (
    id            TEXT PRIMARY KEY,
    author_id     TEXT NOT NULL REFERENCES users (id),
    description   TEXT NOT NULL DEFAULT '',
    media_url     TEXT NOT NULL DEFAULT '',
    like_count    BIGINT NOT NULL DEFAULT 0,
    comment_count BIGINT NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts (created_at DESC);
`

const commentsTableSchema = `
CREATE TABLE IF NOT EXISTS comments (
    id         TEXT PRIMARY KEY,
    post_id    TEXT NOT NULL REFERENCES posts (id),
    author_id  TEXT NOT NULL,
    body       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
`

// The unique triple constraint is the concurrency control for the
// relationship toggles: at most one edge may exist per (kind, actor, target).
const edgesTableSchema = `
CREATE TABLE IF NOT EXISTS edges (
    id         TEXT PRIMARY KEY,
    kind       SMALLINT NOT NULL,
    actor_id   TEXT NOT NULL,
    target_id  TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    CONSTRAINT edges_pair_uniq UNIQUE (kind, actor_id, target_id)
);
CREATE INDEX IF NOT EXISTS edges_target_idx ON edges (kind, target_id);
`
