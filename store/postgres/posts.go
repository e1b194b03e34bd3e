package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bilguun/peergram/social"
)

const postColumns = `id, author_id, description, media_url, like_count, comment_count, created_at`

// PostRepository persists social.Post records inside PostgreSQL.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository wraps an existing *sql.DB connection.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) CreatePost(ctx context.Context, post social.Post) error {
	const query = `INSERT INTO posts (` + postColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.AuthorID, post.Description, post.MediaURL,
		post.LikeCount, post.CommentCount, post.CreatedAt,
	)
	return err
}

func (r *PostRepository) GetPostByID(ctx context.Context, id string) (social.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	var post social.Post
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Description,
		&post.MediaURL,
		&post.LikeCount,
		&post.CommentCount,
		&post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return social.Post{}, social.ErrPostNotFound
		}
		return social.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) ListPosts(ctx context.Context) ([]social.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []social.Post
	for rows.Next() {
		var post social.Post
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Description,
			&post.MediaURL,
			&post.LikeCount,
			&post.CommentCount,
			&post.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// AddToPostCounter applies an atomic delta to one counter column.
func (r *PostRepository) AddToPostCounter(ctx context.Context, id string, field social.CounterField, delta int64) error {
	switch field {
	case social.CounterLikes, social.CounterComments:
	default:
		return fmt.Errorf("postgres: unknown post counter %q", field)
	}
	query := fmt.Sprintf(`UPDATE posts SET %s = %s + $2 WHERE id = $1`, field, field)
	res, err := r.db.ExecContext(ctx, query, id, delta)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return social.ErrPostNotFound
	}
	return nil
}
