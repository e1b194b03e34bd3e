package postgres

import (
	"context"
	"database/sql"

	"github.com/bilguun/peergram/social"
)

// CommentRepository persists social.Comment records inside PostgreSQL.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository wraps an existing *sql.DB connection.
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment social.Comment) error {
	const query = `INSERT INTO comments (id, post_id, author_id, body, created_at)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Text, comment.CreatedAt,
	)
	return err
}

// ListComments returns a post's comments oldest first.
func (r *CommentRepository) ListComments(ctx context.Context, postID string) ([]social.Comment, error) {
	const query = `SELECT id, post_id, author_id, body, created_at FROM comments
                   WHERE post_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []social.Comment
	for rows.Next() {
		var comment social.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
