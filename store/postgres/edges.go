package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/bilguun/peergram/social"
)

// EdgeRepository persists relation edges. The edges_pair_uniq constraint
// guarantees at most one row per (kind, actor, target); a violation on
// insert means a concurrent toggle won the race.
type EdgeRepository struct {
	db *sql.DB
}

// NewEdgeRepository wraps an existing *sql.DB connection.
func NewEdgeRepository(db *sql.DB) *EdgeRepository {
	return &EdgeRepository{db: db}
}

func (r *EdgeRepository) FindEdge(ctx context.Context, kind social.EdgeKind, actor, target string) (social.Edge, error) {
	const query = `SELECT id, kind, actor_id, target_id, created_at FROM edges
                   WHERE kind = $1 AND actor_id = $2 AND target_id = $3`
	var edge social.Edge
	err := r.db.QueryRowContext(ctx, query, kind, actor, target).Scan(
		&edge.ID,
		&edge.Kind,
		&edge.Actor,
		&edge.Target,
		&edge.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return social.Edge{}, social.ErrEdgeNotFound
		}
		return social.Edge{}, err
	}
	return edge, nil
}

func (r *EdgeRepository) CreateEdge(ctx context.Context, edge social.Edge) error {
	const query = `INSERT INTO edges (id, kind, actor_id, target_id, created_at)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		edge.ID, edge.Kind, edge.Actor, edge.Target, edge.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return social.ErrDuplicateEdge
	}
	return err
}

func (r *EdgeRepository) DeleteEdge(ctx context.Context, id string) error {
	const query = `DELETE FROM edges WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return social.ErrEdgeNotFound
	}
	return nil
}
