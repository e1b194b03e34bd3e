package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome reports the state of an edge after a toggle call.
type Outcome int

const (
	// OutcomeAdded means the edge exists after the call.
	OutcomeAdded Outcome = iota
	// OutcomeRemoved means the edge is absent after the call.
	OutcomeRemoved
)

func (o Outcome) String() string {
	if o == OutcomeAdded {
		return "added"
	}
	return "removed"
}

// ToggleResult identifies the toggled pair and the surviving state; it
// carries everything the counter synchronizer needs.
type ToggleResult struct {
	Outcome Outcome
	Kind    EdgeKind
	Actor   string
	Target  string

	// Mutated reports whether this call changed storage itself. A toggle
	// that loses a delete race still observes the edge as absent, but the
	// concurrent winner already owns the counter delta.
	Mutated bool
}

// Toggle implements create-or-delete semantics for any edge kind. It holds
// no locks: the storage uniqueness constraint arbitrates races, and an
// insert that loses the race is resolved as a removal so the caller always
// sees the edge's state after this call.
type Toggle struct {
	edges EdgeStore
	newID func() string
	now   func() time.Time
}

// ToggleOption configures a Toggle.
type ToggleOption func(*Toggle)

// WithToggleNowFunc injects a deterministic clock for tests.
func WithToggleNowFunc(fn func() time.Time) ToggleOption {
	return func(t *Toggle) {
		if fn != nil {
			t.now = fn
		}
	}
}

// WithToggleIDFunc injects a deterministic ID source for tests.
func WithToggleIDFunc(fn func() string) ToggleOption {
	return func(t *Toggle) {
		if fn != nil {
			t.newID = fn
		}
	}
}

func NewToggle(edges EdgeStore, opts ...ToggleOption) (*Toggle, error) {
	if edges == nil {
		return nil, errors.New("social: toggle requires an edge store")
	}
	t := &Toggle{edges: edges, newID: uuid.NewString, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t, nil
}

// Apply toggles the edge for (actor, target). Self-relations are rejected
// for follows before any storage access.
func (t *Toggle) Apply(ctx context.Context, kind EdgeKind, actor, target string) (ToggleResult, error) {
	if actor == "" || target == "" {
		return ToggleResult{}, fmt.Errorf("%w: empty edge endpoint", ErrInvalidInput)
	}
	if kind == EdgeFollow && actor == target {
		return ToggleResult{}, ErrSelfFollow
	}

	result := ToggleResult{Kind: kind, Actor: actor, Target: target}

	existing, err := t.edges.FindEdge(ctx, kind, actor, target)
	switch {
	case err == nil:
		deleted, err := t.removeEdge(ctx, existing.ID)
		if err != nil {
			return ToggleResult{}, err
		}
		result.Outcome = OutcomeRemoved
		result.Mutated = deleted
		return result, nil
	case !errors.Is(err, ErrEdgeNotFound):
		return ToggleResult{}, fmt.Errorf("social: edge lookup: %w", err)
	}

	edge := Edge{ID: t.newID(), Kind: kind, Actor: actor, Target: target, CreatedAt: t.now()}
	err = t.edges.CreateEdge(ctx, edge)
	switch {
	case err == nil:
		result.Outcome = OutcomeAdded
		result.Mutated = true
		return result, nil
	case errors.Is(err, ErrDuplicateEdge):
		// A concurrent caller inserted first. Treat their edge as the one
		// we found and remove it, so at most one edge ever survives.
		winner, ferr := t.edges.FindEdge(ctx, kind, actor, target)
		if ferr == nil {
			deleted, derr := t.removeEdge(ctx, winner.ID)
			if derr != nil {
				return ToggleResult{}, derr
			}
			result.Mutated = deleted
		} else if !errors.Is(ferr, ErrEdgeNotFound) {
			return ToggleResult{}, fmt.Errorf("social: edge lookup: %w", ferr)
		}
		result.Outcome = OutcomeRemoved
		return result, nil
	default:
		return ToggleResult{}, fmt.Errorf("social: edge insert: %w", err)
	}
}

// removeEdge reports whether this call performed the delete. A concurrent
// delete leaves the same final state, but the edge was not ours to count.
func (t *Toggle) removeEdge(ctx context.Context, id string) (bool, error) {
	err := t.edges.DeleteEdge(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrEdgeNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("social: edge delete: %w", err)
	}
}

// CounterSync applies the counter delta implied by a toggle outcome. The
// increments are atomic at the storage layer and independent of the edge
// write: a failure here leaves a drifted counter, which is accepted as a
// bounded inconsistency rather than rolled back.
type CounterSync struct {
	users UserStore
	posts PostStore
}

func NewCounterSync(users UserStore, posts PostStore) (*CounterSync, error) {
	if users == nil || posts == nil {
		return nil, errors.New("social: counter sync requires user and post stores")
	}
	return &CounterSync{users: users, posts: posts}, nil
}

// Apply adjusts exactly the counters tied to the result's edge kind.
// Results whose write was performed by a concurrent caller carry no delta.
func (s *CounterSync) Apply(ctx context.Context, result ToggleResult) error {
	if !result.Mutated {
		return nil
	}

	var delta int64 = 1
	if result.Outcome == OutcomeRemoved {
		delta = -1
	}

	switch result.Kind {
	case EdgeFollow:
		if err := s.users.AddToUserCounter(ctx, result.Target, CounterFollowers, delta); err != nil {
			return fmt.Errorf("social: followers counter: %w", err)
		}
		if err := s.users.AddToUserCounter(ctx, result.Actor, CounterFollowing, delta); err != nil {
			return fmt.Errorf("social: following counter: %w", err)
		}
		return nil
	case EdgeLike:
		if err := s.posts.AddToPostCounter(ctx, result.Target, CounterLikes, delta); err != nil {
			return fmt.Errorf("social: like counter: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("social: unknown edge kind %v", result.Kind)
	}
}
