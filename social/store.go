package social

import "context"

// CounterField names a denormalized counter column. The storage layer
// whitelists these; an unknown field is a programming error, not input.
type CounterField string

const (
	CounterPosts     CounterField = "post_count"
	CounterFollowers CounterField = "followers_count"
	CounterFollowing CounterField = "following_count"
	CounterLikes     CounterField = "like_count"
	CounterComments  CounterField = "comment_count"
)

// UserStore persists principal records. Point lookups return
// ErrUserNotFound; creates translate uniqueness violations into the
// matching conflict sentinel.
type UserStore interface {
	CreateUser(ctx context.Context, user User) error
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByHandle(ctx context.Context, handle string) (User, error)
	// GetUserByCredential matches email, phone, or handle.
	GetUserByCredential(ctx context.Context, credential string) (User, error)
	UpdatePasswordDigest(ctx context.Context, id, digest string) error
	UpdateEmail(ctx context.Context, id, email string) error
	UpdateProfileURL(ctx context.Context, id, url string) error
	// AddToUserCounter applies an atomic delta; it must not read-then-write.
	AddToUserCounter(ctx context.Context, id string, field CounterField, delta int64) error
}

// PostStore persists posts and their denormalized counters.
type PostStore interface {
	CreatePost(ctx context.Context, post Post) error
	GetPostByID(ctx context.Context, id string) (Post, error)
	// ListPosts returns posts newest first.
	ListPosts(ctx context.Context) ([]Post, error)
	AddToPostCounter(ctx context.Context, id string, field CounterField, delta int64) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment Comment) error
	// ListComments returns a post's comments oldest first.
	ListComments(ctx context.Context, postID string) ([]Comment, error)
}

// EdgeStore persists relation edges. The uniqueness constraint on
// (kind, actor, target) is the only concurrency control the toggle needs:
// CreateEdge must return ErrDuplicateEdge when a concurrent caller won.
type EdgeStore interface {
	FindEdge(ctx context.Context, kind EdgeKind, actor, target string) (Edge, error)
	CreateEdge(ctx context.Context, edge Edge) error
	DeleteEdge(ctx context.Context, id string) error
}
