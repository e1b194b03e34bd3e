package social

import "time"

// User is the principal record. Email and phone are optional but unique
// when present; the handle is always unique. The three counters are a
// derived cache of edge cardinality, never the source of truth.
type User struct {
	ID             string
	Email          string
	Phone          string
	FullName       string
	Handle         string
	PasswordDigest string
	ProfileURL     string
	PostCount      int64
	FollowersCount int64
	FollowingCount int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PrincipalID satisfies auth.Principal.
func (u User) PrincipalID() string { return u.ID }

// Post carries denormalized like and comment counters alongside content.
type Post struct {
	ID           string
	AuthorID     string
	Description  string
	MediaURL     string
	LikeCount    int64
	CommentCount int64
	CreatedAt    time.Time
}

type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

// EdgeKind names a binary relation persisted as edges.
type EdgeKind int

const (
	// EdgeFollow relates an actor user to a target user.
	EdgeFollow EdgeKind = iota
	// EdgeLike relates an actor user to a target post.
	EdgeLike
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeFollow:
		return "follow"
	case EdgeLike:
		return "like"
	default:
		return "unknown"
	}
}

// Edge is one persisted record of a binary relation. At most one edge may
// exist per (kind, actor, target) triple; the storage layer enforces it.
type Edge struct {
	ID        string
	Kind      EdgeKind
	Actor     string
	Target    string
	CreatedAt time.Time
}
