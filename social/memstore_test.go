package social

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// In-memory store doubles. memEdges enforces the pair uniqueness
// constraint under a mutex so concurrent toggle tests exercise the same
// race-resolution path the real storage layer provides.

type memUsers struct {
	mu    sync.Mutex
	users map[string]User
}

func newMemUsers() *memUsers { return &memUsers{users: make(map[string]User)} }

func (m *memUsers) CreateUser(_ context.Context, user User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Handle == user.Handle {
			return ErrHandleTaken
		}
		if user.Email != "" && existing.Email == user.Email {
			return ErrEmailTaken
		}
		if user.Phone != "" && existing.Phone == user.Phone {
			return ErrPhoneTaken
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (m *memUsers) GetUserByHandle(_ context.Context, handle string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Handle == handle {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (m *memUsers) GetUserByCredential(_ context.Context, credential string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Handle == credential ||
			(user.Email != "" && user.Email == credential) ||
			(user.Phone != "" && user.Phone == credential) {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (m *memUsers) UpdatePasswordDigest(_ context.Context, id, digest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordDigest = digest
	m.users[id] = user
	return nil
}

func (m *memUsers) UpdateEmail(_ context.Context, id, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for otherID, existing := range m.users {
		if otherID != id && existing.Email == email {
			return ErrEmailTaken
		}
	}
	user, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Email = email
	m.users[id] = user
	return nil
}

func (m *memUsers) UpdateProfileURL(_ context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.ProfileURL = url
	m.users[id] = user
	return nil
}

func (m *memUsers) AddToUserCounter(_ context.Context, id string, field CounterField, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	switch field {
	case CounterPosts:
		user.PostCount += delta
	case CounterFollowers:
		user.FollowersCount += delta
	case CounterFollowing:
		user.FollowingCount += delta
	default:
		return fmt.Errorf("memUsers: unknown counter %q", field)
	}
	m.users[id] = user
	return nil
}

type memPosts struct {
	mu    sync.Mutex
	posts map[string]Post
}

func newMemPosts() *memPosts { return &memPosts{posts: make(map[string]Post)} }

func (m *memPosts) CreatePost(_ context.Context, post Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[post.ID] = post
	return nil
}

func (m *memPosts) GetPostByID(_ context.Context, id string) (Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	return post, nil
}

func (m *memPosts) ListPosts(_ context.Context) ([]Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Post, 0, len(m.posts))
	for _, post := range m.posts {
		out = append(out, post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPosts) AddToPostCounter(_ context.Context, id string, field CounterField, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return ErrPostNotFound
	}
	switch field {
	case CounterLikes:
		post.LikeCount += delta
	case CounterComments:
		post.CommentCount += delta
	default:
		return fmt.Errorf("memPosts: unknown counter %q", field)
	}
	m.posts[id] = post
	return nil
}

type memComments struct {
	mu       sync.Mutex
	comments []Comment
}

func newMemComments() *memComments { return &memComments{} }

func (m *memComments) CreateComment(_ context.Context, comment Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = append(m.comments, comment)
	return nil
}

func (m *memComments) ListComments(_ context.Context, postID string) ([]Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			out = append(out, comment)
		}
	}
	return out, nil
}

type memEdges struct {
	mu    sync.Mutex
	byID  map[string]Edge
	pairs map[string]string // pair key -> edge ID
}

func newMemEdges() *memEdges {
	return &memEdges{byID: make(map[string]Edge), pairs: make(map[string]string)}
}

func pairKey(kind EdgeKind, actor, target string) string {
	return fmt.Sprintf("%d|%s|%s", kind, actor, target)
}

func (m *memEdges) FindEdge(_ context.Context, kind EdgeKind, actor, target string) (Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.pairs[pairKey(kind, actor, target)]
	if !ok {
		return Edge{}, ErrEdgeNotFound
	}
	return m.byID[id], nil
}

func (m *memEdges) CreateEdge(_ context.Context, edge Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey(edge.Kind, edge.Actor, edge.Target)
	if _, exists := m.pairs[key]; exists {
		return ErrDuplicateEdge
	}
	m.pairs[key] = edge.ID
	m.byID[edge.ID] = edge
	return nil
}

func (m *memEdges) DeleteEdge(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	edge, ok := m.byID[id]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(m.byID, id)
	delete(m.pairs, pairKey(edge.Kind, edge.Actor, edge.Target))
	return nil
}

func (m *memEdges) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
