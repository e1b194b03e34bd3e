package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bilguun/peergram/cache"
)

// FeedService owns posts, comments, and the engagement toggles. It is the
// only component, together with its CounterSync, that mutates edges and
// denormalized counters. When a profile cache is configured it shares it
// with the account service: counter mutations here evict the cached
// profiles they invalidate.
type FeedService struct {
	users    UserStore
	posts    PostStore
	comments CommentStore
	toggle   *Toggle
	counters *CounterSync
	profiles cache.Store
	newID    func() string
	now      func() time.Time
}

// FeedServiceConfig wires the dependencies for FeedService. Profiles is
// optional and should be the same store the account service reads through.
type FeedServiceConfig struct {
	Users    UserStore
	Posts    PostStore
	Comments CommentStore
	Toggle   *Toggle
	Counters *CounterSync
	Profiles cache.Store
	IDFunc   func() string
	Now      func() time.Time
}

func NewFeedService(cfg FeedServiceConfig) (*FeedService, error) {
	if cfg.Users == nil || cfg.Posts == nil || cfg.Comments == nil {
		return nil, errors.New("social: feed service requires user, post, and comment stores")
	}
	if cfg.Toggle == nil || cfg.Counters == nil {
		return nil, errors.New("social: feed service requires toggle and counter sync")
	}
	svc := &FeedService{
		users:    cfg.Users,
		posts:    cfg.Posts,
		comments: cfg.Comments,
		toggle:   cfg.Toggle,
		counters: cfg.Counters,
		profiles: cfg.Profiles,
		newID:    cfg.IDFunc,
		now:      cfg.Now,
	}
	if svc.newID == nil {
		svc.newID = uuid.NewString
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

// CreatePost persists the post, then bumps the author's post counter. The
// counter write is independent; its failure leaves the post standing and
// the counter briefly stale.
func (s *FeedService) CreatePost(ctx context.Context, authorID, description, mediaURL string) (Post, error) {
	if authorID == "" {
		return Post{}, fmt.Errorf("%w: author required", ErrInvalidInput)
	}
	if description == "" && mediaURL == "" {
		return Post{}, fmt.Errorf("%w: post needs a description or media", ErrInvalidInput)
	}

	post := Post{
		ID:          s.newID(),
		AuthorID:    authorID,
		Description: description,
		MediaURL:    mediaURL,
		CreatedAt:   s.now(),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return Post{}, err
	}

	if err := s.users.AddToUserCounter(ctx, authorID, CounterPosts, 1); err != nil {
		return post, fmt.Errorf("social: post counter: %w", err)
	}
	s.evictProfiles(ctx, authorID)
	return post, nil
}

// ListPosts returns all posts newest first.
func (s *FeedService) ListPosts(ctx context.Context) ([]Post, error) {
	return s.posts.ListPosts(ctx)
}

// CreateComment persists the comment and bumps the post's comment counter.
func (s *FeedService) CreateComment(ctx context.Context, postID, authorID, text string) (Comment, error) {
	if text == "" {
		return Comment{}, fmt.Errorf("%w: comment text required", ErrInvalidInput)
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return Comment{}, err
	}

	comment := Comment{
		ID:        s.newID(),
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return Comment{}, err
	}

	if err := s.posts.AddToPostCounter(ctx, postID, CounterComments, 1); err != nil {
		return comment, fmt.Errorf("social: comment counter: %w", err)
	}
	return comment, nil
}

// ListComments returns a post's comments oldest first.
func (s *FeedService) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListComments(ctx, postID)
}

// ToggleLike flips the (post, actor) like edge and syncs the post's like
// counter with the outcome.
func (s *FeedService) ToggleLike(ctx context.Context, postID, actorID string) (ToggleResult, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return ToggleResult{}, err
	}

	result, err := s.toggle.Apply(ctx, EdgeLike, actorID, postID)
	if err != nil {
		return ToggleResult{}, err
	}
	if err := s.counters.Apply(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// ToggleFollow flips the (actor, target) follow edge and syncs both users'
// counters with the outcome. The target must exist; following yourself is
// rejected before any storage write. Both endpoints' cached profiles carry
// the follower counters, so both are evicted.
func (s *FeedService) ToggleFollow(ctx context.Context, actorID, targetID string) (ToggleResult, error) {
	if actorID == targetID {
		return ToggleResult{}, ErrSelfFollow
	}
	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		return ToggleResult{}, err
	}

	result, err := s.toggle.Apply(ctx, EdgeFollow, actorID, targetID)
	if err != nil {
		return ToggleResult{}, err
	}
	cerr := s.counters.Apply(ctx, result)
	s.evictProfiles(ctx, actorID, targetID)
	if cerr != nil {
		return result, cerr
	}
	return result, nil
}

// evictProfiles drops the cached profiles for the given user IDs so the
// next read sees the post-mutation counters.
func (s *FeedService) evictProfiles(ctx context.Context, userIDs ...string) {
	if s.profiles == nil {
		return
	}
	for _, id := range userIDs {
		user, err := s.users.GetUserByID(ctx, id)
		if err != nil {
			continue
		}
		_ = s.profiles.Delete(ctx, profileKey(user.Handle))
	}
}
