// Package api exposes the HTTP surface: request/response shapes, route
// registration, and the mapping from domain errors to status codes.
package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bilguun/peergram/auth"
	"github.com/bilguun/peergram/httpx"
	"github.com/bilguun/peergram/media"
	"github.com/bilguun/peergram/social"
)

// Handler carries the services behind every route.
type Handler struct {
	accounts *social.AccountService
	feed     *social.FeedService
	media    media.Store
	gateway  *auth.Gateway
}

// HandlerConfig wires the Handler's dependencies. Media is optional; the
// file routes respond with 500 when it is absent.
type HandlerConfig struct {
	Accounts *social.AccountService
	Feed     *social.FeedService
	Media    media.Store
	Gateway  *auth.Gateway
}

func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Accounts == nil || cfg.Feed == nil || cfg.Gateway == nil {
		return nil, errors.New("api: handler requires accounts, feed, and gateway")
	}
	return &Handler{
		accounts: cfg.Accounts,
		feed:     cfg.Feed,
		media:    cfg.Media,
		gateway:  cfg.Gateway,
	}, nil
}

// Register mounts all routes. Routes that act on behalf of a principal sit
// behind the token gateway.
func (h *Handler) Register(e *echo.Echo) {
	authed := h.gateway.Middleware()

	e.POST("/auth/signup", h.signUp)
	e.POST("/auth/signin", h.signIn)
	e.PUT("/auth/changePassword", h.changePassword)
	e.PUT("/auth/changeEmail", h.changeEmail)
	e.GET("/auth/me", h.me, authed)

	e.GET("/users/:username", h.profile)
	e.POST("/users/:id/follow", h.follow, authed)
	e.PUT("/users/:username/image", h.updateImage, authed)

	e.GET("/posts", h.listPosts)
	e.POST("/posts", h.createPost, authed)
	e.GET("/posts/:id/comments", h.listComments)
	e.POST("/posts/:id/comments", h.createComment, authed)
	e.POST("/posts/:id/like", h.like, authed)

	e.POST("/files", h.uploadFile, authed)
}

// httpError translates domain sentinels into the stable status/message
// pairs clients rely on. Anything unmapped is a 500 with no detail.
func httpError(err error) error {
	switch {
	case errors.Is(err, social.ErrIncorrectPassword):
		return httpx.Error(httpx.StatusBadRequest, "Incorrect password")
	case errors.Is(err, social.ErrHandleTaken):
		return httpx.Error(httpx.StatusBadRequest, "Username already in use")
	case errors.Is(err, social.ErrEmailTaken):
		return httpx.Error(httpx.StatusBadRequest, "Email already in use")
	case errors.Is(err, social.ErrPhoneTaken):
		return httpx.Error(httpx.StatusBadRequest, "Phone number already in use")
	case errors.Is(err, social.ErrInvalidInput),
		errors.Is(err, social.ErrInvalidCredential),
		errors.Is(err, social.ErrWeakPassword),
		errors.Is(err, social.ErrSelfFollow):
		return httpx.Error(httpx.StatusBadRequest, err.Error())
	case errors.Is(err, social.ErrUserNotFound):
		return httpx.Error(httpx.StatusNotFound, "User not found")
	case errors.Is(err, social.ErrPostNotFound):
		return httpx.Error(httpx.StatusNotFound, "Post not found")
	default:
		return err
	}
}

// userView is the public projection of a user; the password digest never
// leaves the server.
type userView struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullname"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	ProfileURL     string    `json:"profileUrl,omitempty"`
	PostCount      int64     `json:"postCount"`
	FollowersCount int64     `json:"followersCount"`
	FollowingCount int64     `json:"followingCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

func viewOfUser(u social.User) userView {
	return userView{
		ID:             u.ID,
		FullName:       u.FullName,
		Username:       u.Handle,
		Email:          u.Email,
		Phone:          u.Phone,
		ProfileURL:     u.ProfileURL,
		PostCount:      u.PostCount,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		CreatedAt:      u.CreatedAt,
	}
}

type postView struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	Description  string    `json:"description,omitempty"`
	MediaURL     string    `json:"mediaUrl,omitempty"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

func viewOfPost(p social.Post) postView {
	return postView{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Description:  p.Description,
		MediaURL:     p.MediaURL,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
	}
}

// principalUser pulls the authenticated user out of the request context.
func principalUser(c echo.Context) (social.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return social.User{}, httpx.Error(httpx.StatusUnauthorized, "authentication required")
	}
	user, ok := principal.(social.User)
	if !ok {
		return social.User{}, httpx.Error(httpx.StatusUnauthorized, "authentication required")
	}
	return user, nil
}
