package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bilguun/peergram/httpx"
	"github.com/bilguun/peergram/social"
)

func (h *Handler) listPosts(c echo.Context) error {
	posts, err := h.feed.ListPosts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, viewOfPost(post))
	}
	return c.JSON(httpx.StatusOK, views)
}

type createPostRequest struct {
	Description string `json:"description"`
	MediaURL    string `json:"mediaUrl"`
}

func (h *Handler) createPost(c echo.Context) error {
	author, err := principalUser(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(httpx.StatusBadRequest, "malformed request body")
	}

	post, err := h.feed.CreatePost(c.Request().Context(), author.ID, req.Description, req.MediaURL)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusCreated, viewOfPost(post))
}

type createCommentRequest struct {
	Text string `json:"text"`
}

type commentView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) createComment(c echo.Context) error {
	author, err := principalUser(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(httpx.StatusBadRequest, "malformed request body")
	}

	comment, err := h.feed.CreateComment(c.Request().Context(), c.Param("id"), author.ID, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusCreated, commentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
}

func (h *Handler) listComments(c echo.Context) error {
	comments, err := h.feed.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	views := make([]commentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, commentView{
			ID:        comment.ID,
			PostID:    comment.PostID,
			AuthorID:  comment.AuthorID,
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}
	return c.JSON(httpx.StatusOK, views)
}

func likeOutcome(r social.ToggleResult) string {
	if r.Outcome == social.OutcomeAdded {
		return "liked"
	}
	return "unliked"
}

func (h *Handler) like(c echo.Context) error {
	actor, err := principalUser(c)
	if err != nil {
		return err
	}

	result, err := h.feed.ToggleLike(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusOK, toggleResponse{Outcome: likeOutcome(result), Target: result.Target})
}
