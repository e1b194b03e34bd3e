package api

import (
	"io"

	"github.com/labstack/echo/v4"

	"github.com/bilguun/peergram/httpx"
	"github.com/bilguun/peergram/social"
)

func (h *Handler) profile(c echo.Context) error {
	user, err := h.accounts.Profile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusOK, viewOfUser(user))
}

type toggleResponse struct {
	Outcome string `json:"outcome"`
	Target  string `json:"target"`
}

func followOutcome(r social.ToggleResult) string {
	if r.Outcome == social.OutcomeAdded {
		return "followed"
	}
	return "unfollowed"
}

func (h *Handler) follow(c echo.Context) error {
	actor, err := principalUser(c)
	if err != nil {
		return err
	}

	result, err := h.feed.ToggleFollow(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusOK, toggleResponse{Outcome: followOutcome(result), Target: result.Target})
}

func (h *Handler) updateImage(c echo.Context) error {
	user, err := principalUser(c)
	if err != nil {
		return err
	}
	if user.Handle != c.Param("username") {
		return httpx.Error(httpx.StatusForbidden, "cannot change another user's image")
	}

	name, data, err := readFormFile(c, "image")
	if err != nil {
		return err
	}

	url, err := h.accounts.UpdateProfileImage(c.Request().Context(), user.ID, name, data)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusOK, map[string]string{"profileUrl": url})
}

func readFormFile(c echo.Context, field string) (string, []byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil, httpx.Error(httpx.StatusBadRequest, "file field required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, httpx.Error(httpx.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, httpx.Error(httpx.StatusBadRequest, "unreadable file")
	}
	return fileHeader.Filename, data, nil
}
