package api

import (
	"github.com/labstack/echo/v4"

	"github.com/bilguun/peergram/httpx"
)

func (h *Handler) uploadFile(c echo.Context) error {
	if h.media == nil {
		return httpx.Error(httpx.StatusInternalError, "file storage not configured")
	}
	if _, err := principalUser(c); err != nil {
		return err
	}

	name, data, err := readFormFile(c, "file")
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return httpx.Error(httpx.StatusBadRequest, "empty file")
	}

	url, err := h.media.Upload(c.Request().Context(), name, data)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusCreated, map[string]string{"url": url})
}
