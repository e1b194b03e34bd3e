package api

import (
	"github.com/labstack/echo/v4"

	"github.com/bilguun/peergram/httpx"
	"github.com/bilguun/peergram/social"
)

type signUpRequest struct {
	Credential string `json:"credential"`
	Password   string `json:"password"`
	FullName   string `json:"fullname"`
	Username   string `json:"username"`
}

func (h *Handler) signUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(httpx.StatusBadRequest, "malformed request body")
	}

	user, err := h.accounts.SignUp(c.Request().Context(), social.SignUpInput{
		Credential: req.Credential,
		Password:   req.Password,
		FullName:   req.FullName,
		Handle:     req.Username,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusCreated, viewOfUser(user))
}

type signInRequest struct {
	Credential string `json:"credential"`
	Password   string `json:"password"`
}

type signInResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (h *Handler) signIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(httpx.StatusBadRequest, "malformed request body")
	}

	user, token, err := h.accounts.SignIn(c.Request().Context(), req.Credential, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusOK, signInResponse{Token: token, User: viewOfUser(user)})
}

type changePasswordRequest struct {
	Credential  string `json:"credential"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) changePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(httpx.StatusBadRequest, "malformed request body")
	}

	if err := h.accounts.ChangePassword(c.Request().Context(), req.Credential, req.Password, req.NewPassword); err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusOK, map[string]string{"status": "password changed"})
}

type changeEmailRequest struct {
	Credential string `json:"credential"`
	Password   string `json:"password"`
	NewEmail   string `json:"newEmail"`
}

func (h *Handler) changeEmail(c echo.Context) error {
	var req changeEmailRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(httpx.StatusBadRequest, "malformed request body")
	}

	if err := h.accounts.ChangeEmail(c.Request().Context(), req.Credential, req.Password, req.NewEmail); err != nil {
		return httpError(err)
	}
	return c.JSON(httpx.StatusOK, map[string]string{"status": "email changed"})
}

func (h *Handler) me(c echo.Context) error {
	user, err := principalUser(c)
	if err != nil {
		return err
	}
	return c.JSON(httpx.StatusOK, viewOfUser(user))
}
