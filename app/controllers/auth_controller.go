package controllers

import (
	"errors"

	"github.com/masudmolla6/bistro-restaurant-server/app/services"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Token handles POST /jwt. The body is signed as-is; it must carry an email.
func (h *AuthController) Token(c *ctx.Context) {
	var payload map[string]any
	if !c.BindJSON(&payload) {
		return
	}

	token, err := h.auth.IssueToken(payload)
	if errors.Is(err, services.ErrEmailRequired) {
		c.BadRequest(err.Error())
		return
	}
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(map[string]string{"token": token})
}

// AdminStatus handles GET /users/admin/{email}. The self-match gate has
// already checked the email against the token.
func (h *AuthController) AdminStatus(c *ctx.Context) {
	admin, err := h.auth.IsAdmin(c.Context(), c.Param("email"))
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(map[string]bool{"admin": admin})
}
