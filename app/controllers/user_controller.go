package controllers

import (
	"github.com/masudmolla6/bistro-restaurant-server/app/services"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (h *UserController) Index(c *ctx.Context) {
	users, err := h.users.List(c.Context())
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(users)
}

func (h *UserController) Store(c *ctx.Context) {
	var in UserInput
	if !c.BindJSON(&in) {
		return
	}

	res, err := h.users.Register(c.Context(), in.Name, in.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(res)
}

func (h *UserController) Promote(c *ctx.Context) {
	res, err := h.users.Promote(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(res)
}

func (h *UserController) Destroy(c *ctx.Context) {
	res, err := h.users.Delete(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.OK(res)
}
