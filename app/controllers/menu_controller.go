package controllers

import (
	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
)

type MenuController struct {
	menu repositories.MenuRepository
}

func NewMenuController(menu repositories.MenuRepository) *MenuController {
	return &MenuController{menu: menu}
}

func (h *MenuController) Index(c *ctx.Context) {
	items, err := h.menu.All(c.Context())
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(items)
}

func (h *MenuController) Store(c *ctx.Context) {
	var in MenuInput
	if !c.BindJSON(&in) {
		return
	}

	item := in.item()
	if err := h.menu.Insert(c.Context(), &item); err != nil {
		c.InternalError(err)
		return
	}
	c.OK(models.Inserted(item.ID))
}

// Show writes null for an unknown id.
func (h *MenuController) Show(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.menu.Find(c.Context(), id)
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(item)
}

func (h *MenuController) Update(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in MenuInput
	if !c.BindJSON(&in) {
		return
	}

	res, err := h.menu.Update(c.Context(), id, in.item())
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(res)
}

func (h *MenuController) Destroy(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.menu.Delete(c.Context(), id)
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(res)
}
