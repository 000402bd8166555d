package controllers

import (
	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
)

type CartController struct {
	carts repositories.CartRepository
}

func NewCartController(carts repositories.CartRepository) *CartController {
	return &CartController{carts: carts}
}

// Index handles GET /carts?email=. Without an email nothing is listed.
func (h *CartController) Index(c *ctx.Context) {
	email, ok := c.RequireQuery("email")
	if !ok {
		return
	}

	items, err := h.carts.ByEmail(c.Context(), email)
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(items)
}

func (h *CartController) Store(c *ctx.Context) {
	var in CartInput
	if !c.BindJSON(&in) {
		return
	}
	menuID, err := models.ParseID(in.MenuID)
	if err != nil {
		fail(c, err)
		return
	}

	item := models.CartItem{
		MenuID: menuID,
		Email:  in.Email,
		Name:   in.Name,
		Image:  in.Image,
		Price:  in.Price,
	}
	if err := h.carts.Insert(c.Context(), &item); err != nil {
		c.InternalError(err)
		return
	}
	c.OK(models.Inserted(item.ID))
}

func (h *CartController) Destroy(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.carts.Delete(c.Context(), id)
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(res)
}
