package controllers

import (
	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
)

type ReviewController struct {
	reviews repositories.ReviewRepository
}

func NewReviewController(reviews repositories.ReviewRepository) *ReviewController {
	return &ReviewController{reviews: reviews}
}

func (h *ReviewController) Index(c *ctx.Context) {
	reviews, err := h.reviews.All(c.Context())
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(reviews)
}
