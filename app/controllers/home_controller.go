package controllers

import (
	"net/http"

	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
)

type HomeController struct {
	store repositories.Pinger
}

func NewHomeController(store repositories.Pinger) *HomeController {
	return &HomeController{store: store}
}

func (h *HomeController) Index(c *ctx.Context) {
	c.String(http.StatusOK, "Bistro boss is running.")
}

// Health pings the store.
func (h *HomeController) Health(c *ctx.Context) {
	if err := h.store.Ping(c.Context()); err != nil {
		logger.WithCtx(c.Context()).Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	c.OK(map[string]string{"status": "ok"})
}
