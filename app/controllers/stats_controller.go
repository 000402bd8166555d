package controllers

import (
	"github.com/masudmolla6/bistro-restaurant-server/app/services"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
)

// StatsController serves the admin dashboard reports.
type StatsController struct {
	analytics *services.AnalyticsService
}

func NewStatsController(analytics *services.AnalyticsService) *StatsController {
	return &StatsController{analytics: analytics}
}

func (h *StatsController) Admin(c *ctx.Context) {
	stats, err := h.analytics.AdminStats(c.Context())
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(stats)
}

func (h *StatsController) Orders(c *ctx.Context) {
	rows, err := h.analytics.OrderStats(c.Context())
	if err != nil {
		c.InternalError(err)
		return
	}
	c.OK(rows)
}
