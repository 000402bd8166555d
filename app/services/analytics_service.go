package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
)

// AnalyticsService computes the admin dashboard reports.
type AnalyticsService struct {
	repo repositories.AnalyticsRepository
}

func NewAnalyticsService(repo repositories.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// AdminStats runs the three counts and the revenue sum concurrently. Any
// failure fails the whole report.
func (s *AnalyticsService) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Users, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.MenuItems, err = s.repo.CountMenuItems(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Orders, err = s.repo.CountOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Revenue, err = s.repo.TotalRevenue(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.AdminStats{}, fmt.Errorf("admin stats: %w", err)
	}
	return stats, nil
}

// OrderStats returns quantity and revenue per menu category.
func (s *AnalyticsService) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	rows, err := s.repo.CategoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	return rows, nil
}
