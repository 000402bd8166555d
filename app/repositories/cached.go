package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/cache"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
)

// Cache keys for the public listings.
const (
	MenuCacheKey    = "bistro:menu:all"
	ReviewsCacheKey = "bistro:reviews:all"
)

// WithCache wraps the menu and review listings of s in a read-through
// cache. User data is never cached.
func WithCache(s Store, c *cache.Cache) Store {
	if !c.Enabled() {
		return s
	}
	s.Menu = &cachedMenu{MenuRepository: s.Menu, cache: c}
	s.Reviews = &cachedReviews{ReviewRepository: s.Reviews, cache: c}
	return s
}

type cachedMenu struct {
	MenuRepository
	cache *cache.Cache
}

func (r *cachedMenu) All(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if r.cache.Get(ctx, MenuCacheKey, &items) {
		return items, nil
	}

	items, err := r.MenuRepository.All(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, MenuCacheKey, items); err != nil {
		logger.WithCtx(ctx).Warn("cache set failed", "key", MenuCacheKey, "error", err)
	}
	return items, nil
}

func (r *cachedMenu) forget(ctx context.Context) {
	if err := r.cache.Forget(ctx, MenuCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("cache forget failed", "key", MenuCacheKey, "error", err)
	}
}

func (r *cachedMenu) Insert(ctx context.Context, item *models.MenuItem) error {
	defer r.forget(ctx)
	return r.MenuRepository.Insert(ctx, item)
}

func (r *cachedMenu) InsertMany(ctx context.Context, items []models.MenuItem) (int, error) {
	defer r.forget(ctx)
	return r.MenuRepository.InsertMany(ctx, items)
}

func (r *cachedMenu) Update(ctx context.Context, id primitive.ObjectID, item models.MenuItem) (models.UpdateResult, error) {
	defer r.forget(ctx)
	return r.MenuRepository.Update(ctx, id, item)
}

func (r *cachedMenu) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	defer r.forget(ctx)
	return r.MenuRepository.Delete(ctx, id)
}

type cachedReviews struct {
	ReviewRepository
	cache *cache.Cache
}

func (r *cachedReviews) All(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if r.cache.Get(ctx, ReviewsCacheKey, &reviews) {
		return reviews, nil
	}

	reviews, err := r.ReviewRepository.All(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, ReviewsCacheKey, reviews); err != nil {
		logger.WithCtx(ctx).Warn("cache set failed", "key", ReviewsCacheKey, "error", err)
	}
	return reviews, nil
}

func (r *cachedReviews) InsertMany(ctx context.Context, reviews []models.Review) (int, error) {
	defer func() {
		if err := r.cache.Forget(ctx, ReviewsCacheKey); err != nil {
			logger.WithCtx(ctx).Warn("cache forget failed", "key", ReviewsCacheKey, "error", err)
		}
	}()
	return r.ReviewRepository.InsertMany(ctx, reviews)
}
