// Package repositories is the document store behind the API. Services and
// controllers depend on the interfaces here; NewMongoStore and
// NewMemoryStore provide the implementations.
package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
)

type UserRepository interface {
	All(ctx context.Context) ([]models.User, error)
	// FindByEmail returns (nil, nil) when no user has email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// InsertIfAbsent writes u unless a user with u.Email exists. On insert
	// u.ID is set and true is returned.
	InsertIfAbsent(ctx context.Context, u *models.User) (bool, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

type MenuRepository interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	// Find returns (nil, nil) for an unknown id.
	Find(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	Insert(ctx context.Context, item *models.MenuItem) error
	InsertMany(ctx context.Context, items []models.MenuItem) (int, error)
	// Update overwrites name, category, price, recipe and image.
	Update(ctx context.Context, id primitive.ObjectID, item models.MenuItem) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

type CartRepository interface {
	ByEmail(ctx context.Context, email string) ([]models.CartItem, error)
	Insert(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (models.DeleteResult, error)
}

type PaymentRepository interface {
	ByEmail(ctx context.Context, email string) ([]models.Payment, error)
	Insert(ctx context.Context, p *models.Payment) error
}

type ReviewRepository interface {
	All(ctx context.Context) ([]models.Review, error)
	InsertMany(ctx context.Context, reviews []models.Review) (int, error)
}

// AnalyticsRepository runs the read-only reports over payments and menu.
type AnalyticsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountMenuItems(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	// TotalRevenue sums price over all payments; 0 when there are none.
	TotalRevenue(ctx context.Context) (float64, error)
	// CategoryStats expands every payment's menuItemIds, joins them to the
	// menu and groups by category. Dangling ids contribute nothing.
	CategoryStats(ctx context.Context) ([]models.CategoryStat, error)
}

// Pinger checks store liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles every repository over one backend.
type Store struct {
	Users     UserRepository
	Menu      MenuRepository
	Carts     CartRepository
	Payments  PaymentRepository
	Reviews   ReviewRepository
	Analytics AnalyticsRepository
	Pinger    Pinger
}
