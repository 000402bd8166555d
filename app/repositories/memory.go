package repositories

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/collection"
)

// memDB is the shared state of an in-memory Store. Every operation takes the
// lock for its whole duration, so single-record writes are atomic just like
// their Mongo counterparts.
type memDB struct {
	mu       sync.RWMutex
	users    []models.User
	menu     []models.MenuItem
	carts    []models.CartItem
	payments []models.Payment
	reviews  []models.Review
}

// NewMemoryStore returns an empty Store held in process memory. Used by
// tests and `bistro serve --memory`.
func NewMemoryStore() Store {
	db := &memDB{}
	return Store{
		Users:     &memUsers{db},
		Menu:      &memMenu{db},
		Carts:     &memCarts{db},
		Payments:  &memPayments{db},
		Reviews:   &memReviews{db},
		Analytics: &memAnalytics{db},
		Pinger:    memPinger{},
	}
}

func newID(id primitive.ObjectID) primitive.ObjectID {
	if id.IsZero() {
		return primitive.NewObjectID()
	}
	return id
}

func clonePayment(p models.Payment) models.Payment {
	p.CartIDs = append([]primitive.ObjectID{}, p.CartIDs...)
	p.MenuItemIDs = append([]primitive.ObjectID{}, p.MenuItemIDs...)
	return p
}

// ─── users ────────────────────────────────────────────────────────────────────

type memUsers struct{ db *memDB }

func (r *memUsers) All(_ context.Context) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return append([]models.User{}, r.db.users...), nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := collection.First(r.db.users, func(u models.User) bool { return u.Email == email })
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUsers) InsertIfAbsent(_ context.Context, u *models.User) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if collection.Index(r.db.users, func(x models.User) bool { return x.Email == u.Email }) >= 0 {
		return false, nil
	}
	u.ID = newID(u.ID)
	r.db.users = append(r.db.users, *u)
	return true, nil
}

func (r *memUsers) SetRole(_ context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := collection.Index(r.db.users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	res := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if r.db.users[i].Role != role {
		r.db.users[i].Role = role
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *memUsers) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	before := len(r.db.users)
	r.db.users = collection.Reject(r.db.users, func(u models.User) bool { return u.ID == id })
	return models.DeleteResult{Acknowledged: true, DeletedCount: int64(before - len(r.db.users))}, nil
}

// ─── menu ─────────────────────────────────────────────────────────────────────

type memMenu struct{ db *memDB }

func (r *memMenu) All(_ context.Context) ([]models.MenuItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return append([]models.MenuItem{}, r.db.menu...), nil
}

func (r *memMenu) Find(_ context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := collection.First(r.db.menu, func(m models.MenuItem) bool { return m.ID == id })
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *memMenu) Insert(_ context.Context, item *models.MenuItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item.ID = newID(item.ID)
	r.db.menu = append(r.db.menu, *item)
	return nil
}

func (r *memMenu) InsertMany(ctx context.Context, items []models.MenuItem) (int, error) {
	for i := range items {
		if err := r.Insert(ctx, &items[i]); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

func (r *memMenu) Update(_ context.Context, id primitive.ObjectID, item models.MenuItem) (models.UpdateResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := collection.Index(r.db.menu, func(m models.MenuItem) bool { return m.ID == id })
	if i < 0 {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	item.ID = id
	res := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if r.db.menu[i] != item {
		r.db.menu[i] = item
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *memMenu) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	before := len(r.db.menu)
	r.db.menu = collection.Reject(r.db.menu, func(m models.MenuItem) bool { return m.ID == id })
	return models.DeleteResult{Acknowledged: true, DeletedCount: int64(before - len(r.db.menu))}, nil
}

// ─── carts ────────────────────────────────────────────────────────────────────

type memCarts struct{ db *memDB }

func (r *memCarts) ByEmail(_ context.Context, email string) ([]models.CartItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return collection.Filter(r.db.carts, func(c models.CartItem) bool { return c.Email == email }), nil
}

func (r *memCarts) Insert(_ context.Context, item *models.CartItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item.ID = newID(item.ID)
	r.db.carts = append(r.db.carts, *item)
	return nil
}

func (r *memCarts) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return r.DeleteMany(ctx, []primitive.ObjectID{id})
}

func (r *memCarts) DeleteMany(_ context.Context, ids []primitive.ObjectID) (models.DeleteResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	drop := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	before := len(r.db.carts)
	r.db.carts = collection.Reject(r.db.carts, func(c models.CartItem) bool {
		_, ok := drop[c.ID]
		return ok
	})
	return models.DeleteResult{Acknowledged: true, DeletedCount: int64(before - len(r.db.carts))}, nil
}

// ─── payments ─────────────────────────────────────────────────────────────────

type memPayments struct{ db *memDB }

func (r *memPayments) ByEmail(_ context.Context, email string) ([]models.Payment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []models.Payment{}
	for _, p := range r.db.payments {
		if p.Email == email {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

func (r *memPayments) Insert(_ context.Context, p *models.Payment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p.ID = newID(p.ID)
	r.db.payments = append(r.db.payments, clonePayment(*p))
	return nil
}

// ─── reviews ──────────────────────────────────────────────────────────────────

type memReviews struct{ db *memDB }

func (r *memReviews) All(_ context.Context) ([]models.Review, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return append([]models.Review{}, r.db.reviews...), nil
}

func (r *memReviews) InsertMany(_ context.Context, reviews []models.Review) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range reviews {
		reviews[i].ID = newID(reviews[i].ID)
		r.db.reviews = append(r.db.reviews, reviews[i])
	}
	return len(reviews), nil
}

// ─── analytics ────────────────────────────────────────────────────────────────

type memAnalytics struct{ db *memDB }

func (r *memAnalytics) CountUsers(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.users)), nil
}

func (r *memAnalytics) CountMenuItems(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.menu)), nil
}

func (r *memAnalytics) CountOrders(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.payments)), nil
}

func (r *memAnalytics) TotalRevenue(_ context.Context) (float64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return collection.Sum(r.db.payments, func(p models.Payment) float64 { return p.Price }), nil
}

func (r *memAnalytics) CategoryStats(_ context.Context) ([]models.CategoryStat, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	menu := collection.KeyBy(r.db.menu, func(m models.MenuItem) primitive.ObjectID { return m.ID })

	// unwind + inner lookup: one row per referenced id that still exists.
	rows := collection.FlatMap(r.db.payments, func(p models.Payment) []models.MenuItem {
		var matched []models.MenuItem
		for _, id := range p.MenuItemIDs {
			if item, ok := menu[id]; ok {
				matched = append(matched, item)
			}
		}
		return matched
	})

	out := []models.CategoryStat{}
	for category, items := range collection.GroupBy(rows, func(m models.MenuItem) string { return m.Category }) {
		out = append(out, models.CategoryStat{
			Category: category,
			Quantity: int64(len(items)),
			Revenue:  collection.Sum(items, func(m models.MenuItem) float64 { return m.Price }),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// ─── ping ─────────────────────────────────────────────────────────────────────

type memPinger struct{}

func (memPinger) Ping(context.Context) error { return nil }
