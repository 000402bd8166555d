package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/database"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/metrics"
)

// NewMongoStore returns a Store over the collections of db.
func NewMongoStore(db *mongo.Database) Store {
	users := db.Collection(database.Users)
	menu := db.Collection(database.Menu)
	payments := db.Collection(database.Payments)

	return Store{
		Users:     &mongoUsers{col: users},
		Menu:      &mongoMenu{col: menu},
		Carts:     &mongoCarts{col: db.Collection(database.Carts)},
		Payments:  &mongoPayments{col: payments},
		Reviews:   &mongoReviews{col: db.Collection(database.Reviews)},
		Analytics: &mongoAnalytics{users: users, menu: menu, payments: payments},
		Pinger:    mongoPinger{client: db.Client()},
	}
}

// RevenuePipeline sums price over every payment into a single group.
func RevenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
}

// CategoryStatsPipeline expands menuItemIds, inner-joins the menu and groups
// by category. The second $unwind drops rows whose id matched nothing.
func CategoryStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$menuItemIds"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.Menu},
			{Key: "localField", Value: "menuItemIds"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItems"},
		}}},
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: "$quantity"},
			{Key: "revenue", Value: "$revenue"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}) ([]T, error) {
	cur, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", col.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", col.Name(), err)
	}
	return out, nil
}

func updateResult(res *mongo.UpdateResult) models.UpdateResult {
	return models.UpdateResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
}

func deleteResult(res *mongo.DeleteResult) models.DeleteResult {
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}

func insertedID(res *mongo.InsertOneResult) primitive.ObjectID {
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id
}

// ─── users ────────────────────────────────────────────────────────────────────

type mongoUsers struct{ col *mongo.Collection }

func (r *mongoUsers) All(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveStore(database.Users, "find", time.Now())
	return findAll[models.User](ctx, r.col, bson.D{})
}

func (r *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveStore(database.Users, "find_one", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find by email: %w", err)
	}
	return &u, nil
}

func (r *mongoUsers) InsertIfAbsent(ctx context.Context, u *models.User) (bool, error) {
	defer metrics.ObserveStore(database.Users, "upsert", time.Now())

	doc := *u
	doc.ID = primitive.NilObjectID
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "email", Value: u.Email}},
		bson.D{{Key: "$setOnInsert", Value: doc}},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent request inserted the same email first.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("users: upsert: %w", err)
	}
	if res.UpsertedID == nil {
		return false, nil
	}
	u.ID, _ = res.UpsertedID.(primitive.ObjectID)
	return true, nil
}

func (r *mongoUsers) SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error) {
	defer metrics.ObserveStore(database.Users, "update", time.Now())

	res, err := r.col.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: role}}}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("users: set role: %w", err)
	}
	return updateResult(res), nil
}

func (r *mongoUsers) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	defer metrics.ObserveStore(database.Users, "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("users: delete: %w", err)
	}
	return deleteResult(res), nil
}

// ─── menu ─────────────────────────────────────────────────────────────────────

type mongoMenu struct{ col *mongo.Collection }

func (r *mongoMenu) All(ctx context.Context) ([]models.MenuItem, error) {
	defer metrics.ObserveStore(database.Menu, "find", time.Now())
	return findAll[models.MenuItem](ctx, r.col, bson.D{})
}

func (r *mongoMenu) Find(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	defer metrics.ObserveStore(database.Menu, "find_one", time.Now())

	var item models.MenuItem
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("menu: find: %w", err)
	}
	return &item, nil
}

func (r *mongoMenu) Insert(ctx context.Context, item *models.MenuItem) error {
	defer metrics.ObserveStore(database.Menu, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("menu: insert: %w", err)
	}
	item.ID = insertedID(res)
	return nil
}

func (r *mongoMenu) InsertMany(ctx context.Context, items []models.MenuItem) (int, error) {
	defer metrics.ObserveStore(database.Menu, "insert_many", time.Now())
	if len(items) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("menu: insert many: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *mongoMenu) Update(ctx context.Context, id primitive.ObjectID, item models.MenuItem) (models.UpdateResult, error) {
	defer metrics.ObserveStore(database.Menu, "update", time.Now())

	res, err := r.col.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: item.Name},
		{Key: "category", Value: item.Category},
		{Key: "price", Value: item.Price},
		{Key: "recipe", Value: item.Recipe},
		{Key: "image", Value: item.Image},
	}}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("menu: update: %w", err)
	}
	return updateResult(res), nil
}

func (r *mongoMenu) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	defer metrics.ObserveStore(database.Menu, "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("menu: delete: %w", err)
	}
	return deleteResult(res), nil
}

// ─── carts ────────────────────────────────────────────────────────────────────

type mongoCarts struct{ col *mongo.Collection }

func (r *mongoCarts) ByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	defer metrics.ObserveStore(database.Carts, "find", time.Now())
	return findAll[models.CartItem](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

func (r *mongoCarts) Insert(ctx context.Context, item *models.CartItem) error {
	defer metrics.ObserveStore(database.Carts, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("carts: insert: %w", err)
	}
	item.ID = insertedID(res)
	return nil
}

func (r *mongoCarts) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	defer metrics.ObserveStore(database.Carts, "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("carts: delete: %w", err)
	}
	return deleteResult(res), nil
}

func (r *mongoCarts) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (models.DeleteResult, error) {
	defer metrics.ObserveStore(database.Carts, "delete_many", time.Now())
	if len(ids) == 0 {
		return models.DeleteResult{Acknowledged: true}, nil
	}

	res, err := r.col.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("carts: delete many: %w", err)
	}
	return deleteResult(res), nil
}

// ─── payments ─────────────────────────────────────────────────────────────────

type mongoPayments struct{ col *mongo.Collection }

func (r *mongoPayments) ByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	defer metrics.ObserveStore(database.Payments, "find", time.Now())
	return findAll[models.Payment](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

func (r *mongoPayments) Insert(ctx context.Context, p *models.Payment) error {
	defer metrics.ObserveStore(database.Payments, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("payments: insert: %w", err)
	}
	p.ID = insertedID(res)
	return nil
}

// ─── reviews ──────────────────────────────────────────────────────────────────

type mongoReviews struct{ col *mongo.Collection }

func (r *mongoReviews) All(ctx context.Context) ([]models.Review, error) {
	defer metrics.ObserveStore(database.Reviews, "find", time.Now())
	return findAll[models.Review](ctx, r.col, bson.D{})
}

func (r *mongoReviews) InsertMany(ctx context.Context, reviews []models.Review) (int, error) {
	defer metrics.ObserveStore(database.Reviews, "insert_many", time.Now())
	if len(reviews) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(reviews))
	for i := range reviews {
		docs[i] = reviews[i]
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("reviews: insert many: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// ─── analytics ────────────────────────────────────────────────────────────────

type mongoAnalytics struct {
	users, menu, payments *mongo.Collection
}

func (r *mongoAnalytics) count(ctx context.Context, col *mongo.Collection) (int64, error) {
	defer metrics.ObserveStore(col.Name(), "count", time.Now())

	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: count: %w", col.Name(), err)
	}
	return n, nil
}

func (r *mongoAnalytics) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, r.users)
}

func (r *mongoAnalytics) CountMenuItems(ctx context.Context) (int64, error) {
	return r.count(ctx, r.menu)
}

func (r *mongoAnalytics) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, r.payments)
}

func (r *mongoAnalytics) TotalRevenue(ctx context.Context) (float64, error) {
	defer metrics.ObserveStore(database.Payments, "aggregate_revenue", time.Now())

	cur, err := r.payments.Aggregate(ctx, RevenuePipeline())
	if err != nil {
		return 0, fmt.Errorf("payments: revenue: %w", err)
	}
	var rows []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("payments: revenue decode: %w", err)
	}
	// $group over zero documents yields no row.
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalRevenue, nil
}

func (r *mongoAnalytics) CategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	defer metrics.ObserveStore(database.Payments, "aggregate_categories", time.Now())

	cur, err := r.payments.Aggregate(ctx, CategoryStatsPipeline())
	if err != nil {
		return nil, fmt.Errorf("payments: category stats: %w", err)
	}
	out := []models.CategoryStat{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("payments: category stats decode: %w", err)
	}
	return out, nil
}

// ─── ping ─────────────────────────────────────────────────────────────────────

type mongoPinger struct{ client *mongo.Client }

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}
