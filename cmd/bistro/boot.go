package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/app/routes"
	"github.com/masudmolla6/bistro-restaurant-server/config"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/auth"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/cache"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/database"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/middleware"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/payment"
)

const (
	connectTimeout = 15 * time.Second
	redisTimeout   = 2 * time.Second
)

// resource is something opened at boot that must be released on exit.
type resource struct {
	name  string
	close func(context.Context) error
}

// runtime holds everything the commands share after boot.
type runtime struct {
	deps      routes.Dependencies
	resources []resource
}

func (rt *runtime) hold(name string, fn func(context.Context) error) {
	rt.resources = append(rt.resources, resource{name: name, close: fn})
}

// shutdown releases resources in reverse order. serve hands them to the
// server instead.
func (rt *runtime) shutdown(ctx context.Context) {
	for i := len(rt.resources) - 1; i >= 0; i-- {
		r := rt.resources[i]
		if err := r.close(ctx); err != nil {
			logger.Error("release failed", "resource", r.name, "error", err)
		}
	}
}

// newIssuer builds the token issuer from config. The built-in key is refused
// outside a local environment.
func newIssuer() (*auth.Issuer, error) {
	if config.UsingDefaultSecret() {
		if !config.DefaultSecretAllowed() {
			return nil, fmt.Errorf("ACCESS_TOKEN_SECRET must be set when APP_ENV is %q", config.AppEnv())
		}
		logger.Warn("ACCESS_TOKEN_SECRET is not set; using the development default")
	}
	return auth.NewIssuer(config.TokenSecret(), config.TokenTTL())
}

// boot loads config and opens the store, log sink and cache. With memory set
// the store lives in process and neither Mongo nor Redis is contacted.
func boot(ctx context.Context, memory bool) (*runtime, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	rt := &runtime{}
	issuer, err := newIssuer()
	if err != nil {
		return nil, err
	}

	if config.StripeSecretKey() == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set; payment intents will be rejected by Stripe")
	}

	proxies, err := middleware.ParseProxies(config.TrustedProxies())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	rt.deps = routes.Dependencies{
		Issuer:         issuer,
		Gateway:        payment.NewStripe(config.StripeSecretKey(), nil),
		Currency:       config.PaymentCurrency(),
		RatePerMinute:  config.RateLimitPerMinute(),
		TrustedProxies: proxies,
	}

	if memory {
		logger.Warn("using in-memory store; data is lost on exit")
		rt.deps.Store = repositories.NewMemoryStore()
		return rt, nil
	}

	store, err := rt.openMongo(ctx)
	if err != nil {
		rt.shutdown(context.Background())
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	c, closeRedis, err := cache.Connect(cctx, config.RedisAddr(), config.RedisPassword(), config.CacheTTL())
	if err != nil {
		logger.Warn("cache disabled", "error", err)
	} else {
		logger.Info("cache connected", "addr", config.RedisAddr())
		rt.hold("redis", func(context.Context) error { return closeRedis() })
	}
	rt.deps.Store = repositories.WithCache(store, c)

	return rt, nil
}

// openMongo connects, creates indexes and, when configured, tees the logger
// into a Mongo collection.
func (rt *runtime) openMongo(ctx context.Context) (repositories.Store, error) {
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, db, err := database.Connect(cctx, config.MongoURI(), config.MongoDatabase())
	if err != nil {
		return repositories.Store{}, err
	}
	rt.hold("mongo", client.Disconnect)
	logger.Info("mongo connected", "database", config.MongoDatabase())

	if err := database.EnsureIndexes(cctx, db); err != nil {
		return repositories.Store{}, err
	}

	if name := config.LogMongoCollection(); name != "" {
		col := db.Collection(name)
		if err := logger.EnsureIndexes(cctx, col); err != nil {
			logger.Warn("log collection index", "collection", name, "error", err)
		}
		sink := logger.NewMongoSink(col, slog.LevelInfo)
		logger.Tee(sink)
		// registered after mongo so it flushes before the client disconnects
		rt.hold("log sink", func(context.Context) error {
			sink.Close()
			return nil
		})
	}

	return repositories.NewMongoStore(db), nil
}
