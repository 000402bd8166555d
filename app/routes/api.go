// Package routes wires controllers to the router.
package routes

import (
	"net/netip"
	"time"

	"github.com/masudmolla6/bistro-restaurant-server/app/controllers"
	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/app/services"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/auth"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/metrics"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/middleware"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/payment"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/router"
)

// Dependencies are the process-wide collaborators handed to every
// controller.
type Dependencies struct {
	Store    repositories.Store
	Issuer   *auth.Issuer
	Gateway  payment.Gateway
	Currency string
	// RatePerMinute limits /jwt and /create-payment-intent per client IP.
	// Zero disables limiting.
	RatePerMinute int
	// TrustedProxies may set X-Forwarded-For for the limiter.
	TrustedProxies []netip.Prefix
}

// RegisterAPI mounts every Bistro route. Gates run in the order listed.
func RegisterAPI(r *router.Router, deps Dependencies) {
	authSvc := services.NewAuthService(deps.Store.Users, deps.Issuer)
	userSvc := services.NewUserService(deps.Store.Users)
	paymentSvc := services.NewPaymentService(deps.Store.Payments, deps.Store.Carts, deps.Gateway, deps.Currency)
	analyticsSvc := services.NewAnalyticsService(deps.Store.Analytics)

	home := controllers.NewHomeController(deps.Store.Pinger)
	authC := controllers.NewAuthController(authSvc)
	users := controllers.NewUserController(userSvc)
	menu := controllers.NewMenuController(deps.Store.Menu)
	carts := controllers.NewCartController(deps.Store.Carts)
	payments := controllers.NewPaymentController(paymentSvc)
	reviews := controllers.NewReviewController(deps.Store.Reviews)
	stats := controllers.NewStatsController(analyticsSvc)

	token := router.NewGate("token", middleware.RequireToken(deps.Issuer))
	admin := router.NewGate("admin", middleware.RequireAdmin(authSvc))
	self := router.NewGate("self", middleware.RequireSelf("email"))
	tokenLimit := router.NewGate("limit", middleware.NewLimiter(deps.RatePerMinute, time.Minute, deps.TrustedProxies...).Middleware)
	intentLimit := router.NewGate("limit", middleware.NewLimiter(deps.RatePerMinute, time.Minute, deps.TrustedProxies...).Middleware)

	r.Get("/", "home", ctx.Wrap(home.Index))
	r.Get("/healthz", "health", ctx.Wrap(home.Health))
	r.Handle("/metrics", "metrics", metrics.Handler())

	r.Post("/jwt", "auth.token", ctx.Wrap(authC.Token), tokenLimit)

	r.Get("/users", "users.index", ctx.Wrap(users.Index), token, admin)
	r.Get("/users/admin/{email}", "users.admin", ctx.Wrap(authC.AdminStatus), token, self)
	r.Post("/users", "users.store", ctx.Wrap(users.Store))
	r.Patch("/users/admin/{id}", "users.promote", ctx.Wrap(users.Promote))
	r.Delete("/users/{id}", "users.destroy", ctx.Wrap(users.Destroy), token, admin)

	r.Get("/menu", "menu.index", ctx.Wrap(menu.Index))
	r.Post("/menu", "menu.store", ctx.Wrap(menu.Store), token, admin)
	r.Get("/menu/{id}", "menu.show", ctx.Wrap(menu.Show))
	r.Patch("/menu/{id}", "menu.update", ctx.Wrap(menu.Update))
	r.Delete("/menu/{id}", "menu.destroy", ctx.Wrap(menu.Destroy), token, admin)

	r.Get("/reviews", "reviews.index", ctx.Wrap(reviews.Index))

	r.Get("/carts", "carts.index", ctx.Wrap(carts.Index))
	r.Post("/carts", "carts.store", ctx.Wrap(carts.Store))
	r.Delete("/carts/{id}", "carts.destroy", ctx.Wrap(carts.Destroy))

	r.Get("/payment/{email}", "payments.history", ctx.Wrap(payments.History), token, self)
	r.Post("/create-payment-intent", "payments.intent", ctx.Wrap(payments.Intent), intentLimit)
	r.Post("/payments", "payments.store", ctx.Wrap(payments.Store))

	r.Get("/admin-stats", "stats.admin", ctx.Wrap(stats.Admin), token, admin)
	r.Get("/order-stats", "stats.orders", ctx.Wrap(stats.Orders), token, admin)
}
