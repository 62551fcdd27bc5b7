package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hostel-management/internal/config"
	"github.com/iliyamo/hostel-management/internal/handler"
	"github.com/iliyamo/hostel-management/internal/middleware"
	"github.com/iliyamo/hostel-management/internal/model"
)

// Register mounts every route of the API on e. rdb may be nil, in which
// case rate limiting and response caching are off.
func Register(e *echo.Echo, h *handler.Handler, cfg config.Config, rdb *redis.Client) {
	e.Use(middleware.Metrics())
	RegisterRoutes(e)
	RegisterAuth(e, h, cfg, rdb)

	// Everything else needs an operator token. Writes bump the cache
	// generation, so the cache sits behind the rate limiter on one chain.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.AdminRoleAdmin, model.AdminRoleSuperAdmin),
		middleware.NewTokenBucket(cfg.RateLimit, rdb),
		middleware.NewRedisCache(cfg.Cache, rdb),
	)
	RegisterResidents(g, h)
	RegisterOperations(g, h)
}

// RegisterRoutes registers the unauthenticated infrastructure routes: the
// health check and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the token endpoints under /v1/auth. Login and
// refresh are public; the rest need a valid access token.
func RegisterAuth(e *echo.Echo, h *handler.Handler, cfg config.Config, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	g.POST("/login", h.Login, middleware.NewLoginLimiter(cfg.RateLimit, rdb))
	g.POST("/refresh", h.Refresh)

	auth := e.Group("/v1/auth", middleware.JWTAuth(cfg.JWTSecret))
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.Me)
	auth.PUT("/password", h.ChangePassword)
	auth.POST("/admins", h.CreateAdmin, middleware.RequireRole(model.AdminRoleSuperAdmin))
}
