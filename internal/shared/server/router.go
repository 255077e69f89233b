package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skincare-client/internal/contentnorm"
	"skincare-client/internal/preferences"
	"skincare-client/internal/results"
	"skincare-client/internal/shared/config"
	"skincare-client/internal/shared/metrics"
	"skincare-client/internal/shared/server/middleware"
	"skincare-client/internal/shared/server/respond"
)

const (
	rateGroupDefault = "DEFAULT"
	rateGroupPolling = "POLLING"
)

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config      config.Config
	Results     *results.Handler
	Preferences *preferences.Handler
	Translate   *contentnorm.Handler
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: rateGroupDefault,
		GroupFor:     rateGroupFor,
		Limiter:      deps.RateLimiter,
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {Rate: 2, Burst: 20},
			rateGroupPolling: {Rate: 5, Burst: 30},
		},
	}))
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.Results != nil {
		deps.Results.RegisterRoutes(api)
	}
	if deps.Preferences != nil {
		deps.Preferences.RegisterRoutes(api)
	}
	if deps.Translate != nil {
		deps.Translate.RegisterRoutes(api)
	}

	return r
}

// rateGroupFor gives analysis reads their own, larger bucket so a UI polling
// one analysis does not starve the other endpoints.
func rateGroupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodGet {
		return rateGroupDefault
	}
	switch c.FullPath() {
	case "/api/v1/analyses/:id", "/api/v1/analyses/:id/watch", "/api/v1/analyses/latest":
		return rateGroupPolling
	}
	return rateGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
