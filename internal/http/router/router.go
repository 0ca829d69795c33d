package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	apphttp "transaction_form/internal/http"
	"transaction_form/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// New builds the gin engine: shared middleware, health check, then every
// module's routes.
func New(app *apphttp.App) *gin.Engine {
	cfg := app.Config
	log := app.Logger

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	if corsMiddleware := newCORS(cfg); corsMiddleware != nil {
		engine.Use(corsMiddleware)
	}

	engine.GET("/api/health", healthHandler(app.Health))

	api := engine.Group("/api")

	var admin *gin.RouterGroup
	if cfg.IsAdminEnabled() {
		admin = api.Group("", httpkit.AdminRequired(cfg))
	} else {
		log.Info("admin routes disabled: ADMIN_JWT_SECRET not configured")
	}

	routerCtx := &apphttp.RouterContext{
		Engine:        engine,
		API:           api,
		Admin:         admin,
		SubmitLimiter: httpkit.NewPerMinuteLimiter(cfg.GetSubmitRatePerMinute(), log),
	}

	for _, module := range app.Modules {
		log.Info("registering module", "module", module.Name())
		module.RegisterRoutes(routerCtx)
	}

	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			httpkit.Fail(c, http.StatusNotFound, "not found", nil)
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	})

	return engine
}

func newCORS(cfg apphttp.RouterConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.RequestIDHeader},
		ExposeHeaders:    []string{httpkit.RequestIDHeader},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}

	switch {
	case cfg.GetCORSAllowAll():
		corsCfg.AllowAllOrigins = true
	case len(cfg.GetCORSOrigins()) > 0:
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	default:
		return nil
	}
	return cors.New(corsCfg)
}

func healthHandler(checker apphttp.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := checker.Ping(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
