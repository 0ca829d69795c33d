// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"transaction_form/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	// The RouterContext provides access to shared middleware and configuration.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
type RouterContext struct {
	// Engine is the root Gin engine, for pages and static assets.
	Engine *gin.Engine
	// API is the /api route group.
	API *gin.RouterGroup
	// Admin is the bearer-token protected group under /api. Nil when
	// ADMIN_JWT_SECRET is unset, in which case admin routes are not mounted.
	Admin *gin.RouterGroup
	// SubmitLimiter throttles form submissions per client IP.
	SubmitLimiter *httpkit.IPRateLimiter
}
