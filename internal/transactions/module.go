// Package transactions provides the transaction form bounded context module.
// This file defines the module that encapsulates setup and route registration.
package transactions

import (
	apphttp "transaction_form/internal/http"
	"transaction_form/internal/transactions/handler"
	"transaction_form/internal/transactions/service"
	"transaction_form/platform/validator"

	"github.com/gin-gonic/gin"
)

// Module is the transactions bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the handler around an already configured service.
func NewModule(svc *service.Service, val *validator.Validator) *Module {
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "transactions"
}

// Service returns the transactions service for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the transactions routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	var submitLimit gin.HandlerFunc
	if ctx.SubmitLimiter != nil {
		submitLimit = ctx.SubmitLimiter.RateLimit()
	}
	m.handler.RegisterRoutes(ctx.API, submitLimit)

	if ctx.Admin != nil {
		m.handler.RegisterAdminRoutes(ctx.Admin)
	}
}
