// Package web serves the transaction form page and the helper endpoints its
// script calls: visible-field options and external form links.
package web

import (
	"transaction_form/internal/formlinks"
	apphttp "transaction_form/internal/http"
)

// Module is the form page module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates the form page module.
func NewModule(links *formlinks.Builder, dir Directory) (*Module, error) {
	h, err := NewHandler(links, dir)
	if err != nil {
		return nil, err
	}
	return &Module{handler: h}, nil
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "web"
}

// RegisterRoutes mounts the page on the engine and the helpers under /api.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPageRoutes(ctx.Engine)
	m.handler.RegisterAPIRoutes(ctx.API)
}
