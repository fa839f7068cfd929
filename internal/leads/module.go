// Package leads: module wiring for the lead store and its routes.
package leads

import (
	apphttp "solarquote_backend/internal/http"
	"solarquote_backend/internal/leads/domain"
	"solarquote_backend/internal/leads/handler"
)

// Module represents the leads domain module.
type Module struct {
	store domain.Store
}

// NewModule creates a new leads module around an already-constructed store.
func NewModule(store domain.Store) *Module {
	return &Module{store: store}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "leads"
}

// Store returns the lead store for external wiring.
func (m *Module) Store() domain.Store {
	return m.store
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/leads")
	h := handler.New(m.store, ctx.AdminAPIKey)
	h.RegisterRoutes(rg)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
