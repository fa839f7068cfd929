// Package quotes provides the quote-calculation domain module.
package quotes

import (
	"solarquote_backend/internal/events"
	apphttp "solarquote_backend/internal/http"
	"solarquote_backend/internal/leads/domain"
	"solarquote_backend/internal/pricing"
	"solarquote_backend/internal/quotes/handler"
	"solarquote_backend/internal/quotes/service"
	"solarquote_backend/platform/logger"
	"solarquote_backend/platform/validator"
)

// Module represents the quotes domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new quotes module with all dependencies wired.
func NewModule(book *pricing.Book, store domain.Store, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(book, store, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes. Quote submission is public
// and rate limited.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/quotes")
	public.Use(ctx.PublicRateLimiter.RateLimit())
	m.handler.RegisterRoutes(public)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
