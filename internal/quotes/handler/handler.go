// Package handler exposes the public quote endpoint.
package handler

import (
	"context"

	"solarquote_backend/internal/quotes/transport"
	"solarquote_backend/platform/apperr"
	"solarquote_backend/platform/httpkit"
	"solarquote_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// QuoteGenerator is the service contract the handler depends on.
type QuoteGenerator interface {
	GenerateQuote(ctx context.Context, req transport.QuoteRequest) (transport.Quote, error)
}

// Handler handles public quote requests.
type Handler struct {
	svc QuoteGenerator
	val *validator.Validator
}

// New creates a quotes handler.
func New(svc QuoteGenerator, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the module's routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.CreateQuote)
}

// CreateQuote accepts a survey submission and responds with the computed
// quote. Shape violations and validation failures are rejected before the
// pipeline runs.
func (h *Handler) CreateQuote(c *gin.Context) {
	var req transport.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindBadRequest, "invalid request body", err))
		return
	}

	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid input", err).WithDetails(err.Error()))
		return
	}

	quote, err := h.svc.GenerateQuote(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, quote)
}
