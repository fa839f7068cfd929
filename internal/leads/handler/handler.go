// Package handler exposes the operator-facing lead listing endpoint.
package handler

import (
	"crypto/subtle"
	"net/http"

	"solarquote_backend/internal/leads/domain"
	"solarquote_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves lead listings to operators.
type Handler struct {
	store  domain.Store
	apiKey string
}

// New creates a leads handler guarded by the given API key. An empty key
// disables the endpoint rather than exposing stored contact details.
func New(store domain.Store, apiKey string) *Handler {
	return &Handler{store: store, apiKey: apiKey}
}

// RegisterRoutes registers the module's routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.requireAPIKey, h.ListLeads)
}

func (h *Handler) requireAPIKey(c *gin.Context) {
	provided := c.GetHeader("X-API-Key")
	if h.apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(h.apiKey)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, httpkit.ErrorResponse{Error: "invalid api key"})
		return
	}
	c.Next()
}

// ListLeads returns the full historical lead list, oldest first.
func (h *Handler) ListLeads(c *gin.Context) {
	all, err := h.store.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"leads": all, "count": len(all)})
}
