package http

import (
	"solarquote_backend/platform/config"
	"solarquote_backend/platform/logger"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP server configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// AdminAPIKey guards operator-only endpoints.
	AdminAPIKey string
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
