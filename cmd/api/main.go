package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solarquote_backend/internal/email"
	"solarquote_backend/internal/events"
	"solarquote_backend/internal/geo"
	apphttp "solarquote_backend/internal/http"
	"solarquote_backend/internal/http/router"
	"solarquote_backend/internal/leads"
	"solarquote_backend/internal/leads/repository"
	"solarquote_backend/internal/pricing"
	"solarquote_backend/internal/quotes"
	"solarquote_backend/platform/config"
	"solarquote_backend/platform/logger"
	"solarquote_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	book, err := pricing.Load(cfg.GetPricingFilePath())
	if err != nil {
		log.Error("failed to load pricing book", "error", err)
		panic("failed to load pricing book: " + err.Error())
	}

	store := repository.NewFileStore(cfg.GetLeadsFilePath(), log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	quotesModule := quotes.NewModule(book, store, eventBus, log, val)

	if cfg.IsGeoEnabled() {
		geoClient := geo.NewClient(cfg.GetPostcodesAPIURL(), cfg.GetPVGISAPIURL(), log)
		quotesModule.Service().SetYieldResolver(geoClient)
		log.Info("irradiance resolver enabled", "postcodes", cfg.GetPostcodesAPIURL(), "pvgis", cfg.GetPVGISAPIURL())
	} else {
		log.Warn("irradiance resolver disabled; quotes use the flat generation estimate")
	}

	// Contact sync subscribes to quote events (not HTTP-facing)
	sender, contactSyncer := buildEmail(cfg, log)
	syncService := email.NewSyncService(sender, contactSyncer, log)
	syncService.Subscribe(eventBus)

	leadsModule := leads.NewModule(store)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:      cfg,
		Logger:      log,
		AdminAPIKey: cfg.GetAdminAPIKey(),
		Modules: []apphttp.Module{
			quotesModule,
			leadsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// buildEmail picks the delivery channel: Brevo when configured (which also
// handles contact sync), the SMTP relay as email-only fallback, otherwise
// no-ops.
func buildEmail(cfg *config.Config, log *logger.Logger) (email.Sender, email.ContactSyncer) {
	if cfg.GetEmailEnabled() {
		log.Info("quote emails and contact sync via brevo", "from", cfg.GetEmailFromAddress())
		brevo := email.NewBrevoSender(cfg)
		return brevo, brevo
	}
	if cfg.IsSMTPEnabled() {
		log.Info("quote emails via smtp, contact sync disabled", "host", cfg.GetSMTPHost())
		return email.NewSMTPSender(cfg, cfg.GetEmailFromAddress(), cfg.GetEmailFromName()), email.NoopSender{}
	}
	log.Warn("email not configured; quote emails and contact sync disabled")
	return email.NoopSender{}, email.NoopSender{}
}
