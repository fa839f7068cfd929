// Package service implements the quote pipeline: input validation, region
// classification, irradiance resolution with fallback, sizing and costing,
// savings estimation, lead persistence and fire-and-forget contact sync.
package service

import (
	"context"
	"strings"
	"time"

	"solarquote_backend/internal/events"
	"solarquote_backend/internal/geo"
	"solarquote_backend/internal/leads/domain"
	"solarquote_backend/internal/postcode"
	"solarquote_backend/internal/pricing"
	"solarquote_backend/internal/quotes/transport"
	"solarquote_backend/platform/apperr"
	"solarquote_backend/platform/logger"
	"solarquote_backend/platform/phone"
	"solarquote_backend/platform/sanitize"

	"github.com/google/uuid"
)

// YieldResolver is the outbound collaborator estimating annual generation
// from declared roof faces. Implementations are allowed to fail; the service
// recovers by falling back to the flat irradiance estimate.
type YieldResolver interface {
	TotalAnnualYield(ctx context.Context, postcode string, roofs []geo.RoofFace, panelWatt int) (*float64, error)
}

// Service orchestrates the quote pipeline.
type Service struct {
	book   *pricing.Book
	store  domain.Store
	bus    events.Bus
	log    *logger.Logger
	yields YieldResolver
}

// New creates a quote service. The yield resolver is optional; without one
// every quote uses the fallback generation estimate.
func New(book *pricing.Book, store domain.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		book:  book,
		store: store,
		bus:   bus,
		log:   log,
	}
}

// SetYieldResolver injects the geo/irradiance collaborator.
func (s *Service) SetYieldResolver(r YieldResolver) {
	s.yields = r
}

// GenerateQuote runs the full pipeline for one survey submission. Input
// validation failures abort before any external call; upstream and
// persistence failures are recovered and the quote is still returned.
func (s *Service) GenerateQuote(ctx context.Context, req transport.QuoteRequest) (transport.Quote, error) {
	if strings.TrimSpace(req.HouseNumber) == "" {
		return transport.Quote{}, apperr.Validation("house number is required")
	}

	normalized, err := postcode.Normalize(req.Postcode)
	if err != nil {
		return transport.Quote{}, err
	}
	req.Postcode = normalized

	region := postcode.RegionFor(normalized)
	panel := s.book.Panel(req.PanelOption)

	generationOverride := s.resolveGenerationOverride(ctx, normalized, req, panel.Watt)

	costing := Calculate(s.book, region, req, generationOverride)

	savings := EstimateSavings(s.book, SavingsInput{
		GenerationKWh:  float64(costing.AnnualGenerationKWh),
		ConsumptionKWh: costing.AnnualConsumptionKWh,
		BatteryKWh:     req.BatteryKWh,
		Occupancy:      req.OccupancyProfile,
		PriceLow:       costing.PriceLow,
		PriceHigh:      costing.PriceHigh,
	})

	quote := transport.Quote{
		SystemSizeKwp:               costing.SystemSizeKwp,
		PanelCount:                  costing.PanelCount,
		PanelWatt:                   costing.PanelWatt,
		PriceLow:                    costing.PriceLow,
		PriceHigh:                   costing.PriceHigh,
		CostBreakdown:               costing.Breakdown,
		EstAnnualGenerationKWh:      costing.AnnualGenerationKWh,
		AssumedAnnualConsumptionKWh: roundInt(costing.AnnualConsumptionKWh),
		SelfConsumptionFraction:     savings.Fraction,
		SelfConsumptionKWh:          savings.SelfConsumptionKWh,
		AnnualBillSavings:           savings.AnnualBillSavings,
		AnnualSEGIncome:             savings.AnnualSEGIncome,
		TotalAnnualBenefit:          savings.TotalAnnualBenefit,
		SimplePaybackYears:          savings.SimplePaybackYears,
		SavingsModel:                savings.Model,
	}

	lead := domain.Lead{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Contact: domain.Contact{
			Name:    sanitize.Text(req.Contact.Name),
			Email:   strings.TrimSpace(req.Contact.Email),
			Address: sanitize.Text(req.Contact.Address),
			Phone:   phone.NormalizeE164(req.Contact.Phone),
		},
		Input: req,
		Quote: quote,
	}

	// Persistence must not block the response: log and move on.
	if err := s.store.Append(ctx, lead); err != nil {
		s.log.StoreError("append", err)
	}

	// Contact sync and notifications run on their own failure channel.
	s.bus.Publish(ctx, events.QuoteGenerated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Contact:   lead.Contact,
		Postcode:  normalized,
		Quote:     quote,
	})

	return quote, nil
}

// resolveGenerationOverride attempts the external irradiance estimate. Any
// upstream failure is logged and treated as "no override available".
func (s *Service) resolveGenerationOverride(ctx context.Context, normalizedPostcode string, req transport.QuoteRequest, panelWatt int) *float64 {
	if s.yields == nil || len(req.Roofs) == 0 {
		return nil
	}

	faces := make([]geo.RoofFace, 0, len(req.Roofs))
	for _, face := range req.Roofs {
		shading := face.Shading
		if shading == "" {
			shading = req.Shading
		}
		faces = append(faces, geo.RoofFace{
			Panels:      face.Panels,
			TiltDegrees: face.Tilt,
			Orientation: face.Orientation,
			Shading:     shading,
		})
	}

	override, err := s.yields.TotalAnnualYield(ctx, normalizedPostcode, faces, panelWatt)
	if err != nil {
		s.log.UpstreamError("irradiance", err)
		return nil
	}
	return override
}
