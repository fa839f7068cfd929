package email

import (
	"context"
	"fmt"
	"time"

	"solarquote_backend/internal/events"
	"solarquote_backend/platform/logger"
)

const syncTimeout = 30 * time.Second

// SyncService subscribes to quote events and performs the best-effort
// follow-up: contact upsert and the quote summary email. Every failure is
// logged and swallowed; nothing here can affect the originating request.
type SyncService struct {
	sender  Sender
	contact ContactSyncer
	log     *logger.Logger
}

// NewSyncService wires the sync service. Either collaborator may be nil when
// the corresponding channel is not configured.
func NewSyncService(sender Sender, contact ContactSyncer, log *logger.Logger) *SyncService {
	return &SyncService{sender: sender, contact: contact, log: log}
}

// Subscribe registers the service on the bus for quote events.
func (s *SyncService) Subscribe(bus events.Bus) {
	bus.Subscribe(events.QuoteGenerated{}.EventName(), events.HandlerFunc(s.handle))
}

func (s *SyncService) handle(ctx context.Context, event events.Event) error {
	quoteEvent, ok := event.(events.QuoteGenerated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	s.Process(ctx, quoteEvent)
	return nil
}

// Process runs the contact upsert and email send with its own deadline,
// detached from whatever remains of the originating request.
func (s *SyncService) Process(ctx context.Context, event events.QuoteGenerated) {
	if event.Contact.Email == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	if s.contact != nil {
		contact := Contact{
			Email:    event.Contact.Email,
			Name:     event.Contact.Name,
			Phone:    event.Contact.Phone,
			Postcode: event.Postcode,
		}
		if err := s.contact.UpsertContact(ctx, contact); err != nil {
			s.log.SyncError("brevo", event.Contact.Email, err)
		}
	}

	if s.sender != nil {
		data := QuoteEmailData{
			Name:               event.Contact.Name,
			SystemSizeKwp:      event.Quote.SystemSizeKwp,
			PanelCount:         event.Quote.PanelCount,
			PriceLow:           formatCurrencyGBP(event.Quote.PriceLow),
			PriceHigh:          formatCurrencyGBP(event.Quote.PriceHigh),
			AnnualGeneration:   event.Quote.EstAnnualGenerationKWh,
			TotalAnnualBenefit: formatCurrencyGBP(event.Quote.TotalAnnualBenefit),
		}
		if event.Quote.SimplePaybackYears != nil {
			data.PaybackYears = fmt.Sprintf("%.1f", *event.Quote.SimplePaybackYears)
		}
		if err := s.sender.SendQuoteEmail(ctx, event.Contact.Email, data); err != nil {
			s.log.SyncError("email", event.Contact.Email, err)
		}
	}
}
