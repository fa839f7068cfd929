package email

import (
	"context"
	"errors"
	"testing"

	"solarquote_backend/internal/events"
	"solarquote_backend/internal/leads/domain"
	"solarquote_backend/internal/quotes/transport"
	"solarquote_backend/platform/logger"
)

type recordingSender struct {
	to   string
	data QuoteEmailData
	err  error
}

func (r *recordingSender) SendQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error {
	r.to = toEmail
	r.data = data
	return r.err
}

type recordingSyncer struct {
	contact Contact
	calls   int
	err     error
}

func (r *recordingSyncer) UpsertContact(ctx context.Context, contact Contact) error {
	r.calls++
	r.contact = contact
	return r.err
}

func quoteEvent(email string) events.QuoteGenerated {
	payback := 8.0
	return events.QuoteGenerated{
		BaseEvent: events.NewBaseEvent(),
		Contact:   domain.Contact{Name: "Ada", Email: email, Phone: "+442079460958"},
		Postcode:  "SW1A 1AA",
		Quote: transport.Quote{
			SystemSizeKwp:          3.87,
			PanelCount:             9,
			PriceLow:               5564,
			PriceHigh:              6800,
			EstAnnualGenerationKWh: 3290,
			TotalAnnualBenefit:     626,
			SimplePaybackYears:     &payback,
		},
	}
}

func TestSyncProcessSendsEmailAndUpsertsContact(t *testing.T) {
	sender := &recordingSender{}
	syncer := &recordingSyncer{}
	svc := NewSyncService(sender, syncer, logger.New("test"))

	svc.Process(context.Background(), quoteEvent("ada@example.com"))

	if syncer.contact.Email != "ada@example.com" || syncer.contact.Postcode != "SW1A 1AA" {
		t.Fatalf("synced contact = %+v", syncer.contact)
	}
	if sender.to != "ada@example.com" {
		t.Fatalf("email sent to %q", sender.to)
	}
	if sender.data.PriceLow != "£5564" || sender.data.PriceHigh != "£6800" {
		t.Fatalf("price range = %q – %q", sender.data.PriceLow, sender.data.PriceHigh)
	}
	if sender.data.PaybackYears != "8.0" {
		t.Fatalf("payback = %q, want 8.0", sender.data.PaybackYears)
	}
}

func TestSyncProcessSkipsWithoutEmail(t *testing.T) {
	sender := &recordingSender{}
	syncer := &recordingSyncer{}
	svc := NewSyncService(sender, syncer, logger.New("test"))

	svc.Process(context.Background(), quoteEvent(""))

	if syncer.calls != 0 || sender.to != "" {
		t.Fatal("sync ran without a contact email")
	}
}

func TestSyncProcessSwallowsFailures(t *testing.T) {
	sender := &recordingSender{err: errors.New("brevo down")}
	syncer := &recordingSyncer{err: errors.New("contacts down")}
	svc := NewSyncService(sender, syncer, logger.New("test"))

	// Must not panic or propagate; both failures are logged only.
	svc.Process(context.Background(), quoteEvent("ada@example.com"))

	if sender.to != "ada@example.com" {
		t.Fatal("sender was not attempted after syncer failure")
	}
}
