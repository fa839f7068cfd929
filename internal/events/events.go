// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"solarquote_backend/internal/leads/domain"
	"solarquote_backend/internal/quotes/transport"
	"solarquote_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// QuoteGenerated is published after a quote has been computed and the lead
// persisted. Subscribers (contact sync, notifications) run detached from the
// originating request.
type QuoteGenerated struct {
	BaseEvent
	LeadID   uuid.UUID       `json:"leadId"`
	Contact  domain.Contact  `json:"contact"`
	Postcode string          `json:"postcode"`
	Quote    transport.Quote `json:"quote"`
}

func (e QuoteGenerated) EventName() string { return "quotes.quote.generated" }
