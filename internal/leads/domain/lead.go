// Package domain defines the persisted lead record and the store contract.
// A lead is created once per successful quote computation and never mutated
// or deleted by this system.
package domain

import (
	"context"
	"time"

	"solarquote_backend/internal/quotes/transport"

	"github.com/google/uuid"
)

// Contact is the snapshot of the respondent's contact details.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Lead is the persisted record: contact, raw survey input and the computed
// quote, frozen at creation time.
type Lead struct {
	ID        uuid.UUID              `json:"id"`
	CreatedAt time.Time              `json:"createdAt"`
	Contact   Contact                `json:"contact"`
	Input     transport.QuoteRequest `json:"input"`
	Quote     transport.Quote        `json:"quote"`
}

// Store is the append-only persistence contract. The implementation
// exclusively owns the on-disk representation; callers only append and list.
type Store interface {
	Append(ctx context.Context, lead Lead) error
	List(ctx context.Context) ([]Lead, error)
}
