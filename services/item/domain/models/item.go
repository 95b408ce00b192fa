package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is the core aggregate for this bounded context: one named, counted
// entry in an owner's ledger.
type Item struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID // owning principal — immutable after creation
	Name      ItemName
	Qty       int64 // >= 0 in every committed state
	CreatedAt time.Time
}

// NewItem constructs a valid Item aggregate with a generated ID and current
// timestamp. Name and Qty are assumed already validated; OwnerID is fixed here
// and never rewritten by any mutation path.
func NewItem(ownerID uuid.UUID, name ItemName, qty int64) *Item {
	return &Item{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Qty:       qty,
		CreatedAt: time.Now().UTC(),
	}
}
