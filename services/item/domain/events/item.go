package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for item lifecycle events.
const (
	TopicItemCreated    = "item.created"
	TopicItemQtyChanged = "item.qty_changed"
	TopicItemDeleted    = "item.deleted"
)

// ItemCreatedEvent is published after a new Item is persisted, in the same
// transaction as the insert.
type ItemCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     uuid.UUID `json:"item_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	Qty        int64     `json:"qty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemQtyChangedEvent is published after a conditional increment applies,
// in the same transaction as the guarded update. Qty is the post-update value.
type ItemQtyChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Delta      int64     `json:"delta"`
	Qty        int64     `json:"qty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published after an ownership-checked delete removes a row.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
