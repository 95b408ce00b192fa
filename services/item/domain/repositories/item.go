package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// The mutation methods return an affected-row count instead of an error for
// the "nothing matched" case: the service layer diagnoses a zero-row outcome
// after the fact, so no read ever gates a write.
type ItemRepository interface {
	// Insert persists a new Item. The (owner_id, name) uniqueness constraint
	// is enforced atomically at write time; a violation yields
	// domain.ErrDuplicateName with no partial state.
	Insert(ctx context.Context, item *models.Item) error

	// GetByID retrieves an Item by ID regardless of owner.
	// Returns domain.ErrItemNotFound if no row exists.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// GetOwned retrieves an Item by ID scoped to the given owner.
	// Returns domain.ErrItemNotFound if no row matches both.
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Item, error)

	// NamesByOwner returns the names of all live items for the given owner.
	// Input to the advisory duplicate check only.
	NamesByOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error)

	// DeleteIfOwned removes at most one row matching both id and owner,
	// returning the number of rows removed (0 or 1).
	DeleteIfOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error)

	// Exists reports whether any item with the given ID exists.
	// Diagnosis-only: never call this to decide whether to write.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsOwned reports whether an item with the given ID exists and is
	// owned by ownerID. Diagnosis-only, same as Exists.
	ExistsOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error)

	// ConditionalIncrement atomically adds delta to the item's quantity,
	// but only when the row is owned by ownerID and the resulting quantity
	// stays >= 0 — both predicates are evaluated inside the same guarded
	// statement. Returns the number of rows updated (0 or 1).
	ConditionalIncrement(ctx context.Context, id, ownerID uuid.UUID, delta int64) (int64, error)
}
