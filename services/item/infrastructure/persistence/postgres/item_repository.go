package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	itemdomain "github.com/ghuser/stockroom/services/item/domain"
	domainevents "github.com/ghuser/stockroom/services/item/domain/events"
	"github.com/ghuser/stockroom/services/item/domain/models"
)

const pgUniqueViolation = "23505"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
//
// Every mutation is a single guarded statement classified by its affected-row
// count; lifecycle events are published through the bus inside the same
// transaction as the write they describe.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus. A nil bus disables event publishing (tests).
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// Insert persists a new Item and publishes an ItemCreatedEvent within the same
// transaction. A violation of the (owner_id, name) constraint rolls the insert
// back atomically and surfaces as ErrDuplicateName — this is the authoritative
// uniqueness guard; any advisory pre-check upstream cannot close the race with
// a concurrent insert, this constraint does.
func (r *ItemRepository) Insert(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, owner_id, name, qty, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.OwnerID, item.Name.String(), item.Qty, item.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return itemdomain.ErrDuplicateName
			}
			return fmt.Errorf("insert item: %w", err)
		}

		return r.publish(tx, domainevents.TopicItemCreated, domainevents.ItemCreatedEvent{
			EventID:    uuid.New(),
			Version:    1,
			ItemID:     item.ID,
			OwnerID:    item.OwnerID,
			Name:       item.Name.String(),
			Qty:        item.Qty,
			OccurredAt: item.CreatedAt,
		})
	})
}

// GetByID retrieves an Item by ID regardless of owner.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return r.scanItem(r.db.DB().QueryRowContext(ctx, `
		SELECT id, owner_id, name, qty, created_at
		FROM items WHERE id = $1`, id,
	))
}

// GetOwned retrieves an Item by ID scoped to the given owner.
func (r *ItemRepository) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.Item, error) {
	return r.scanItem(r.db.DB().QueryRowContext(ctx, `
		SELECT id, owner_id, name, qty, created_at
		FROM items WHERE id = $1 AND owner_id = $2`, id, ownerID,
	))
}

// NamesByOwner returns the names of all live items for the given owner.
func (r *ItemRepository) NamesByOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT name FROM items WHERE owner_id = $1`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate names: %w", err)
	}
	return names, nil
}

// DeleteIfOwned removes at most one row matching both id and owner and
// publishes an ItemDeletedEvent in the same transaction when a row went away.
// The caller diagnoses a zero count after the fact.
func (r *ItemRepository) DeleteIfOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM items WHERE id = $1 AND owner_id = $2`, id, ownerID,
		)
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		count, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if count == 0 {
			return nil
		}

		return r.publish(tx, domainevents.TopicItemDeleted, domainevents.ItemDeletedEvent{
			EventID:    uuid.New(),
			Version:    1,
			ItemID:     id,
			OwnerID:    ownerID,
			OccurredAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Exists reports whether any item with the given ID exists.
func (r *ItemRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

// ExistsOwned reports whether an item with the given ID exists under ownerID.
func (r *ItemRepository) ExistsOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM items WHERE id = $1 AND owner_id = $2)`, id, ownerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check item owned: %w", err)
	}
	return exists, nil
}

// ConditionalIncrement applies delta to the item's quantity in one guarded
// statement: ownership and the quantity floor are predicates of the UPDATE
// itself, so concurrent callers serialize on the row and no committed state
// ever holds a negative quantity. Returns 1 when the update applied, 0 when
// no row satisfied both predicates.
//
// Never rewrite this as read-then-write in application code — that reopens
// the race the guarded statement exists to close.
func (r *ItemRepository) ConditionalIncrement(ctx context.Context, id, ownerID uuid.UUID, delta int64) (int64, error) {
	var count int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var newQty int64
		err := tx.QueryRowContext(ctx, `
			UPDATE items
			SET qty = qty + $1
			WHERE id = $2 AND owner_id = $3 AND qty + $1 >= 0
			RETURNING qty`,
			delta, id, ownerID,
		).Scan(&newQty)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("conditional increment: %w", err)
		}
		count = 1

		return r.publish(tx, domainevents.TopicItemQtyChanged, domainevents.ItemQtyChangedEvent{
			EventID:    uuid.New(),
			Version:    1,
			ItemID:     id,
			OwnerID:    ownerID,
			Delta:      delta,
			Qty:        newQty,
			OccurredAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// publish marshals event and publishes it on topic through a publisher bound
// to tx, so the event commits or rolls back with the row change.
func (r *ItemRepository) publish(tx *sql.Tx, topic string, event any) error {
	if r.bus == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	if err := p.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (r *ItemRepository) scanItem(row *sql.Row) (*models.Item, error) {
	var (
		item models.Item
		name string
	)
	err := row.Scan(&item.ID, &item.OwnerID, &name, &item.Qty, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, itemdomain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	item.Name = models.ItemName(name)
	return &item, nil
}
