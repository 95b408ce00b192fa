package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/stockroom/pkg/cache"
	itemdomain "github.com/ghuser/stockroom/services/item/domain"
	"github.com/ghuser/stockroom/services/item/domain/models"
	"github.com/ghuser/stockroom/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/stockroom/services/item/domain/services"
)

// ItemService orchestrates inventory mutations: validate input, issue a single
// atomic conditional write, then translate the store outcome into the domain's
// error taxonomy. It holds no cross-call state and takes no locks — every
// race is resolved by the store's row-level atomicity, never by the service.
// Reads are served from Redis cache when available.
type ItemService struct {
	repo  repositories.ItemRepository
	cache *pkgcache.ItemCache
}

// NewItemService returns an ItemService wired with the given repository and
// cache. A nil cache disables the read model (tests).
func NewItemService(repo repositories.ItemRepository, itemCache *pkgcache.ItemCache) *ItemService {
	return &ItemService{repo: repo, cache: itemCache}
}

// Create validates and persists a new Item for ownerID.
//
// The advisory duplicate check rejects obvious collisions cheaply, but the
// store's (owner_id, name) constraint remains the authoritative guard: no
// pre-read gates the insert, so a concurrent create of the same name loses
// at the constraint, not in a check-then-act window.
func (s *ItemService) Create(ctx context.Context, ownerID uuid.UUID, name string, qty int64) (*models.Item, error) {
	itemName, err := domainsvcs.ValidateName(name)
	if err != nil {
		return nil, err
	}
	if err := domainsvcs.ValidateQty(qty); err != nil {
		return nil, err
	}

	existing, err := s.repo.NamesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	if err := domainsvcs.EnsureUniqueName(itemName.String(), existing); err != nil {
		return nil, err
	}

	item := models.NewItem(ownerID, itemName, qty)
	if err := s.repo.Insert(ctx, item); err != nil {
		if errors.Is(err, itemdomain.ErrDuplicateName) {
			return nil, itemdomain.ErrDuplicateName
		}
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// Delete removes the item if it is owned by ownerID.
//
// The delete is attempted first and diagnosed second: a zero-row outcome is
// split into not-found vs. forbidden by an existence read that runs only
// after the write, so a concurrent delete by the rightful owner can never be
// misreported through a stale pre-check.
func (s *ItemService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	count, err := s.repo.DeleteIfOwned(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if count >= 1 {
		s.invalidate(ownerID, id)
		return nil
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if exists {
		return itemdomain.ErrForbidden
	}
	return itemdomain.ErrItemNotFound
}

// UpdateQty adjusts the item's quantity by delta.
//
// An absent id is a soft miss: (nil, nil), not an error. Otherwise a single
// guarded update is attempted; when it applies, the updated item is re-read and
// returned. When it does not, the zero-row outcome is disambiguated in priority
// order from reads that run strictly after the write:
//
//  1. row absent            → (nil, nil)
//  2. row not owned         → ErrForbidden
//  3. owned, floor violated → ErrQtyBelowZero
func (s *ItemService) UpdateQty(ctx context.Context, ownerID, id uuid.UUID, delta int64) (*models.Item, error) {
	if id == uuid.Nil {
		return nil, nil
	}

	count, err := s.repo.ConditionalIncrement(ctx, id, ownerID, delta)
	if err != nil {
		return nil, fmt.Errorf("update qty: %w", err)
	}
	if count >= 1 {
		item, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("reload item: %w", err)
		}
		s.invalidate(ownerID, id)
		return item, nil
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return nil, nil
	}

	owned, err := s.repo.ExistsOwned(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("check ownership: %w", err)
	}
	if !owned {
		return nil, itemdomain.ErrForbidden
	}
	return nil, itemdomain.ErrQtyBelowZero
}

// Get retrieves an Item scoped to ownerID using a read-through cache:
//  1. Check Redis first.
//  2. On miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
//
// A foreign item reads as not-found — reads leak no existence information.
func (s *ItemService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		// Misses and cache errors both fall through to Postgres.
		if cached, err := s.cache.Get(ctx, ownerID, id); err == nil {
			return &models.Item{
				ID:        cached.ID,
				OwnerID:   cached.OwnerID,
				Name:      models.ItemName(cached.Name),
				Qty:       cached.Qty,
				CreatedAt: cached.CreatedAt,
			}, nil
		}
	}

	item, err := s.repo.GetOwned(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, itemdomain.ErrItemNotFound) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), &pkgcache.CachedItem{
				ID:        item.ID,
				OwnerID:   item.OwnerID,
				Name:      item.Name.String(),
				Qty:       item.Qty,
				CreatedAt: item.CreatedAt,
			})
		}()
	}
	return item, nil
}

// invalidate drops the cached read model for an item after a mutation.
// Best-effort: the worker re-warms from lifecycle events.
func (s *ItemService) invalidate(ownerID, id uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), ownerID, id)
	}
}
