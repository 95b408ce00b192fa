// Package services contains stateless domain services for the item bounded context.
// Everything here is pure: no I/O, no clocks, no external dependencies beyond
// stdlib and the domain layer.
package services

import (
	domain "github.com/ghuser/stockroom/services/item/domain"
	"github.com/ghuser/stockroom/services/item/domain/models"
)

// ValidateName normalizes raw and returns it as an ItemName, or an invariant
// error when the trimmed result is empty or over-long.
func ValidateName(raw string) (models.ItemName, error) {
	return models.NewItemName(raw)
}

// ValidateQty rejects negative creation quantities.
func ValidateQty(qty int64) error {
	if qty < 0 {
		return domain.ErrNegativeQty
	}
	return nil
}

// EnsureUniqueName rejects name if it is already present in existing.
//
// This check is advisory only: the store's (owner_id, name) constraint is the
// authoritative guard and closes the race with a concurrent insert. The
// advisory pass exists to reject obvious duplicates before a transaction is
// opened.
func EnsureUniqueName(name string, existing []string) error {
	for _, e := range existing {
		if e == name {
			return domain.ErrDuplicateName
		}
	}
	return nil
}
