package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	// The quantity-update path reports absence as a nil result instead.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateName indicates another item with the same name already
	// exists for the same owner.
	ErrDuplicateName = errors.New("item with that name already exists")

	// ErrForbidden indicates the item exists but belongs to a different owner.
	ErrForbidden = errors.New("forbidden")
)

// Invariant violations. Each is caller-correctable input; IsInvariant reports
// membership in the family.
var (
	// ErrEmptyName indicates the name is empty after trimming whitespace.
	ErrEmptyName = errors.New("name must be non-empty")

	// ErrNameTooLong indicates the name exceeds the storable length.
	ErrNameTooLong = errors.New("name must not exceed 255 bytes")

	// ErrNegativeQty indicates a creation quantity below zero.
	ErrNegativeQty = errors.New("qty must be >= 0")

	// ErrQtyNotInt indicates the qty field was not a JSON integer.
	ErrQtyNotInt = errors.New("qty must be an integer")

	// ErrDeltaNotInt indicates the delta field was not a JSON integer.
	// Booleans and floats are rejected even when they look integer-like.
	ErrDeltaNotInt = errors.New("delta must be an int")

	// ErrQtyBelowZero indicates an adjustment that would commit a negative quantity.
	ErrQtyBelowZero = errors.New("qty cannot go below 0")
)

// IsInvariant reports whether err belongs to the invariant-violation family.
func IsInvariant(err error) bool {
	for _, inv := range []error{
		ErrEmptyName,
		ErrNameTooLong,
		ErrNegativeQty,
		ErrQtyNotInt,
		ErrDeltaNotInt,
		ErrQtyBelowZero,
	} {
		if errors.Is(err, inv) {
			return true
		}
	}
	return false
}
