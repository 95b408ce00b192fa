package models

import (
	"strings"

	domain "github.com/ghuser/stockroom/services/item/domain"
)

// ItemName is a value object representing a valid, normalized item name.
// Construction trims surrounding whitespace; the result is never empty and
// never exceeds 255 bytes (the storable column width).
type ItemName string

const maxItemNameBytes = 255

// NewItemName normalizes raw and constructs a valid ItemName, or returns an
// invariant error if the trimmed result is empty or too long.
func NewItemName(raw string) (ItemName, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", domain.ErrEmptyName
	}
	if len(s) > maxItemNameBytes {
		return "", domain.ErrNameTooLong
	}
	return ItemName(s), nil
}

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}
