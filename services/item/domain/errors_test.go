package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrItemNotFound, "item not found"},
		{ErrDuplicateName, "item with that name already exists"},
		{ErrForbidden, "forbidden"},
		{ErrDeltaNotInt, "delta must be an int"},
		{ErrQtyBelowZero, "qty cannot go below 0"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("unexpected message: got %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("delete item: %w", ErrForbidden)
	if !errors.Is(wrapped, ErrForbidden) {
		t.Fatal("errors.Is must match wrapped ErrForbidden")
	}

	wrapped2 := fmt.Errorf("create item: %w", ErrDuplicateName)
	if !errors.Is(wrapped2, ErrDuplicateName) {
		t.Fatal("errors.Is must match wrapped ErrDuplicateName")
	}
}

func TestIsInvariant(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"empty name", ErrEmptyName, true},
		{"name too long", ErrNameTooLong, true},
		{"negative qty", ErrNegativeQty, true},
		{"qty not int", ErrQtyNotInt, true},
		{"delta not int", ErrDeltaNotInt, true},
		{"qty below zero", ErrQtyBelowZero, true},
		{"wrapped invariant", fmt.Errorf("update qty: %w", ErrQtyBelowZero), true},
		{"not found", ErrItemNotFound, false},
		{"duplicate", ErrDuplicateName, false},
		{"forbidden", ErrForbidden, false},
		{"arbitrary", errors.New("db down"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInvariant(tt.err); got != tt.want {
				t.Fatalf("IsInvariant(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
