package services

import (
	"errors"
	"testing"

	domain "github.com/ghuser/stockroom/services/item/domain"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain name", "milk", "milk", nil},
		{"trailing whitespace trimmed", "milk   ", "milk", nil},
		{"leading whitespace trimmed", "  milk", "milk", nil},
		{"inner space kept", "whole milk", "whole milk", nil},
		{"empty", "", "", domain.ErrEmptyName},
		{"whitespace only", "   ", "", domain.ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got.String() != tt.want {
				t.Fatalf("ValidateName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateQty(t *testing.T) {
	tests := []struct {
		name    string
		qty     int64
		wantErr error
	}{
		{"zero is valid", 0, nil},
		{"positive is valid", 5, nil},
		{"large is valid", 1 << 40, nil},
		{"negative rejected", -1, domain.ErrNegativeQty},
		{"very negative rejected", -1 << 40, domain.ErrNegativeQty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateQty(tt.qty); !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateQty(%d) = %v, want %v", tt.qty, err, tt.wantErr)
			}
		})
	}
}

func TestEnsureUniqueName(t *testing.T) {
	t.Run("unique against empty set", func(t *testing.T) {
		if err := EnsureUniqueName("milk", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unique against disjoint set", func(t *testing.T) {
		if err := EnsureUniqueName("milk", []string{"eggs", "bread"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		err := EnsureUniqueName("milk", []string{"eggs", "milk"})
		if !errors.Is(err, domain.ErrDuplicateName) {
			t.Fatalf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("comparison is exact, not case-folded", func(t *testing.T) {
		if err := EnsureUniqueName("Milk", []string{"milk"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
