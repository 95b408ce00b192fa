package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/auth"
	appsvcs "github.com/ghuser/stockroom/services/item/application/services"
	itemdomain "github.com/ghuser/stockroom/services/item/domain"
	"github.com/ghuser/stockroom/services/item/domain/models"
)

// stubRepo is a fixed-state repository for handler tests: one item, one owner.
type stubRepo struct {
	item *models.Item
}

func (s *stubRepo) Insert(_ context.Context, item *models.Item) error {
	s.item = item
	return nil
}

func (s *stubRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	if s.item != nil && s.item.ID == id {
		return s.item, nil
	}
	return nil, itemdomain.ErrItemNotFound
}

func (s *stubRepo) GetOwned(_ context.Context, ownerID, id uuid.UUID) (*models.Item, error) {
	if s.item != nil && s.item.ID == id && s.item.OwnerID == ownerID {
		return s.item, nil
	}
	return nil, itemdomain.ErrItemNotFound
}

func (s *stubRepo) NamesByOwner(_ context.Context, _ uuid.UUID) ([]string, error) {
	return nil, nil
}

func (s *stubRepo) DeleteIfOwned(_ context.Context, id, ownerID uuid.UUID) (int64, error) {
	if s.item != nil && s.item.ID == id && s.item.OwnerID == ownerID {
		s.item = nil
		return 1, nil
	}
	return 0, nil
}

func (s *stubRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return s.item != nil && s.item.ID == id, nil
}

func (s *stubRepo) ExistsOwned(_ context.Context, id, ownerID uuid.UUID) (bool, error) {
	return s.item != nil && s.item.ID == id && s.item.OwnerID == ownerID, nil
}

func (s *stubRepo) ConditionalIncrement(_ context.Context, id, ownerID uuid.UUID, delta int64) (int64, error) {
	if s.item == nil || s.item.ID != id || s.item.OwnerID != ownerID || s.item.Qty+delta < 0 {
		return 0, nil
	}
	s.item.Qty += delta
	return 1, nil
}

func newPatchRequest(t *testing.T, ownerID uuid.UUID, itemID, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPatch, "/items/"+itemID+"/qty", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", itemID)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if ownerID != uuid.Nil {
		ctx = auth.WithOwnerID(ctx, ownerID)
	}
	return r.WithContext(ctx)
}

func TestPatchItemQty(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	newHandler := func(qty int64) (*PatchItemQtyHandler, *models.Item) {
		name, _ := models.NewItemName("milk")
		item := models.NewItem(owner, name, qty)
		svc := appsvcs.NewItemService(&stubRepo{item: item}, nil)
		return NewPatchItemQtyHandler(&appsvcs.Services{Item: svc}), item
	}

	t.Run("applies delta and returns updated item", func(t *testing.T) {
		h, item := newHandler(2)
		w := httptest.NewRecorder()
		h.Execute(w, newPatchRequest(t, owner, item.ID.String(), `{"delta": 3}`))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
		}
		var resp ItemResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Qty != 5 {
			t.Fatalf("expected qty 5, got %d", resp.Qty)
		}
	})

	t.Run("boolean delta rejected as invariant error", func(t *testing.T) {
		h, item := newHandler(2)
		w := httptest.NewRecorder()
		h.Execute(w, newPatchRequest(t, owner, item.ID.String(), `{"delta": true}`))

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		var resp ErrorResponse
		_ = json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error != "delta must be an int" {
			t.Fatalf("unexpected error message: %q", resp.Error)
		}
	})

	t.Run("float delta rejected as invariant error", func(t *testing.T) {
		h, item := newHandler(2)
		w := httptest.NewRecorder()
		h.Execute(w, newPatchRequest(t, owner, item.ID.String(), `{"delta": 1.5}`))

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("overdraw returns 422 with floor message", func(t *testing.T) {
		h, item := newHandler(2)
		w := httptest.NewRecorder()
		h.Execute(w, newPatchRequest(t, owner, item.ID.String(), `{"delta": -3}`))

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		var resp ErrorResponse
		_ = json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error != "qty cannot go below 0" {
			t.Fatalf("unexpected error message: %q", resp.Error)
		}
	})

	t.Run("non-owner gets 403", func(t *testing.T) {
		h, item := newHandler(2)
		w := httptest.NewRecorder()
		h.Execute(w, newPatchRequest(t, other, item.ID.String(), `{"delta": 1}`))

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("missing item is 404, not 5xx", func(t *testing.T) {
		h, _ := newHandler(2)
		w := httptest.NewRecorder()
		h.Execute(w, newPatchRequest(t, owner, uuid.NewString(), `{"delta": 1}`))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("unauthenticated gets 401", func(t *testing.T) {
		h, item := newHandler(2)
		w := httptest.NewRecorder()
		h.Execute(w, newPatchRequest(t, uuid.Nil, item.ID.String(), `{"delta": 1}`))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestParseIntField(t *testing.T) {
	sentinel := itemdomain.ErrDeltaNotInt
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{"positive integer", "3", 3, false},
		{"negative integer", "-2", -2, false},
		{"zero", "0", 0, false},
		{"large integer", "9007199254740993", 9007199254740993, false},
		{"true rejected", "true", 0, true},
		{"false rejected", "false", 0, true},
		{"float rejected", "1.0", 0, true},
		{"exponent rejected", "1e3", 0, true},
		{"quoted number rejected", `"3"`, 0, true},
		{"null rejected", "null", 0, true},
		{"empty rejected", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntField(json.RawMessage(tt.raw), sentinel)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIntField(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil && err != sentinel {
				t.Fatalf("expected sentinel error, got %v", err)
			}
			if err == nil && got != tt.want {
				t.Fatalf("parseIntField(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
