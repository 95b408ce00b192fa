package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/item/application/services"
	itemdomain "github.com/ghuser/stockroom/services/item/domain"
)

// UpdateQtyRequest is the request body for PATCH /items/{id}/qty.
// Delta is decoded raw so booleans and floats fail with "delta must be an int"
// instead of being coerced.
type UpdateQtyRequest struct {
	Delta json.RawMessage `json:"delta" validate:"required" swaggertype:"integer" example:"-2"`
} // @name UpdateQtyRequest

// PatchItemQtyHandler handles PATCH /items/{id}/qty requests.
type PatchItemQtyHandler struct {
	svc *appsvcs.Services
}

// NewPatchItemQtyHandler returns a PatchItemQtyHandler backed by the given services.
func NewPatchItemQtyHandler(svc *appsvcs.Services) *PatchItemQtyHandler {
	return &PatchItemQtyHandler{svc: svc}
}

// Execute adjusts an item's quantity by a signed delta.
//
//	@Summary		Adjust item quantity
//	@Description	Applies a signed delta to the item's quantity; the result never drops below zero
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Item ID"
//	@Param			request	body		UpdateQtyRequest	true	"Quantity adjustment"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{id}/qty [patch]
func (h *PatchItemQtyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.OwnerIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateQtyRequest](w, r)
	if !ok {
		return
	}

	delta, err := parseIntField(req.Delta, itemdomain.ErrDeltaNotInt)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	item, err := h.svc.Item.UpdateQty(r.Context(), ownerID, id, delta)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if item == nil {
		// Soft miss: the update contract reports absence as an empty result.
		httpx.JSONError(w, http.StatusNotFound, itemdomain.ErrItemNotFound.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, ItemResponse{
		ID:        item.ID,
		Name:      item.Name.String(),
		Qty:       item.Qty,
		CreatedAt: item.CreatedAt,
	})
}
