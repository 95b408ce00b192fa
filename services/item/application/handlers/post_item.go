package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/item/application/services"
	itemdomain "github.com/ghuser/stockroom/services/item/domain"
)

// CreateItemRequest is the request body for POST /items.
// Qty is decoded as a raw field so non-integer JSON values (booleans, floats,
// strings) can be rejected with the domain's invariant error.
type CreateItemRequest struct {
	Name string          `json:"name" validate:"required" example:"milk"`
	Qty  json.RawMessage `json:"qty"  validate:"required" swaggertype:"integer" example:"2"`
} // @name CreateItemRequest

// ItemResponse is the representation returned for a single item.
type ItemResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string    `json:"name"       example:"milk"`
	Qty       int64     `json:"qty"        example:"2"`
	CreatedAt time.Time `json:"created_at" example:"2026-01-15T10:30:00Z"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item with that name already exists"`
} // @name ErrorResponse

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new item for the authenticated owner.
//
//	@Summary		Create item
//	@Description	Creates a new named item with an initial quantity, unique per owner
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.OwnerIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	qty, err := parseIntField(req.Qty, itemdomain.ErrQtyNotInt)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	item, err := h.svc.Item.Create(r.Context(), ownerID, req.Name, qty)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, ItemResponse{
		ID:        item.ID,
		Name:      item.Name.String(),
		Qty:       item.Qty,
		CreatedAt: item.CreatedAt,
	})
}
