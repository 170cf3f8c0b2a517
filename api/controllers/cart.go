package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/api/responses"
	"github.com/omarberrios/shopgrid-backend/api/validators"
	cartsvc "github.com/omarberrios/shopgrid-backend/internal/cart"
	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
	"github.com/omarberrios/shopgrid-backend/pkg/logger"
)

type cartItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	StoreID       uuid.UUID `json:"store_id"`
	ProductTypeID uuid.UUID `json:"product_type_id"`
	Title         string    `json:"title"`
	UnitPrice     int64     `json:"unit_price"`
	Quantity      int       `json:"quantity"`
	Selected      bool      `json:"selected"`
	Status        string    `json:"status"`
}

type cartResponse struct {
	ID           uuid.UUID          `json:"id"`
	BuyerStoreID uuid.UUID          `json:"buyer_store_id"`
	Status       string             `json:"status"`
	Items        []cartItemResponse `json:"items"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func newCartResponse(record *models.CartRecord) cartResponse {
	if record == nil {
		return cartResponse{}
	}
	items := make([]cartItemResponse, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, cartItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			StoreID:       item.StoreID,
			ProductTypeID: item.ProductTypeID,
			Title:         item.Title,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			Selected:      item.Selected,
			Status:        string(item.Status),
		})
	}
	return cartResponse{
		ID:           record.ID,
		BuyerStoreID: record.BuyerStoreID,
		Status:       string(record.Status),
		Items:        items,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

// CartGet returns the buyer's active cart with line statuses refreshed
// against the current catalog.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		buyerStoreID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetActiveCart(r.Context(), buyerStoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

type cartAddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=999"`
}

// CartAddItem adds a product line, merging quantity when the product is
// already in the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		buyerStoreID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AddItem(r.Context(), buyerStoreID, cartsvc.AddItemInput{
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(record))
	}
}

type cartUpdateItemRequest struct {
	Quantity *int  `json:"quantity,omitempty" validate:"omitempty,min=1,max=999"`
	Selected *bool `json:"selected,omitempty"`
}

// CartUpdateItem adjusts quantity and/or the checkout selection flag of one line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		buyerStoreID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartUpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == nil && payload.Selected == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
			return
		}

		var record *models.CartRecord
		if payload.Quantity != nil {
			record, err = svc.UpdateQuantity(r.Context(), buyerStoreID, itemID, *payload.Quantity)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if payload.Selected != nil {
			record, err = svc.SetSelected(r.Context(), buyerStoreID, itemID, *payload.Selected)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartRemoveItem deletes one line from the active cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		buyerStoreID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.RemoveItem(r.Context(), buyerStoreID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}
