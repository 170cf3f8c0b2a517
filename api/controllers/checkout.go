package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/api/responses"
	"github.com/omarberrios/shopgrid-backend/api/validators"
	checkoutsvc "github.com/omarberrios/shopgrid-backend/internal/checkout"
	orderssvc "github.com/omarberrios/shopgrid-backend/internal/orders"
	"github.com/omarberrios/shopgrid-backend/internal/pricing"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
	"github.com/omarberrios/shopgrid-backend/pkg/logger"
)

type checkoutRequest struct {
	ShippingCode string `json:"shipping_code,omitempty" validate:"omitempty,max=64"`
	SeasonalCode string `json:"seasonal_code,omitempty" validate:"omitempty,max=64"`
}

func (r checkoutRequest) toInput() checkoutsvc.QuoteInput {
	return checkoutsvc.QuoteInput{
		ShippingCode: validators.SanitizeString(r.ShippingCode, 64),
		SeasonalCode: validators.SanitizeString(r.SeasonalCode, 64),
	}
}

// CheckoutQuote prices the selected cart lines without committing anything.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		buyerStoreID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), buyerStoreID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

type checkoutResponse struct {
	CheckoutGroupID uuid.UUID            `json:"checkout_group_id"`
	CartID          *uuid.UUID           `json:"cart_id,omitempty"`
	Orders          []orderssvc.OrderDTO `json:"orders"`
	Diagnostics     []pricing.Diagnostic `json:"diagnostics,omitempty"`
}

// CheckoutCommit submits the active cart: it re-prices inside one
// transaction, consumes discount usage, and freezes per-store orders.
func CheckoutCommit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		buyerStoreID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), buyerStoreID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCheckoutResponse(result))
	}
}

func newCheckoutResponse(result *checkoutsvc.ExecuteResult) checkoutResponse {
	if result == nil || result.Group == nil {
		return checkoutResponse{}
	}
	orders := make([]orderssvc.OrderDTO, 0, len(result.Group.Orders))
	for i := range result.Group.Orders {
		orders = append(orders, *orderssvc.FromModel(&result.Group.Orders[i]))
	}
	return checkoutResponse{
		CheckoutGroupID: result.Group.ID,
		CartID:          result.Group.CartID,
		Orders:          orders,
		Diagnostics:     result.Diagnostics,
	}
}
