package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarberrios/shopgrid-backend/api/middleware"
	"github.com/omarberrios/shopgrid-backend/api/responses"
	"github.com/omarberrios/shopgrid-backend/api/validators"
	discountssvc "github.com/omarberrios/shopgrid-backend/internal/discounts"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
	"github.com/omarberrios/shopgrid-backend/pkg/logger"
)

type discountCreateRequest struct {
	Code        string    `json:"code" validate:"required,min=2,max=64"`
	Name        string    `json:"name" validate:"required,min=1,max=120"`
	Category    string    `json:"category" validate:"required"`
	MinPurchase int64     `json:"min_purchase" validate:"min=0"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	UsageLimit  *int      `json:"usage_limit,omitempty" validate:"omitempty,min=1"`

	Rate                   *decimal.Decimal `json:"rate,omitempty"`
	MaxDiscountAmount      *int64           `json:"max_discount_amount,omitempty"`
	ShippingDiscountAmount *int64           `json:"shipping_discount_amount,omitempty"`
	StoreID                *uuid.UUID       `json:"store_id,omitempty"`
	ProductTypeID          *uuid.UUID       `json:"product_type_id,omitempty"`
}

// DiscountCreate authors a discount. With a store context the discount is
// seller-scoped; without one it is a platform discount.
func DiscountCreate(svc discountssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var payload discountCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseDiscountCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount category"))
			return
		}

		var createdBy *uuid.UUID
		if raw := middleware.StoreIDFromContext(r.Context()); raw != "" {
			id, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid store id"))
				return
			}
			createdBy = &id
		}

		discount, err := svc.Create(r.Context(), discountssvc.CreateDiscountInput{
			Code:             validators.SanitizeString(payload.Code, 64),
			Name:             validators.SanitizeString(payload.Name, 120),
			Category:         category,
			MinPurchase:      payload.MinPurchase,
			StartsAt:         payload.StartsAt,
			EndsAt:           payload.EndsAt,
			UsageLimit:       payload.UsageLimit,
			CreatedByStoreID: createdBy,

			Rate:                   payload.Rate,
			MaxDiscountAmount:      payload.MaxDiscountAmount,
			ShippingDiscountAmount: payload.ShippingDiscountAmount,
			StoreID:                payload.StoreID,
			ProductTypeID:          payload.ProductTypeID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, discount)
	}
}

// DiscountList returns the catalog. With mine=true it narrows to discounts
// authored by the acting store.
func DiscountList(svc discountssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var creator *uuid.UUID
		if r.URL.Query().Get("mine") == "true" {
			storeID, err := storeIDFromRequest(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			creator = &storeID
		}

		list, err := svc.List(r.Context(), creator)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"discounts": list})
	}
}

// DiscountGet looks a discount up by its public code.
func DiscountGet(svc discountssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		code := validators.SanitizeString(chi.URLParam(r, "code"), 64)
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "discount code required"))
			return
		}

		discount, err := svc.GetByCode(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, discount)
	}
}

type discountActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// DiscountSetActive flips a discount's kill switch.
func DiscountSetActive(svc discountssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		id, err := pathUUID(r, "discountID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload discountActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discount, err := svc.SetActive(r.Context(), id, *payload.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, discount)
	}
}
