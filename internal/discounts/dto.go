package discounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

// DiscountDTO exposes a discount in API responses.
type DiscountDTO struct {
	ID               uuid.UUID              `json:"id"`
	Code             string                 `json:"code"`
	Name             string                 `json:"name"`
	Category         enums.DiscountCategory `json:"category"`
	MinPurchase      int64                  `json:"min_purchase"`
	StartsAt         time.Time              `json:"starts_at"`
	EndsAt           time.Time              `json:"ends_at"`
	IsActive         bool                   `json:"is_active"`
	UsageLimit       *int                   `json:"usage_limit,omitempty"`
	UsageCount       int                    `json:"usage_count"`
	CreatedByStoreID *uuid.UUID             `json:"created_by_store_id,omitempty"`

	Rate                   *decimal.Decimal `json:"rate,omitempty"`
	MaxDiscountAmount      *int64           `json:"max_discount_amount,omitempty"`
	ShippingDiscountAmount *int64           `json:"shipping_discount_amount,omitempty"`
	StoreID                *uuid.UUID       `json:"store_id,omitempty"`
	ProductTypeID          *uuid.UUID       `json:"product_type_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModel maps the persisted discount into a DTO.
func FromModel(m *models.Discount) *DiscountDTO {
	if m == nil {
		return nil
	}
	return &DiscountDTO{
		ID:               m.ID,
		Code:             m.Code,
		Name:             m.Name,
		Category:         m.Category,
		MinPurchase:      m.MinPurchase,
		StartsAt:         m.StartsAt,
		EndsAt:           m.EndsAt,
		IsActive:         m.IsActive,
		UsageLimit:       m.UsageLimit,
		UsageCount:       m.UsageCount,
		CreatedByStoreID: m.CreatedByStoreID,

		Rate:                   m.Rate,
		MaxDiscountAmount:      m.MaxDiscountAmount,
		ShippingDiscountAmount: m.ShippingDiscountAmount,
		StoreID:                m.StoreID,
		ProductTypeID:          m.ProductTypeID,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
