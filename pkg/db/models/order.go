package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	"github.com/omarberrios/shopgrid-backend/pkg/types"
)

// Order is the immutable per-store order record frozen at checkout. All
// monetary fields are copied verbatim from the pricing engine output; they are
// never re-derived from live discount state.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CheckoutGroupID uuid.UUID         `gorm:"column:checkout_group_id;type:uuid;not null"`
	BuyerStoreID    uuid.UUID         `gorm:"column:buyer_store_id;type:uuid;not null"`
	StoreID         uuid.UUID         `gorm:"column:store_id;type:uuid;not null"`
	StoreName       string            `gorm:"column:store_name;not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`

	Subtotal         int64 `gorm:"column:subtotal;not null"`
	ShippingFee      int64 `gorm:"column:shipping_fee;not null"`
	ShippingDiscount int64 `gorm:"column:shipping_discount;not null;default:0"`
	TotalDiscount    int64 `gorm:"column:total_discount;not null;default:0"`
	Total            int64 `gorm:"column:total;not null"`
	Anomaly          bool  `gorm:"column:anomaly;not null;default:false"`

	ShippingPromo *types.AppliedDiscount `gorm:"column:shipping_promo;type:jsonb;serializer:json"`
	SeasonalPromo *types.AppliedDiscount `gorm:"column:seasonal_promo;type:jsonb;serializer:json"`
	SpecialPromo  *types.AppliedDiscount `gorm:"column:special_promo;type:jsonb;serializer:json"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
