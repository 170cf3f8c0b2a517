package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

// Discount is a promotional rule. Exactly one payload variant is populated,
// matching Category:
//   - seasonal: Rate plus optional MaxDiscountAmount
//   - special:  Rate plus optional MaxDiscountAmount, scoped via StoreID and
//     optionally ProductTypeID
//   - shipping: ShippingDiscountAmount
//
// Discounts referenced by historical orders are deactivated, never deleted.
type Discount struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code             string                 `gorm:"column:code;not null;uniqueIndex:idx_discounts_code"`
	Name             string                 `gorm:"column:name;not null"`
	Category         enums.DiscountCategory `gorm:"column:category;type:discount_category;not null"`
	MinPurchase      int64                  `gorm:"column:min_purchase;not null;default:0"`
	StartsAt         time.Time              `gorm:"column:starts_at;not null"`
	EndsAt           time.Time              `gorm:"column:ends_at;not null"`
	IsActive         bool                   `gorm:"column:is_active;not null;default:true"`
	UsageLimit       *int                   `gorm:"column:usage_limit"`
	UsageCount       int                    `gorm:"column:usage_count;not null;default:0"`
	CreatedByStoreID *uuid.UUID             `gorm:"column:created_by_store_id;type:uuid"`

	Rate                   *decimal.Decimal `gorm:"column:rate;type:numeric(6,4)"`
	MaxDiscountAmount      *int64           `gorm:"column:max_discount_amount"`
	ShippingDiscountAmount *int64           `gorm:"column:shipping_discount_amount"`
	StoreID                *uuid.UUID       `gorm:"column:store_id;type:uuid"`
	ProductTypeID          *uuid.UUID       `gorm:"column:product_type_id;type:uuid"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
