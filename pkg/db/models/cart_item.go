package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

// CartItem persists one product line in a cart. UnitPrice is the price at the
// time of viewing; Selected marks whether the line is part of the next checkout.
type CartItem struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID        uuid.UUID            `gorm:"column:cart_id;type:uuid;not null"`
	ProductID     uuid.UUID            `gorm:"column:product_id;type:uuid;not null"`
	StoreID       uuid.UUID            `gorm:"column:store_id;type:uuid;not null"`
	ProductTypeID uuid.UUID            `gorm:"column:product_type_id;type:uuid;not null"`
	Title         string               `gorm:"column:title;not null"`
	UnitPrice     int64                `gorm:"column:unit_price;not null"`
	Quantity      int                  `gorm:"column:quantity;not null"`
	Selected      bool                 `gorm:"column:selected;not null;default:true"`
	Status        enums.CartItemStatus `gorm:"column:status;type:cart_item_status;not null;default:'ok'"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
