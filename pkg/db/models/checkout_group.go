package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutGroup ties together the per-store orders created by one checkout.
type CheckoutGroup struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerStoreID uuid.UUID  `gorm:"column:buyer_store_id;type:uuid;not null"`
	CartID       *uuid.UUID `gorm:"column:cart_id;type:uuid"`
	Orders       []Order    `gorm:"foreignKey:CheckoutGroupID"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
