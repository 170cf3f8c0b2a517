package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

// CartRecord is the buyer's working cart. Pricing is never persisted here;
// store order groups and totals are computed on demand at checkout.
type CartRecord struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerStoreID uuid.UUID        `gorm:"column:buyer_store_id;type:uuid;not null"`
	Status       enums.CartStatus `gorm:"column:status;type:cart_status;not null;default:'active'"`
	ConvertedAt  *time.Time       `gorm:"column:converted_at"`
	Items        []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
