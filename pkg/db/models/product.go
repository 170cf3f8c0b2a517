package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents the canonical seller listing. Price is in whole currency
// units; cart lines snapshot it at the time the buyer added the item.
type Product struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID       uuid.UUID `gorm:"column:store_id;type:uuid;not null"`
	ProductTypeID uuid.UUID `gorm:"column:product_type_id;type:uuid;not null"`
	SKU           string    `gorm:"column:sku;not null"`
	Title         string    `gorm:"column:title;not null"`
	Description   *string   `gorm:"column:description"`
	Price         int64     `gorm:"column:price;not null"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
