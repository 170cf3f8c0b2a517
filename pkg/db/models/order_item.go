package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is the per-line price snapshot frozen at checkout.
type OrderItem struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductTypeID uuid.UUID `gorm:"column:product_type_id;type:uuid;not null"`
	Title         string    `gorm:"column:title;not null"`
	UnitPrice     int64     `gorm:"column:unit_price;not null"`
	Quantity      int       `gorm:"column:quantity;not null"`
	LineSubtotal  int64     `gorm:"column:line_subtotal;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
