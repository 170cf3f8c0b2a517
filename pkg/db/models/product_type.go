package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductType is a seller-defined category within a store. Special discounts
// may narrow their scope to one of these.
type ProductType struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
