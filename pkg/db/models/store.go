package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

// Store represents the canonical tenant model. Buyers and sellers are both
// stores distinguished by Type.
type Store struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Type        enums.StoreType `gorm:"column:type;type:store_type;not null"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	Email       *string         `gorm:"column:email"`
	Phone       *string         `gorm:"column:phone"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
