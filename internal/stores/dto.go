package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

// StoreDTO exposes safe tenant data in API responses.
type StoreDTO struct {
	ID          uuid.UUID       `json:"id"`
	Type        enums.StoreType `json:"type"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Email       *string         `json:"email,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateStoreDTO holds creation-time data for a new store.
type CreateStoreDTO struct {
	Type        enums.StoreType
	Name        string
	Description *string
	Email       *string
	Phone       *string
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:          m.ID,
		Type:        m.Type,
		Name:        m.Name,
		Description: m.Description,
		Email:       m.Email,
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO, supplying defaults.
func (c CreateStoreDTO) ToModel() *models.Store {
	return &models.Store{
		Type:        c.Type,
		Name:        c.Name,
		Description: c.Description,
		Email:       c.Email,
		Phone:       c.Phone,
		IsActive:    true,
	}
}
