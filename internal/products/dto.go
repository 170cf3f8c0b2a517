package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
)

// ProductDTO exposes a seller listing in API responses.
type ProductDTO struct {
	ID            uuid.UUID `json:"id"`
	StoreID       uuid.UUID `json:"store_id"`
	ProductTypeID uuid.UUID `json:"product_type_id"`
	SKU           string    `json:"sku"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Price         int64     `json:"price"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductTypeDTO exposes a seller-defined category.
type ProductTypeDTO struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SellerSummary exposes the minimal store data used by product read paths.
type SellerSummary struct {
	StoreID uuid.UUID `json:"store_id"`
	Name    string    `json:"name"`
}

// ProductSummary is the browse-endpoint row shape.
type ProductSummary struct {
	ID            uuid.UUID `json:"id"`
	SKU           string    `json:"sku"`
	Title         string    `json:"title"`
	Price         int64     `json:"price"`
	ProductTypeID uuid.UUID `json:"product_type_id"`
	StoreID       uuid.UUID `json:"store_id"`
	StoreName     string    `json:"store_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResult carries one page of product summaries.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted product into a DTO.
func FromModel(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}
	return &ProductDTO{
		ID:            m.ID,
		StoreID:       m.StoreID,
		ProductTypeID: m.ProductTypeID,
		SKU:           m.SKU,
		Title:         m.Title,
		Description:   m.Description,
		Price:         m.Price,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ProductTypeFromModel maps the persisted product type into a DTO.
func ProductTypeFromModel(m *models.ProductType) *ProductTypeDTO {
	if m == nil {
		return nil
	}
	return &ProductTypeDTO{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}
