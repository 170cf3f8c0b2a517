package product

import (
	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	ProductTypeID *uuid.UUID `json:"product_type_id,omitempty"`
	PriceMin      *int64     `json:"price_min,omitempty"`
	PriceMax      *int64     `json:"price_max,omitempty"`
	Query         string     `json:"q,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter products.
// SellerStoreID narrows the listing to one seller's own catalog, including
// inactive listings; without it only active products from active sellers show.
type ListProductsInput struct {
	SellerStoreID *uuid.UUID
	Filters       ProductListFilters
	Pagination    pagination.Params
}
