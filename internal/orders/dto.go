package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	"github.com/omarberrios/shopgrid-backend/pkg/types"
)

// OrderFilters describe the inputs supported by the order list endpoints.
type OrderFilters struct {
	Status   *enums.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderSummary is the list-endpoint row shape.
type OrderSummary struct {
	ID              uuid.UUID         `json:"id"`
	CheckoutGroupID uuid.UUID         `json:"checkout_group_id"`
	BuyerStoreID    uuid.UUID         `json:"buyer_store_id"`
	StoreID         uuid.UUID         `json:"store_id"`
	StoreName       string            `json:"store_name"`
	Status          enums.OrderStatus `json:"status"`
	Subtotal        int64             `json:"subtotal"`
	ShippingFee     int64             `json:"shipping_fee"`
	TotalDiscount   int64             `json:"total_discount"`
	Total           int64             `json:"total"`
	ItemCount       int               `json:"item_count"`
	CreatedAt       time.Time         `json:"created_at"`
}

// OrderList wraps one page of order summaries plus the next cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrderItemDTO is the per-line snapshot in the order detail.
type OrderItemDTO struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductTypeID uuid.UUID `json:"product_type_id"`
	Title         string    `json:"title"`
	UnitPrice     int64     `json:"unit_price"`
	Quantity      int       `json:"quantity"`
	LineSubtotal  int64     `json:"line_subtotal"`
}

// OrderDTO is the full order detail including the frozen discount snapshots.
type OrderDTO struct {
	ID               uuid.UUID              `json:"id"`
	CheckoutGroupID  uuid.UUID              `json:"checkout_group_id"`
	BuyerStoreID     uuid.UUID              `json:"buyer_store_id"`
	StoreID          uuid.UUID              `json:"store_id"`
	StoreName        string                 `json:"store_name"`
	Status           enums.OrderStatus      `json:"status"`
	Subtotal         int64                  `json:"subtotal"`
	ShippingFee      int64                  `json:"shipping_fee"`
	ShippingDiscount int64                  `json:"shipping_discount"`
	TotalDiscount    int64                  `json:"total_discount"`
	Total            int64                  `json:"total"`
	Anomaly          bool                   `json:"anomaly,omitempty"`
	ShippingPromo    *types.AppliedDiscount `json:"shipping_promo,omitempty"`
	SeasonalPromo    *types.AppliedDiscount `json:"seasonal_promo,omitempty"`
	SpecialPromo     *types.AppliedDiscount `json:"special_promo,omitempty"`
	Items            []OrderItemDTO         `json:"items"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// FromModel maps a persisted order into the detail DTO.
func FromModel(m *models.Order) *OrderDTO {
	if m == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:               m.ID,
		CheckoutGroupID:  m.CheckoutGroupID,
		BuyerStoreID:     m.BuyerStoreID,
		StoreID:          m.StoreID,
		StoreName:        m.StoreName,
		Status:           m.Status,
		Subtotal:         m.Subtotal,
		ShippingFee:      m.ShippingFee,
		ShippingDiscount: m.ShippingDiscount,
		TotalDiscount:    m.TotalDiscount,
		Total:            m.Total,
		Anomaly:          m.Anomaly,
		ShippingPromo:    m.ShippingPromo,
		SeasonalPromo:    m.SeasonalPromo,
		SpecialPromo:     m.SpecialPromo,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	dto.Items = make([]OrderItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:            item.ID,
			ProductID:     item.ProductID,
			ProductTypeID: item.ProductTypeID,
			Title:         item.Title,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			LineSubtotal:  item.LineSubtotal,
		})
	}
	return dto
}
