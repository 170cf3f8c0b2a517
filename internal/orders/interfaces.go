package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	"github.com/omarberrios/shopgrid-backend/pkg/pagination"
)

// Repository defines persistence operations for checkout groups and orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateCheckoutGroup(ctx context.Context, group *models.CheckoutGroup) (*models.CheckoutGroup, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindCheckoutGroupByID(ctx context.Context, id uuid.UUID) (*models.CheckoutGroup, error)
	FindOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListBuyerOrders(ctx context.Context, buyerStoreID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
	ListStoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
}
