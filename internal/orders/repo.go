package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	"github.com/omarberrios/shopgrid-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCheckoutGroup(ctx context.Context, group *models.CheckoutGroup) (*models.CheckoutGroup, error) {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Status == "" {
		order.Status = enums.OrderStatusPending
	}
	if err := r.db.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindCheckoutGroupByID(ctx context.Context, id uuid.UUID) (*models.CheckoutGroup, error) {
	var group models.CheckoutGroup
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Orders.Items").
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) FindOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListBuyerOrders(ctx context.Context, buyerStoreID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	return r.listOrders(ctx, "o.buyer_store_id = ?", buyerStoreID, params, filters)
}

func (r *repository) ListStoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	return r.listOrders(ctx, "o.store_id = ?", storeID, params, filters)
}

type orderSummaryRecord struct {
	ID              uuid.UUID
	CheckoutGroupID uuid.UUID
	BuyerStoreID    uuid.UUID
	StoreID         uuid.UUID
	StoreName       string
	Status          enums.OrderStatus
	Subtotal        int64
	ShippingFee     int64
	TotalDiscount   int64
	Total           int64
	ItemCount       int
	CreatedAt       time.Time
}

func (r *repository) listOrders(ctx context.Context, ownerClause string, ownerID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("orders o").
		Select(strings.Join([]string{
			"o.id",
			"o.checkout_group_id",
			"o.buyer_store_id",
			"o.store_id",
			"o.store_name",
			"o.status",
			"o.subtotal",
			"o.shipping_fee",
			"o.total_discount",
			"o.total",
			"(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS item_count",
			"o.created_at",
		}, ", ")).
		Where(ownerClause, ownerID)

	if filters.Status != nil {
		qb = qb.Where("o.status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		qb = qb.Where("o.created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		qb = qb.Where("o.created_at <= ?", *filters.DateTo)
	}
	if cursor != nil {
		qb = qb.Where("(o.created_at < ?) OR (o.created_at = ? AND o.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []orderSummaryRecord
	err = qb.Order("o.created_at DESC, o.id DESC").
		Limit(limitWithBuffer).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &OrderList{Orders: make([]OrderSummary, 0, len(rows))}
	hasMore := len(rows) > pageSize
	if hasMore {
		rows = rows[:pageSize]
	}
	for _, row := range rows {
		list.Orders = append(list.Orders, row.toSummary())
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (rec orderSummaryRecord) toSummary() OrderSummary {
	return OrderSummary{
		ID:              rec.ID,
		CheckoutGroupID: rec.CheckoutGroupID,
		BuyerStoreID:    rec.BuyerStoreID,
		StoreID:         rec.StoreID,
		StoreName:       rec.StoreName,
		Status:          rec.Status,
		Subtotal:        rec.Subtotal,
		ShippingFee:     rec.ShippingFee,
		TotalDiscount:   rec.TotalDiscount,
		Total:           rec.Total,
		ItemCount:       rec.ItemCount,
		CreatedAt:       rec.CreatedAt,
	}
}
