package product

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

const sellerSummaryQuery = `
SELECT s.id AS store_id,
       s.name
FROM stores s
WHERE s.id = ?
`

// Repository wires together product and product-type persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads the given products keyed by id.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	result := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}

// GetProductDetail fetches a product plus its seller summary.
func (r *Repository) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, *SellerSummary, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}

	var summary SellerSummary
	if err := r.db.WithContext(ctx).Raw(sellerSummaryQuery, product.StoreID).Scan(&summary).Error; err != nil {
		return &product, nil, err
	}
	return &product, &summary, nil
}

// ListProductsByStore lists the products owned by a store, newest first.
func (r *Repository) ListProductsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// CreateProductType inserts a seller category.
func (r *Repository) CreateProductType(ctx context.Context, pt *models.ProductType) (*models.ProductType, error) {
	if err := r.db.WithContext(ctx).Create(pt).Error; err != nil {
		return nil, err
	}
	return pt, nil
}

// FindProductTypeByID loads a product type row.
func (r *Repository) FindProductTypeByID(ctx context.Context, id uuid.UUID) (*models.ProductType, error) {
	var pt models.ProductType
	if err := r.db.WithContext(ctx).First(&pt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

// ListProductTypesByStore returns a seller's categories, oldest first.
func (r *Repository) ListProductTypesByStore(ctx context.Context, storeID uuid.UUID) ([]models.ProductType, error) {
	var rows []models.ProductType
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

type productListQuery struct {
	Pagination    pagination.Params
	Filters       ProductListFilters
	SellerStoreID *uuid.UUID
}

// ListProductSummaries runs the cursor-paginated browse query.
func (r *Repository) ListProductSummaries(ctx context.Context, query productListQuery) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(strings.Join([]string{
			"p.id",
			"p.sku",
			"p.title",
			"p.price",
			"p.product_type_id",
			"p.store_id",
			"s.name AS store_name",
			"p.created_at",
			"p.updated_at",
		}, ", ")).
		Joins("JOIN stores s ON s.id = p.store_id")

	filter := query.Filters
	if filter.ProductTypeID != nil {
		qb = qb.Where("p.product_type_id = ?", *filter.ProductTypeID)
	}
	if filter.PriceMin != nil {
		qb = qb.Where("p.price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		qb = qb.Where("p.price <= ?", *filter.PriceMax)
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.title) LIKE ? OR LOWER(p.sku) LIKE ?)", pattern, pattern)
	}

	if query.SellerStoreID != nil {
		qb = qb.Where("p.store_id = ?", *query.SellerStoreID)
	} else {
		qb = qb.Where("s.type = ?", enums.StoreTypeSeller)
		qb = qb.Where("s.is_active = ?", true)
		qb = qb.Where("p.is_active = ?", true)
	}

	if cursor != nil {
		qb = qb.Where("(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("p.created_at DESC").Order("p.id DESC").Limit(limitWithBuffer)

	var records []productSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(resultRows))
	for _, record := range resultRows {
		summaries = append(summaries, record.toSummary())
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}

type productSummaryRecord struct {
	ID            uuid.UUID
	SKU           string
	Title         string
	Price         int64
	ProductTypeID uuid.UUID
	StoreID       uuid.UUID
	StoreName     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r productSummaryRecord) toSummary() ProductSummary {
	return ProductSummary{
		ID:            r.ID,
		SKU:           r.SKU,
		Title:         r.Title,
		Price:         r.Price,
		ProductTypeID: r.ProductTypeID,
		StoreID:       r.StoreID,
		StoreName:     r.StoreName,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
