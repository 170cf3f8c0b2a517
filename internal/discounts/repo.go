package discounts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
)

// Repository handles discount persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to discount operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists a new discount row.
func (r *Repository) Create(ctx context.Context, discount *models.Discount) (*models.Discount, error) {
	if err := r.db.WithContext(ctx).Create(discount).Error; err != nil {
		return nil, err
	}
	return discount, nil
}

// FindByID loads a discount by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

// FindByCode loads a discount by its unique code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.WithContext(ctx).First(&discount, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

// ListCatalog returns the discounts worth evaluating at the given instant:
// active rows whose window has started and not yet ended, id ascending so
// pricing sees candidates in a stable order. Harder eligibility rules run in
// the pricing engine.
func (r *Repository) ListCatalog(ctx context.Context, now time.Time) ([]models.Discount, error) {
	var rows []models.Discount
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND starts_at <= ? AND ends_at > ?", true, now, now).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListByCreator returns discounts owned by one store, newest first. A nil
// creator lists the platform-wide discounts.
func (r *Repository) ListByCreator(ctx context.Context, createdByStoreID *uuid.UUID) ([]models.Discount, error) {
	q := r.db.WithContext(ctx)
	if createdByStoreID == nil {
		q = q.Where("created_by_store_id IS NULL")
	} else {
		q = q.Where("created_by_store_id = ?", *createdByStoreID)
	}
	var rows []models.Discount
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// Update saves the provided discount.
func (r *Repository) Update(ctx context.Context, discount *models.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

// ConsumeUsage atomically increments usage_count, refusing when the limit is
// already reached. It reports whether the increment happened.
func (r *Repository) ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Discount{}).
		Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
