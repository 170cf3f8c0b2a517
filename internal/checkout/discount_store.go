package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/internal/discounts"
	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
)

// DiscountStore is the discount surface checkout depends on: the live catalog
// for pricing and the usage counter for commit.
type DiscountStore interface {
	WithTx(tx *gorm.DB) DiscountStore
	ListCatalog(ctx context.Context, now time.Time) ([]models.Discount, error)
	ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error)
}

type discountStore struct {
	repo *discounts.Repository
}

// NewDiscountStore adapts the discount repository to the checkout surface.
func NewDiscountStore(repo *discounts.Repository) DiscountStore {
	return discountStore{repo: repo}
}

func (d discountStore) WithTx(tx *gorm.DB) DiscountStore {
	if tx == nil {
		return d
	}
	return discountStore{repo: d.repo.WithTx(tx)}
}

func (d discountStore) ListCatalog(ctx context.Context, now time.Time) ([]models.Discount, error) {
	return d.repo.ListCatalog(ctx, now)
}

func (d discountStore) ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.repo.ConsumeUsage(ctx, id)
}
