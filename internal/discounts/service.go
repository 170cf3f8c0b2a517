package discounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/pkg/db"
	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
)

// Service exposes discount catalog management. Checkout-time evaluation lives
// in the pricing engine; this service owns authoring and lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateDiscountInput) (*DiscountDTO, error)
	GetByCode(ctx context.Context, code string) (*DiscountDTO, error)
	List(ctx context.Context, createdByStoreID *uuid.UUID) ([]DiscountDTO, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*DiscountDTO, error)
}

// CreateDiscountInput holds the authoring payload for a new discount.
// CreatedByStoreID is nil for platform-operator discounts; sellers may only
// create special discounts scoped to their own store.
type CreateDiscountInput struct {
	Code             string
	Name             string
	Category         enums.DiscountCategory
	MinPurchase      int64
	StartsAt         time.Time
	EndsAt           time.Time
	UsageLimit       *int
	CreatedByStoreID *uuid.UUID

	Rate                   *decimal.Decimal
	MaxDiscountAmount      *int64
	ShippingDiscountAmount *int64
	StoreID                *uuid.UUID
	ProductTypeID          *uuid.UUID
}

type discountRepository interface {
	Create(ctx context.Context, discount *models.Discount) (*models.Discount, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Discount, error)
	FindByCode(ctx context.Context, code string) (*models.Discount, error)
	ListByCreator(ctx context.Context, createdByStoreID *uuid.UUID) ([]models.Discount, error)
	Update(ctx context.Context, discount *models.Discount) error
}

type service struct {
	repo discountRepository
}

// NewService builds a discount service with the provided repository.
func NewService(repo discountRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateDiscountInput) (*DiscountDTO, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount category")
	}
	if input.MinPurchase < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum purchase must be non-negative")
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() || !input.EndsAt.After(input.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validity window must end after it starts")
	}
	if input.UsageLimit != nil && *input.UsageLimit < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "usage limit must be at least 1")
	}
	if err := validatePayload(input); err != nil {
		return nil, err
	}

	discount := &models.Discount{
		Code:             code,
		Name:             strings.TrimSpace(input.Name),
		Category:         input.Category,
		MinPurchase:      input.MinPurchase,
		StartsAt:         input.StartsAt,
		EndsAt:           input.EndsAt,
		IsActive:         true,
		UsageLimit:       input.UsageLimit,
		CreatedByStoreID: input.CreatedByStoreID,

		Rate:                   input.Rate,
		MaxDiscountAmount:      input.MaxDiscountAmount,
		ShippingDiscountAmount: input.ShippingDiscountAmount,
		StoreID:                input.StoreID,
		ProductTypeID:          input.ProductTypeID,
	}

	created, err := s.repo.Create(ctx, discount)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_discounts_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create discount")
	}
	return FromModel(created), nil
}

// validatePayload enforces exactly one payload variant matching the category,
// and restricts seller authorship to own-store specials.
func validatePayload(input CreateDiscountInput) error {
	switch input.Category {
	case enums.DiscountCategoryShipping:
		if input.ShippingDiscountAmount == nil || *input.ShippingDiscountAmount <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "shipping discounts require a positive amount")
		}
		if input.Rate != nil || input.MaxDiscountAmount != nil || input.StoreID != nil || input.ProductTypeID != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "shipping discounts carry only a flat amount")
		}
		if input.CreatedByStoreID != nil {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the platform operator can create shipping discounts")
		}
	case enums.DiscountCategorySeasonal:
		if err := validateRate(input.Rate); err != nil {
			return err
		}
		if input.MaxDiscountAmount != nil && *input.MaxDiscountAmount < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "maximum discount amount must be non-negative")
		}
		if input.ShippingDiscountAmount != nil || input.StoreID != nil || input.ProductTypeID != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "seasonal discounts are not store or shipping scoped")
		}
		if input.CreatedByStoreID != nil {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the platform operator can create seasonal discounts")
		}
	case enums.DiscountCategorySpecial:
		if err := validateRate(input.Rate); err != nil {
			return err
		}
		if input.MaxDiscountAmount != nil && *input.MaxDiscountAmount < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "maximum discount amount must be non-negative")
		}
		if input.ShippingDiscountAmount != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "special discounts cannot carry a shipping amount")
		}
		if input.StoreID == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "special discounts require a store scope")
		}
		if input.CreatedByStoreID != nil && *input.CreatedByStoreID != *input.StoreID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "sellers can only scope specials to their own store")
		}
	}
	return nil
}

func validateRate(rate *decimal.Decimal) error {
	if rate == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "rate is required")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "rate must be between 0 and 1")
	}
	if rate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "rate must be positive")
	}
	return nil
}

func (s *service) GetByCode(ctx context.Context, code string) (*DiscountDTO, error) {
	discount, err := s.repo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount")
	}
	return FromModel(discount), nil
}

func (s *service) List(ctx context.Context, createdByStoreID *uuid.UUID) ([]DiscountDTO, error) {
	rows, err := s.repo.ListByCreator(ctx, createdByStoreID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list discounts")
	}
	dtos := make([]DiscountDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

// SetActive toggles the discount without deleting it. Historical order
// breakdowns keep their frozen snapshot either way.
func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*DiscountDTO, error) {
	discount, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount")
	}
	if discount.IsActive == active {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "discount already in requested state")
	}
	discount.IsActive = active
	if err := s.repo.Update(ctx, discount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update discount")
	}
	return FromModel(discount), nil
}
