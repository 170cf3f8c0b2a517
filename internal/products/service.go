package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
)

// Service exposes seller product management operations.
type Service interface {
	CreateProduct(ctx context.Context, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeactivateProduct(ctx context.Context, storeID, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, *SellerSummary, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	CreateProductType(ctx context.Context, storeID uuid.UUID, name string) (*ProductTypeDTO, error)
	ListProductTypes(ctx context.Context, storeID uuid.UUID) ([]ProductTypeDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	ProductTypeID uuid.UUID
	SKU           string
	Title         string
	Description   *string
	Price         int64
	IsActive      bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	ProductTypeID *uuid.UUID
	SKU           *string
	Title         *string
	Description   *string
	Price         *int64
	IsActive      *bool
}

type storeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// service implements the product service.
type service struct {
	repo      *Repository
	storeRepo storeLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, storeRepo storeLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if storeRepo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, storeRepo: storeRepo}, nil
}

func (s *service) ensureSellerStore(ctx context.Context, storeID uuid.UUID) error {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.Type != enums.StoreTypeSeller {
		return pkgerrors.New(pkgerrors.CodeForbidden, "store is not a seller")
	}
	if !store.IsActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "store is deactivated")
	}
	return nil
}

func (s *service) ensureOwnedProductType(ctx context.Context, storeID, productTypeID uuid.UUID) error {
	pt, err := s.repo.FindProductTypeByID(ctx, productTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown product type")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product type")
	}
	if pt.StoreID != storeID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "product type belongs to another store")
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	if err := s.ensureSellerStore(ctx, storeID); err != nil {
		return nil, err
	}
	if err := s.ensureOwnedProductType(ctx, storeID, input.ProductTypeID); err != nil {
		return nil, err
	}

	product := &models.Product{
		StoreID:       storeID,
		ProductTypeID: input.ProductTypeID,
		SKU:           strings.TrimSpace(input.SKU),
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Price:         input.Price,
		IsActive:      input.IsActive,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another store")
	}

	if input.ProductTypeID != nil {
		if err := s.ensureOwnedProductType(ctx, storeID, *input.ProductTypeID); err != nil {
			return nil, err
		}
		product.ProductTypeID = *input.ProductTypeID
	}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku cannot be empty")
		}
		product.SKU = sku
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		product.Title = title
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		product.Price = *input.Price
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(updated), nil
}

// DeactivateProduct hides the listing without deleting it. Historical cart and
// order lines keep referencing the row.
func (s *service) DeactivateProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.StoreID != storeID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another store")
	}
	if !product.IsActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "product already inactive")
	}
	product.IsActive = false
	if _, err := s.repo.UpdateProduct(ctx, product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, *SellerSummary, error) {
	product, summary, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(product), summary, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	result, err := s.repo.ListProductSummaries(ctx, productListQuery{
		Pagination:    input.Pagination,
		Filters:       input.Filters,
		SellerStoreID: input.SellerStoreID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

func (s *service) CreateProductType(ctx context.Context, storeID uuid.UUID, name string) (*ProductTypeDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product type name is required")
	}
	if err := s.ensureSellerStore(ctx, storeID); err != nil {
		return nil, err
	}
	pt, err := s.repo.CreateProductType(ctx, &models.ProductType{StoreID: storeID, Name: name})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product type")
	}
	return ProductTypeFromModel(pt), nil
}

func (s *service) ListProductTypes(ctx context.Context, storeID uuid.UUID) ([]ProductTypeDTO, error) {
	rows, err := s.repo.ListProductTypesByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product types")
	}
	dtos := make([]ProductTypeDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *ProductTypeFromModel(&rows[i]))
	}
	return dtos, nil
}
