package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
)

func TestNewServiceValidation(t *testing.T) {
	if _, err := NewService(nil, &fakeStoreLoader{}); err == nil {
		t.Fatal("expected error without repository")
	}
	if _, err := NewService(&Repository{}, nil); err == nil {
		t.Fatal("expected error without store loader")
	}
}

func TestCreateProductInputValidation(t *testing.T) {
	svc := mustService(t, &fakeStoreLoader{})
	ctx := context.Background()
	storeID := uuid.New()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{name: "blank sku", input: CreateProductInput{SKU: " ", Title: "x", Price: 1, ProductTypeID: uuid.New()}},
		{name: "blank title", input: CreateProductInput{SKU: "SKU-1", Title: "  ", Price: 1, ProductTypeID: uuid.New()}},
		{name: "negative price", input: CreateProductInput{SKU: "SKU-1", Title: "x", Price: -5, ProductTypeID: uuid.New()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, storeID, tc.input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateProductRejectsNonSellerStore(t *testing.T) {
	buyer := &models.Store{ID: uuid.New(), Type: enums.StoreTypeBuyer, Name: "Buyer Co", IsActive: true}
	svc := mustService(t, &fakeStoreLoader{store: buyer})

	_, err := svc.CreateProduct(context.Background(), buyer.ID, CreateProductInput{
		SKU: "SKU-1", Title: "Widget", Price: 100, ProductTypeID: uuid.New(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for buyer store, got %v", err)
	}
}

func TestCreateProductRejectsDeactivatedStore(t *testing.T) {
	seller := &models.Store{ID: uuid.New(), Type: enums.StoreTypeSeller, Name: "Closed Co", IsActive: false}
	svc := mustService(t, &fakeStoreLoader{store: seller})

	_, err := svc.CreateProduct(context.Background(), seller.ID, CreateProductInput{
		SKU: "SKU-1", Title: "Widget", Price: 100, ProductTypeID: uuid.New(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for deactivated store, got %v", err)
	}
}

func TestCreateProductUnknownStore(t *testing.T) {
	svc := mustService(t, &fakeStoreLoader{err: gorm.ErrRecordNotFound})

	_, err := svc.CreateProduct(context.Background(), uuid.New(), CreateProductInput{
		SKU: "SKU-1", Title: "Widget", Price: 100, ProductTypeID: uuid.New(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateProductTypeValidation(t *testing.T) {
	svc := mustService(t, &fakeStoreLoader{})

	_, err := svc.CreateProductType(context.Background(), uuid.New(), "   ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func mustService(t *testing.T, loader storeLoader) Service {
	t.Helper()
	svc, err := NewService(&Repository{}, loader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type fakeStoreLoader struct {
	store *models.Store
	err   error
}

func (f *fakeStoreLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.store == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.store, nil
}
