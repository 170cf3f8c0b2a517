package product

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

func mustCreateTestStore(t *testing.T, tx *gorm.DB, storeType enums.StoreType) *models.Store {
	t.Helper()
	store := &models.Store{
		ID:       uuid.New(),
		Type:     storeType,
		Name:     fmt.Sprintf("Repo Store %s", uuid.NewString()[:8]),
		IsActive: true,
	}
	if err := tx.Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func mustCreateTestProductType(t *testing.T, tx *gorm.DB, storeID uuid.UUID) *models.ProductType {
	t.Helper()
	pt := &models.ProductType{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    "General",
	}
	if err := tx.Create(pt).Error; err != nil {
		t.Fatalf("create product type: %v", err)
	}
	return pt
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, storeID, productTypeID uuid.UUID, price int64, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:            uuid.New(),
		StoreID:       storeID,
		ProductTypeID: productTypeID,
		SKU:           fmt.Sprintf("SKU-%s", uuid.NewString()),
		Title:         "Test Product",
		Price:         price,
		IsActive:      active,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
