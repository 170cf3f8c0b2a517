package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	product "github.com/omarberrios/shopgrid-backend/internal/products"
	"github.com/omarberrios/shopgrid-backend/internal/stores"
	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
)

// maxLineQuantity bounds a single cart line.
const maxLineQuantity = 999

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type storeLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*stores.StoreDTO, error)
}

type productLoader interface {
	GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, *product.SellerSummary, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

// AddItemInput is the payload to add a product to the active cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// Service exposes buyer cart operations. Carts hold price snapshots only;
// discounts and totals are resolved at checkout.
type Service interface {
	GetActiveCart(ctx context.Context, buyerStoreID uuid.UUID) (*models.CartRecord, error)
	AddItem(ctx context.Context, buyerStoreID uuid.UUID, input AddItemInput) (*models.CartRecord, error)
	UpdateQuantity(ctx context.Context, buyerStoreID, itemID uuid.UUID, quantity int) (*models.CartRecord, error)
	RemoveItem(ctx context.Context, buyerStoreID, itemID uuid.UUID) (*models.CartRecord, error)
	SetSelected(ctx context.Context, buyerStoreID, itemID uuid.UUID, selected bool) (*models.CartRecord, error)
}

type service struct {
	repo     CartRepository
	tx       txRunner
	store    storeLoader
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, store storeLoader, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if store == nil {
		return nil, fmt.Errorf("store loader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, store: store, products: products}, nil
}

// GetActiveCart returns the buyer's active cart with line statuses refreshed
// against the live catalog. Lines whose product disappeared or went inactive
// are flagged, never silently dropped, so the buyer sees what went stale.
func (s *service) GetActiveCart(ctx context.Context, buyerStoreID uuid.UUID) (*models.CartRecord, error) {
	if err := s.validateBuyerStore(ctx, buyerStoreID); err != nil {
		return nil, err
	}

	record, err := s.repo.FindActiveByBuyerStore(ctx, buyerStoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "active cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	if err := s.refreshItemStatuses(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// AddItem snapshots the product's current title and price into the cart,
// creating the active cart when none exists. Adding a product already in the
// cart merges quantities on the existing line.
func (s *service) AddItem(ctx context.Context, buyerStoreID uuid.UUID, input AddItemInput) (*models.CartRecord, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	if err := s.validateBuyerStore(ctx, buyerStoreID); err != nil {
		return nil, err
	}

	prod, seller, err := s.products.GetProductDetail(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !prod.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is not available")
	}
	if seller == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product seller is not available")
	}

	var saved *models.CartRecord
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		record, err := txRepo.FindActiveByBuyerStore(ctx, buyerStoreID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			record, err = txRepo.Create(ctx, &models.CartRecord{
				BuyerStoreID: buyerStoreID,
				Status:       enums.CartStatusActive,
			})
			if err != nil {
				return err
			}
		}

		if existing := findItemByProduct(record, input.ProductID); existing != nil {
			merged := existing.Quantity + input.Quantity
			if merged > maxLineQuantity {
				merged = maxLineQuantity
			}
			existing.Quantity = merged
			existing.Status = enums.CartItemStatusOK
			if err := txRepo.UpdateItem(ctx, existing); err != nil {
				return err
			}
		} else {
			item := &models.CartItem{
				CartID:        record.ID,
				ProductID:     prod.ID,
				StoreID:       prod.StoreID,
				ProductTypeID: prod.ProductTypeID,
				Title:         prod.Title,
				UnitPrice:     prod.Price,
				Quantity:      input.Quantity,
				Selected:      true,
				Status:        enums.CartItemStatusOK,
			}
			if _, err := txRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}

		saved, err = txRepo.FindByIDAndBuyerStore(ctx, record.ID, buyerStoreID)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return saved, nil
}

// UpdateQuantity sets the quantity on an existing cart line.
func (s *service) UpdateQuantity(ctx context.Context, buyerStoreID, itemID uuid.UUID, quantity int) (*models.CartRecord, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	return s.mutateItem(ctx, buyerStoreID, itemID, func(repo CartRepository, record *models.CartRecord, item *models.CartItem) error {
		item.Quantity = quantity
		return repo.UpdateItem(ctx, item)
	})
}

// RemoveItem deletes a cart line.
func (s *service) RemoveItem(ctx context.Context, buyerStoreID, itemID uuid.UUID) (*models.CartRecord, error) {
	return s.mutateItem(ctx, buyerStoreID, itemID, func(repo CartRepository, record *models.CartRecord, item *models.CartItem) error {
		return repo.DeleteItem(ctx, record.ID, item.ID)
	})
}

// SetSelected marks whether a cart line takes part in the next checkout.
func (s *service) SetSelected(ctx context.Context, buyerStoreID, itemID uuid.UUID, selected bool) (*models.CartRecord, error) {
	return s.mutateItem(ctx, buyerStoreID, itemID, func(repo CartRepository, record *models.CartRecord, item *models.CartItem) error {
		item.Selected = selected
		return repo.UpdateItem(ctx, item)
	})
}

func (s *service) mutateItem(ctx context.Context, buyerStoreID, itemID uuid.UUID, mutate func(repo CartRepository, record *models.CartRecord, item *models.CartItem) error) (*models.CartRecord, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required")
	}
	if err := s.validateBuyerStore(ctx, buyerStoreID); err != nil {
		return nil, err
	}

	var saved *models.CartRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		record, err := txRepo.FindActiveByBuyerStore(ctx, buyerStoreID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "active cart not found")
			}
			return err
		}

		item := findItemByID(record, itemID)
		if item == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}

		if err := mutate(txRepo, record, item); err != nil {
			return err
		}

		saved, err = txRepo.FindByIDAndBuyerStore(ctx, record.ID, buyerStoreID)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return saved, nil
}

func (s *service) validateBuyerStore(ctx context.Context, buyerStoreID uuid.UUID) error {
	if buyerStoreID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer store id is required")
	}
	store, err := s.store.GetByID(ctx, buyerStoreID)
	if err != nil {
		return err
	}
	if store.Type != enums.StoreTypeBuyer {
		return pkgerrors.New(pkgerrors.CodeForbidden, "active store must be a buyer")
	}
	if !store.IsActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "buyer store is deactivated")
	}
	return nil
}

// refreshItemStatuses reconciles line statuses with the current catalog and
// persists only the lines whose status changed.
func (s *service) refreshItemStatuses(ctx context.Context, record *models.CartRecord) error {
	if len(record.Items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(record.Items))
	for i := range record.Items {
		ids = append(ids, record.Items[i].ProductID)
	}
	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
	}

	var changed []*models.CartItem
	for i := range record.Items {
		item := &record.Items[i]
		status := statusFor(item, catalog)
		if status != item.Status {
			item.Status = status
			changed = append(changed, item)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, item := range changed {
			if err := txRepo.UpdateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh cart items")
	}
	return nil
}

func statusFor(item *models.CartItem, catalog map[uuid.UUID]models.Product) enums.CartItemStatus {
	prod, ok := catalog[item.ProductID]
	if !ok || !prod.IsActive {
		return enums.CartItemStatusNotAvailable
	}
	if item.Quantity < 1 {
		return enums.CartItemStatusInvalid
	}
	return enums.CartItemStatusOK
}

func findItemByProduct(record *models.CartRecord, productID uuid.UUID) *models.CartItem {
	for i := range record.Items {
		if record.Items[i].ProductID == productID {
			return &record.Items[i]
		}
	}
	return nil
}

func findItemByID(record *models.CartRecord, itemID uuid.UUID) *models.CartItem {
	for i := range record.Items {
		if record.Items[i].ID == itemID {
			return &record.Items[i]
		}
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if quantity > maxLineQuantity {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds the per-line limit")
	}
	return nil
}
