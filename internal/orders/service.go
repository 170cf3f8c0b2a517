package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/internal/stores"
	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
	"github.com/omarberrios/shopgrid-backend/pkg/pagination"
)

type storeLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*stores.StoreDTO, error)
}

// Service exposes post-checkout order operations. Orders are immutable money
// records; only their status moves.
type Service interface {
	ListBuyerOrders(ctx context.Context, buyerStoreID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
	ListStoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
	GetOrder(ctx context.Context, requesterStoreID, orderID uuid.UUID) (*OrderDTO, error)
	GetCheckoutGroup(ctx context.Context, buyerStoreID, groupID uuid.UUID) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, actorStoreID, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
}

type service struct {
	repo  Repository
	store storeLoader
}

// NewService builds an order service with the provided dependencies.
func NewService(repo Repository, store storeLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("store loader required")
	}
	return &service{repo: repo, store: store}, nil
}

func (s *service) ListBuyerOrders(ctx context.Context, buyerStoreID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	if err := s.ensureStoreType(ctx, buyerStoreID, enums.StoreTypeBuyer); err != nil {
		return nil, err
	}
	list, err := s.repo.ListBuyerOrders(ctx, buyerStoreID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list buyer orders")
	}
	return list, nil
}

func (s *service) ListStoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	if err := s.ensureStoreType(ctx, storeID, enums.StoreTypeSeller); err != nil {
		return nil, err
	}
	list, err := s.repo.ListStoreOrders(ctx, storeID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store orders")
	}
	return list, nil
}

// GetOrder loads an order for either of its two parties. A store that is
// neither the buyer nor the seller gets not-found rather than forbidden so
// order ids do not leak ownership.
func (s *service) GetOrder(ctx context.Context, requesterStoreID, orderID uuid.UUID) (*OrderDTO, error) {
	if requesterStoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerStoreID != requesterStoreID && order.StoreID != requesterStoreID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return FromModel(order), nil
}

// GetCheckoutGroup returns all per-store orders created by one checkout.
func (s *service) GetCheckoutGroup(ctx context.Context, buyerStoreID, groupID uuid.UUID) ([]OrderDTO, error) {
	if buyerStoreID == uuid.Nil || groupID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id and checkout group id are required")
	}
	group, err := s.repo.FindCheckoutGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout group")
	}
	if group.BuyerStoreID != buyerStoreID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout group not found")
	}
	dtos := make([]OrderDTO, 0, len(group.Orders))
	for i := range group.Orders {
		dtos = append(dtos, *FromModel(&group.Orders[i]))
	}
	return dtos, nil
}

// UpdateStatus advances an order through its lifecycle. The seller moves
// pending->confirmed->shipped, the buyer acknowledges shipped->delivered, and
// either party may cancel while the order is still pending.
func (s *service) UpdateStatus(ctx context.Context, actorStoreID, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if actorStoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerStoreID != actorStoreID && order.StoreID != actorStoreID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	if err := validateTransition(order, actorStoreID, status); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	order.Status = status
	return FromModel(order), nil
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) ensureStoreType(ctx context.Context, storeID uuid.UUID, wanted enums.StoreType) error {
	if storeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	store, err := s.store.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store.Type != wanted {
		return pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("active store must be a %s", wanted))
	}
	return nil
}

func validateTransition(order *models.Order, actorStoreID uuid.UUID, target enums.OrderStatus) error {
	actorIsSeller := actorStoreID == order.StoreID
	actorIsBuyer := actorStoreID == order.BuyerStoreID

	allowed := false
	switch target {
	case enums.OrderStatusConfirmed:
		allowed = order.Status == enums.OrderStatusPending && actorIsSeller
	case enums.OrderStatusShipped:
		allowed = order.Status == enums.OrderStatusConfirmed && actorIsSeller
	case enums.OrderStatusDelivered:
		allowed = order.Status == enums.OrderStatusShipped && actorIsBuyer
	case enums.OrderStatusCancelled:
		allowed = order.Status == enums.OrderStatusPending && (actorIsSeller || actorIsBuyer)
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot move order from %s to %s", order.Status, target))
	}
	return nil
}
