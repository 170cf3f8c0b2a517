package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/internal/cart"
	"github.com/omarberrios/shopgrid-backend/internal/orders"
	"github.com/omarberrios/shopgrid-backend/internal/pricing"
	pkgcheckout "github.com/omarberrios/shopgrid-backend/pkg/checkout"
	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
	"github.com/omarberrios/shopgrid-backend/pkg/metrics"
	"github.com/omarberrios/shopgrid-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type storeDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Config carries the marketplace pricing constants.
type Config struct {
	FreeShippingThreshold int64
	BaseShippingFee       int64
}

// QuoteInput captures the buyer's chosen discount codes.
type QuoteInput struct {
	ShippingCode string
	SeasonalCode string
}

// QuoteResult is the non-binding priced preview of the active cart.
type QuoteResult struct {
	CartID  uuid.UUID       `json:"cart_id"`
	Pricing *pricing.Result `json:"pricing"`
}

// ExecuteResult is the committed checkout: the persisted per-store orders
// plus the diagnostics from the final pricing pass.
type ExecuteResult struct {
	Group       *models.CheckoutGroup `json:"group"`
	Diagnostics []pricing.Diagnostic  `json:"diagnostics,omitempty"`
}

// Service orchestrates checkout. Quote prices the cart without touching any
// state; Execute re-prices inside one transaction, consumes discount usage,
// and freezes the result into immutable orders.
type Service interface {
	Quote(ctx context.Context, buyerStoreID uuid.UUID, input QuoteInput) (*QuoteResult, error)
	Execute(ctx context.Context, buyerStoreID uuid.UUID, input QuoteInput) (*ExecuteResult, error)
}

type service struct {
	tx        txRunner
	cartRepo  cart.CartRepository
	orders    orders.Repository
	discounts DiscountStore
	stores    storeDirectory
	config    Config
	metrics   *metrics.CheckoutMetrics
	now       func() time.Time
}

// NewService builds the checkout service. Metrics may be nil.
func NewService(
	tx txRunner,
	cartRepo cart.CartRepository,
	ordersRepo orders.Repository,
	discountStore DiscountStore,
	storeDir storeDirectory,
	config Config,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if discountStore == nil {
		return nil, fmt.Errorf("discount store required")
	}
	if storeDir == nil {
		return nil, fmt.Errorf("store directory required")
	}
	if config.FreeShippingThreshold < 0 || config.BaseShippingFee < 0 {
		return nil, fmt.Errorf("shipping configuration must be non-negative")
	}
	return &service{
		tx:        tx,
		cartRepo:  cartRepo,
		orders:    ordersRepo,
		discounts: discountStore,
		stores:    storeDir,
		config:    config,
		metrics:   checkoutMetrics,
		now:       time.Now,
	}, nil
}

// Quote prices the buyer's active cart. Nothing is persisted and no usage is
// consumed, so a quote can be requested any number of times.
func (s *service) Quote(ctx context.Context, buyerStoreID uuid.UUID, input QuoteInput) (*QuoteResult, error) {
	started := s.now()
	defer func() {
		s.metrics.ObserveDuration("quote", s.now().Sub(started))
	}()

	if err := s.validateBuyerStore(ctx, buyerStoreID); err != nil {
		return nil, err
	}

	record, selected, err := s.loadCheckoutLines(ctx, s.cartRepo, buyerStoreID)
	if err != nil {
		return nil, err
	}

	result, err := s.price(ctx, s.discounts, selected, input, started)
	if err != nil {
		return nil, err
	}
	s.recordPricingMetrics(result)

	return &QuoteResult{CartID: record.ID, Pricing: result}, nil
}

// Execute commits the checkout. The cart is re-priced inside the transaction
// so the orders freeze exactly what was computed there, not what an earlier
// quote showed.
func (s *service) Execute(ctx context.Context, buyerStoreID uuid.UUID, input QuoteInput) (*ExecuteResult, error) {
	started := s.now()
	defer func() {
		s.metrics.ObserveDuration("execute", s.now().Sub(started))
	}()

	if err := s.validateBuyerStore(ctx, buyerStoreID); err != nil {
		return nil, err
	}

	var (
		groupID uuid.UUID
		priced  *pricing.Result
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)
		discountStore := s.discounts.WithTx(tx)

		record, selected, err := s.loadCheckoutLines(ctx, cartRepo, buyerStoreID)
		if err != nil {
			return err
		}

		priced, err = s.price(ctx, discountStore, selected, input, started)
		if err != nil {
			return err
		}

		if err := s.consumeAppliedUsage(ctx, discountStore, priced); err != nil {
			return err
		}

		group, err := ordersRepo.CreateCheckoutGroup(ctx, &models.CheckoutGroup{
			BuyerStoreID: buyerStoreID,
			CartID:       &record.ID,
		})
		if err != nil {
			return err
		}
		groupID = group.ID

		for _, gr := range priced.Groups {
			order, err := ordersRepo.CreateOrder(ctx, buildOrder(group.ID, buyerStoreID, gr))
			if err != nil {
				return err
			}
			if err := ordersRepo.CreateOrderItems(ctx, buildOrderItems(order.ID, gr.Items)); err != nil {
				return err
			}
		}

		return cartRepo.MarkConverted(ctx, record.ID, buyerStoreID, started)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute checkout")
	}

	s.recordPricingMetrics(priced)

	group, err := s.orders.FindCheckoutGroupByID(ctx, groupID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout group")
	}
	return &ExecuteResult{Group: group, Diagnostics: priced.Diagnostics}, nil
}

// loadCheckoutLines returns the active cart and its selected lines, after
// verifying every selected line is still purchasable.
func (s *service) loadCheckoutLines(ctx context.Context, cartRepo cart.CartRepository, buyerStoreID uuid.UUID) (*models.CartRecord, []models.CartItem, error) {
	record, err := cartRepo.FindActiveByBuyerStore(ctx, buyerStoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "active cart not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	selected := make([]models.CartItem, 0, len(record.Items))
	lines := make([]pkgcheckout.LineValidationInput, 0, len(record.Items))
	for _, item := range record.Items {
		if !item.Selected {
			continue
		}
		selected = append(selected, item)
		lines = append(lines, pkgcheckout.LineValidationInput{
			ProductID:    item.ProductID,
			ProductTitle: item.Title,
			Status:       item.Status,
			Quantity:     item.Quantity,
		})
	}
	if len(selected) == 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "no items selected for checkout")
	}
	if err := pkgcheckout.ValidateLines(lines); err != nil {
		return nil, nil, err
	}
	return record, selected, nil
}

func (s *service) price(ctx context.Context, discountStore DiscountStore, selected []models.CartItem, input QuoteInput, now time.Time) (*pricing.Result, error) {
	catalog, err := discountStore.ListCatalog(ctx, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount catalog")
	}

	storeIDs := make([]uuid.UUID, 0, len(selected))
	seen := map[uuid.UUID]struct{}{}
	for _, item := range selected {
		if _, ok := seen[item.StoreID]; ok {
			continue
		}
		seen[item.StoreID] = struct{}{}
		storeIDs = append(storeIDs, item.StoreID)
	}
	names, err := s.stores.FindNamesByIDs(ctx, storeIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve store names")
	}

	return pricing.Price(selected, catalog, pricing.Selections{
		ShippingCode: input.ShippingCode,
		SeasonalCode: input.SeasonalCode,
	}, names, pricing.Params{
		FreeShippingThreshold: s.config.FreeShippingThreshold,
		BaseShippingFee:       s.config.BaseShippingFee,
		Now:                   now,
	})
}

// consumeAppliedUsage increments usage once per distinct applied discount. A
// seasonal code applied to several store groups in one checkout counts as a
// single use.
func (s *service) consumeAppliedUsage(ctx context.Context, discountStore DiscountStore, result *pricing.Result) error {
	consumed := map[uuid.UUID]struct{}{}
	for _, gr := range result.Groups {
		for _, applied := range []*pricing.AppliedDiscount{gr.Shipping, gr.Seasonal, gr.Special} {
			if applied == nil {
				continue
			}
			if _, ok := consumed[applied.DiscountID]; ok {
				continue
			}
			consumed[applied.DiscountID] = struct{}{}

			ok, err := discountStore.ConsumeUsage(ctx, applied.DiscountID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume discount usage")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("discount %s is no longer available", applied.Code))
			}
		}
	}
	return nil
}

func (s *service) validateBuyerStore(ctx context.Context, buyerStoreID uuid.UUID) error {
	if buyerStoreID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer store id is required")
	}
	store, err := s.stores.FindByID(ctx, buyerStoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.Type != enums.StoreTypeBuyer {
		return pkgerrors.New(pkgerrors.CodeForbidden, "active store must be a buyer")
	}
	if !store.IsActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "buyer store is deactivated")
	}
	return nil
}

func (s *service) recordPricingMetrics(result *pricing.Result) {
	if result == nil {
		return
	}
	for _, gr := range result.Groups {
		if gr.Shipping != nil {
			s.metrics.IncApplied(enums.DiscountCategoryShipping.String())
		}
		if gr.Seasonal != nil {
			s.metrics.IncApplied(enums.DiscountCategorySeasonal.String())
		}
		if gr.Special != nil {
			s.metrics.IncApplied(enums.DiscountCategorySpecial.String())
		}
		if gr.Anomaly {
			s.metrics.IncAnomaly()
		}
	}
	for _, diag := range result.Diagnostics {
		s.metrics.IncRejected(string(diag.Reason))
	}
}

func buildOrder(groupID, buyerStoreID uuid.UUID, gr pricing.GroupResult) *models.Order {
	return &models.Order{
		CheckoutGroupID:  groupID,
		BuyerStoreID:     buyerStoreID,
		StoreID:          gr.StoreID,
		StoreName:        gr.StoreName,
		Status:           enums.OrderStatusPending,
		Subtotal:         gr.Subtotal,
		ShippingFee:      gr.ShippingFee,
		ShippingDiscount: gr.ShippingDiscount,
		TotalDiscount:    gr.TotalDiscount,
		Total:            gr.Total,
		Anomaly:          gr.Anomaly,
		ShippingPromo:    promoSnapshot(gr.Shipping),
		SeasonalPromo:    promoSnapshot(gr.Seasonal),
		SpecialPromo:     promoSnapshot(gr.Special),
	}
}

func buildOrderItems(orderID uuid.UUID, items []models.CartItem) []models.OrderItem {
	result := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		result = append(result, models.OrderItem{
			OrderID:       orderID,
			ProductID:     item.ProductID,
			ProductTypeID: item.ProductTypeID,
			Title:         item.Title,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			LineSubtotal:  item.UnitPrice * int64(item.Quantity),
		})
	}
	return result
}

func promoSnapshot(applied *pricing.AppliedDiscount) *types.AppliedDiscount {
	if applied == nil {
		return nil
	}
	return &types.AppliedDiscount{
		DiscountID: applied.DiscountID,
		Code:       applied.Code,
		Name:       applied.Name,
		Amount:     applied.Amount,
	}
}
