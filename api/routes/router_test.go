package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	cartsvc "github.com/omarberrios/shopgrid-backend/internal/cart"
	checkoutsvc "github.com/omarberrios/shopgrid-backend/internal/checkout"
	discountssvc "github.com/omarberrios/shopgrid-backend/internal/discounts"
	orderssvc "github.com/omarberrios/shopgrid-backend/internal/orders"
	productssvc "github.com/omarberrios/shopgrid-backend/internal/products"
	storessvc "github.com/omarberrios/shopgrid-backend/internal/stores"
	"github.com/omarberrios/shopgrid-backend/pkg/config"
	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	"github.com/omarberrios/shopgrid-backend/pkg/logger"
	"github.com/omarberrios/shopgrid-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubStoreService struct{}

func (stubStoreService) Create(ctx context.Context, input storessvc.CreateStoreInput) (*storessvc.StoreDTO, error) {
	return &storessvc.StoreDTO{ID: uuid.New(), Type: input.Type, Name: input.Name, IsActive: true}, nil
}

func (stubStoreService) GetByID(ctx context.Context, id uuid.UUID) (*storessvc.StoreDTO, error) {
	return &storessvc.StoreDTO{ID: id, Type: enums.StoreTypeBuyer, Name: "Stub Store", IsActive: true}, nil
}

func (stubStoreService) ListSellers(ctx context.Context) ([]storessvc.StoreDTO, error) {
	return nil, nil
}

func (stubStoreService) Update(ctx context.Context, storeID uuid.UUID, input storessvc.UpdateStoreInput) (*storessvc.StoreDTO, error) {
	panic("unimplemented")
}

func (stubStoreService) Deactivate(ctx context.Context, storeID uuid.UUID) error {
	panic("unimplemented")
}

type stubProductService struct{}

func (stubProductService) CreateProduct(ctx context.Context, storeID uuid.UUID, input productssvc.CreateProductInput) (*productssvc.ProductDTO, error) {
	panic("unimplemented")
}

func (stubProductService) UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input productssvc.UpdateProductInput) (*productssvc.ProductDTO, error) {
	panic("unimplemented")
}

func (stubProductService) DeactivateProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	panic("unimplemented")
}

func (stubProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*productssvc.ProductDTO, *productssvc.SellerSummary, error) {
	panic("unimplemented")
}

func (stubProductService) ListProducts(ctx context.Context, input productssvc.ListProductsInput) (*productssvc.ProductListResult, error) {
	return &productssvc.ProductListResult{}, nil
}

func (stubProductService) CreateProductType(ctx context.Context, storeID uuid.UUID, name string) (*productssvc.ProductTypeDTO, error) {
	panic("unimplemented")
}

func (stubProductService) ListProductTypes(ctx context.Context, storeID uuid.UUID) ([]productssvc.ProductTypeDTO, error) {
	panic("unimplemented")
}

type stubCartService struct{}

func (stubCartService) GetActiveCart(ctx context.Context, buyerStoreID uuid.UUID) (*models.CartRecord, error) {
	return &models.CartRecord{ID: uuid.New(), BuyerStoreID: buyerStoreID, Status: enums.CartStatusActive}, nil
}

func (stubCartService) AddItem(ctx context.Context, buyerStoreID uuid.UUID, input cartsvc.AddItemInput) (*models.CartRecord, error) {
	panic("unimplemented")
}

func (stubCartService) UpdateQuantity(ctx context.Context, buyerStoreID, itemID uuid.UUID, quantity int) (*models.CartRecord, error) {
	panic("unimplemented")
}

func (stubCartService) RemoveItem(ctx context.Context, buyerStoreID, itemID uuid.UUID) (*models.CartRecord, error) {
	panic("unimplemented")
}

func (stubCartService) SetSelected(ctx context.Context, buyerStoreID, itemID uuid.UUID, selected bool) (*models.CartRecord, error) {
	panic("unimplemented")
}

type stubCheckoutService struct{}

func (stubCheckoutService) Quote(ctx context.Context, buyerStoreID uuid.UUID, input checkoutsvc.QuoteInput) (*checkoutsvc.QuoteResult, error) {
	panic("unimplemented")
}

func (stubCheckoutService) Execute(ctx context.Context, buyerStoreID uuid.UUID, input checkoutsvc.QuoteInput) (*checkoutsvc.ExecuteResult, error) {
	panic("unimplemented")
}

type stubDiscountService struct{}

func (stubDiscountService) Create(ctx context.Context, input discountssvc.CreateDiscountInput) (*discountssvc.DiscountDTO, error) {
	panic("unimplemented")
}

func (stubDiscountService) GetByCode(ctx context.Context, code string) (*discountssvc.DiscountDTO, error) {
	panic("unimplemented")
}

func (stubDiscountService) List(ctx context.Context, createdByStoreID *uuid.UUID) ([]discountssvc.DiscountDTO, error) {
	return nil, nil
}

func (stubDiscountService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*discountssvc.DiscountDTO, error) {
	panic("unimplemented")
}

type stubOrderService struct{}

func (stubOrderService) ListBuyerOrders(ctx context.Context, buyerStoreID uuid.UUID, params pagination.Params, filters orderssvc.OrderFilters) (*orderssvc.OrderList, error) {
	return &orderssvc.OrderList{}, nil
}

func (stubOrderService) ListStoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params, filters orderssvc.OrderFilters) (*orderssvc.OrderList, error) {
	panic("unimplemented")
}

func (stubOrderService) GetOrder(ctx context.Context, requesterStoreID, orderID uuid.UUID) (*orderssvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrderService) GetCheckoutGroup(ctx context.Context, buyerStoreID, groupID uuid.UUID) ([]orderssvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrderService) UpdateStatus(ctx context.Context, actorStoreID, orderID uuid.UUID, status enums.OrderStatus) (*orderssvc.OrderDTO, error) {
	panic("unimplemented")
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "router-test"})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		nil,
		stubStoreService{},
		stubProductService{},
		stubCartService{},
		stubCheckoutService{},
		stubDiscountService{},
		stubOrderService{},
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-ShopGrid-Env"); got != "test" {
		t.Fatalf("expected env header test got %q", got)
	}
}

func TestPublicPing(t *testing.T) {
	router := newTestRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/public/ping", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestStorefrontBrowseNeedsNoStoreHeader(t *testing.T) {
	router := newTestRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestGuardedRoutesRejectMissingStoreHeader(t *testing.T) {
	router := newTestRouter(t)
	paths := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/cart", ""},
		{http.MethodPost, "/api/v1/checkout", `{}`},
		{http.MethodGet, "/api/v1/orders/purchases", ""},
		{http.MethodGet, "/api/v1/stores/me", ""},
	}
	for _, tc := range paths {
		var req *http.Request
		if tc.body != "" {
			req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		} else {
			req = httptest.NewRequest(tc.method, tc.path, nil)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403 got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestGuardedRouteAcceptsStoreHeader(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Store-ID", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload.Data.Status != string(enums.CartStatusActive) {
		t.Fatalf("expected active cart got %q", payload.Data.Status)
	}
}

func TestMalformedStoreHeaderIsIgnored(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Store-ID", "not-a-uuid")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestOrderListAcceptsFilters(t *testing.T) {
	router := newTestRouter(t)
	target := "/api/v1/orders/purchases?status=pending&limit=10&date_from=" + time.Now().UTC().Add(-24*time.Hour).Format(time.RFC3339)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("X-Store-ID", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
