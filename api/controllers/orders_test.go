package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	orderssvc "github.com/omarberrios/shopgrid-backend/internal/orders"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	"github.com/omarberrios/shopgrid-backend/pkg/pagination"
)

type stubOrderService struct {
	status  *enums.OrderStatus
	filters *orderssvc.OrderFilters
	params  *pagination.Params
}

func (s *stubOrderService) ListBuyerOrders(_ context.Context, _ uuid.UUID, params pagination.Params, filters orderssvc.OrderFilters) (*orderssvc.OrderList, error) {
	s.params = &params
	s.filters = &filters
	return &orderssvc.OrderList{}, nil
}

func (s *stubOrderService) ListStoreOrders(_ context.Context, _ uuid.UUID, params pagination.Params, filters orderssvc.OrderFilters) (*orderssvc.OrderList, error) {
	s.params = &params
	s.filters = &filters
	return &orderssvc.OrderList{}, nil
}

func (s *stubOrderService) GetOrder(_ context.Context, _, orderID uuid.UUID) (*orderssvc.OrderDTO, error) {
	return &orderssvc.OrderDTO{ID: orderID}, nil
}

func (s *stubOrderService) GetCheckoutGroup(context.Context, uuid.UUID, uuid.UUID) ([]orderssvc.OrderDTO, error) {
	return nil, nil
}

func (s *stubOrderService) UpdateStatus(_ context.Context, _, orderID uuid.UUID, status enums.OrderStatus) (*orderssvc.OrderDTO, error) {
	s.status = &status
	return &orderssvc.OrderDTO{ID: orderID, Status: status}, nil
}

func orderRequest(method, target, body string, orderID uuid.UUID) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rc := chi.NewRouteContext()
	rc.URLParams.Add("orderID", orderID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	return withStore(req, uuid.New())
}

func TestOrderPurchasesParsesFilters(t *testing.T) {
	svc := &stubOrderService{}
	handler := OrderPurchases(svc, nil)

	req := withStore(httptest.NewRequest(http.MethodGet, "/api/v1/orders/purchases?status=shipped&limit=10", nil), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.params == nil || svc.params.Limit != 10 {
		t.Fatalf("expected limit 10, got %+v", svc.params)
	}
	if svc.filters == nil || svc.filters.Status == nil || *svc.filters.Status != enums.OrderStatusShipped {
		t.Fatalf("expected shipped filter, got %+v", svc.filters)
	}
}

func TestOrderPurchasesRejectsUnknownStatus(t *testing.T) {
	handler := OrderPurchases(&stubOrderService{}, nil)

	req := withStore(httptest.NewRequest(http.MethodGet, "/api/v1/orders/purchases?status=refunded", nil), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrderStatusUpdate(t *testing.T) {
	svc := &stubOrderService{}
	handler := OrderStatusUpdate(svc, nil)

	resp := httptest.NewRecorder()
	handler(resp, orderRequest(http.MethodPatch, "/api/v1/orders/x/status", `{"status":"confirmed"}`, uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.status == nil || *svc.status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %+v", svc.status)
	}
}

func TestOrderStatusUpdateRejectsUnknownStatus(t *testing.T) {
	svc := &stubOrderService{}
	handler := OrderStatusUpdate(svc, nil)

	resp := httptest.NewRecorder()
	handler(resp, orderRequest(http.MethodPatch, "/api/v1/orders/x/status", `{"status":"archived"}`, uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.status != nil {
		t.Fatalf("service should not be called")
	}
}
