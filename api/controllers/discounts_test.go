package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	discountssvc "github.com/omarberrios/shopgrid-backend/internal/discounts"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
)

type stubDiscountService struct {
	created *discountssvc.CreateDiscountInput
	listBy  **uuid.UUID
	active  *bool
}

func (s *stubDiscountService) Create(_ context.Context, input discountssvc.CreateDiscountInput) (*discountssvc.DiscountDTO, error) {
	s.created = &input
	return &discountssvc.DiscountDTO{ID: uuid.New(), Code: input.Code, Category: input.Category}, nil
}

func (s *stubDiscountService) GetByCode(_ context.Context, code string) (*discountssvc.DiscountDTO, error) {
	return &discountssvc.DiscountDTO{ID: uuid.New(), Code: code}, nil
}

func (s *stubDiscountService) List(_ context.Context, createdByStoreID *uuid.UUID) ([]discountssvc.DiscountDTO, error) {
	s.listBy = &createdByStoreID
	return []discountssvc.DiscountDTO{}, nil
}

func (s *stubDiscountService) SetActive(_ context.Context, id uuid.UUID, active bool) (*discountssvc.DiscountDTO, error) {
	s.active = &active
	return &discountssvc.DiscountDTO{ID: id, IsActive: active}, nil
}

const discountBody = `{
	"code": "SUMMER20",
	"name": "Summer Sale",
	"category": "seasonal",
	"min_purchase": 100,
	"starts_at": "2026-06-01T00:00:00Z",
	"ends_at": "2026-09-01T00:00:00Z",
	"rate": "0.2",
	"max_discount_amount": 50
}`

func TestDiscountCreatePlatform(t *testing.T) {
	svc := &stubDiscountService{}
	handler := DiscountCreate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/discounts", strings.NewReader(discountBody))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.created == nil {
		t.Fatal("service not called")
	}
	if svc.created.CreatedByStoreID != nil {
		t.Fatalf("expected platform discount, got creator %s", svc.created.CreatedByStoreID)
	}
	if svc.created.Category != enums.DiscountCategorySeasonal {
		t.Fatalf("expected seasonal, got %s", svc.created.Category)
	}
}

func TestDiscountCreateSellerScoped(t *testing.T) {
	svc := &stubDiscountService{}
	handler := DiscountCreate(svc, nil)

	storeID := uuid.New()
	req := withStore(httptest.NewRequest(http.MethodPost, "/api/v1/discounts", strings.NewReader(discountBody)), storeID)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.created.CreatedByStoreID == nil || *svc.created.CreatedByStoreID != storeID {
		t.Fatalf("expected creator %s, got %v", storeID, svc.created.CreatedByStoreID)
	}
}

func TestDiscountCreateRejectsUnknownCategory(t *testing.T) {
	svc := &stubDiscountService{}
	handler := DiscountCreate(svc, nil)

	body := strings.Replace(discountBody, "seasonal", "loyalty", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/discounts", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.created != nil {
		t.Fatal("service should not be called")
	}
}

func TestDiscountListMine(t *testing.T) {
	svc := &stubDiscountService{}
	handler := DiscountList(svc, nil)

	storeID := uuid.New()
	req := withStore(httptest.NewRequest(http.MethodGet, "/api/v1/discounts?mine=true", nil), storeID)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.listBy == nil || *svc.listBy == nil || **svc.listBy != storeID {
		t.Fatalf("expected list scoped to %s", storeID)
	}
}

func TestDiscountListMineWithoutStoreContext(t *testing.T) {
	handler := DiscountList(&stubDiscountService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/discounts?mine=true", nil)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestDiscountGetByCode(t *testing.T) {
	handler := DiscountGet(&stubDiscountService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/discounts/SHIPFREE", nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("code", "SHIPFREE")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))

	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Code string `json:"code"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Code != "SHIPFREE" {
		t.Fatalf("expected code SHIPFREE, got %q", envelope.Data.Code)
	}
}

func TestDiscountSetActive(t *testing.T) {
	svc := &stubDiscountService{}
	handler := DiscountSetActive(svc, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/discounts/x/active", strings.NewReader(`{"active":false}`))
	rc := chi.NewRouteContext()
	rc.URLParams.Add("discountID", uuid.New().String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))

	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.active == nil || *svc.active {
		t.Fatalf("expected active=false, got %v", svc.active)
	}
}
