package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
	"github.com/omarberrios/shopgrid-backend/pkg/enums"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateValidatesInput(t *testing.T) {
	svc, err := NewService(&stubStoreRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateStoreInput{Type: enums.StoreTypeSeller, Name: "   "})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank name, got %v", gotErr)
	}

	_, gotErr = svc.Create(context.Background(), CreateStoreInput{Type: enums.StoreType("warehouse"), Name: "Acme"})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad type, got %v", gotErr)
	}

	badEmail := "not-an-email"
	_, gotErr = svc.Create(context.Background(), CreateStoreInput{Type: enums.StoreTypeBuyer, Name: "Acme", Email: &badEmail})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad email, got %v", gotErr)
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	repo := &stubStoreRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateStoreInput{Type: enums.StoreTypeSeller, Name: "  Alpha Goods  "})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if dto.Name != "Alpha Goods" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if !dto.IsActive {
		t.Fatal("new stores should start active")
	}
}

func TestServiceGetByIDSuccess(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetByID(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	if dto.ID != store.ID {
		t.Fatalf("expected id %s got %s", store.ID, dto.ID)
	}
	if dto.Name != store.Name {
		t.Fatalf("expected name %s got %s", store.Name, dto.Name)
	}
	if dto.Phone == nil || *dto.Phone != *store.Phone {
		t.Fatalf("expected phone %q got %v", *store.Phone, dto.Phone)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	repo := &stubStoreRepo{err: gorm.ErrRecordNotFound}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceGetByIDDependencyError(t *testing.T) {
	repo := &stubStoreRepo{err: errors.New("boom")}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}

func TestServiceUpdateSuccess(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	newDescription := "wholesale goods"
	input := UpdateStoreInput{
		Name:        stringPtr("Updated Store"),
		Description: &newDescription,
	}

	dto, err := svc.Update(context.Background(), store.ID, input)
	if err != nil {
		t.Fatalf("update store: %v", err)
	}
	if dto.Name != "Updated Store" {
		t.Fatalf("expected name updated, got %s", dto.Name)
	}
	if dto.Description == nil || *dto.Description != newDescription {
		t.Fatalf("expected description %q got %v", newDescription, dto.Description)
	}
	if !repo.updated {
		t.Fatal("expected repository update call")
	}
}

func TestServiceUpdateRejectsBlankName(t *testing.T) {
	store := baseStore()
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Update(context.Background(), store.ID, UpdateStoreInput{Name: stringPtr("  ")})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceDeactivate(t *testing.T) {
	store := baseStore()
	repo := &stubStoreRepo{store: store}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.Deactivate(context.Background(), store.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if store.IsActive {
		t.Fatal("expected store deactivated")
	}

	gotErr := svc.Deactivate(context.Background(), store.ID)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on repeat deactivate, got %v", gotErr)
	}
}

type stubStoreRepo struct {
	store   *models.Store
	err     error
	updated bool
}

func (s *stubStoreRepo) Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	store := dto.ToModel()
	store.ID = uuid.New()
	s.store = store
	return store, nil
}

func (s *stubStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.store == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.store, nil
}

func (s *stubStoreRepo) ListByType(ctx context.Context, storeType enums.StoreType) ([]models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.store == nil || s.store.Type != storeType {
		return nil, nil
	}
	return []models.Store{*s.store}, nil
}

func (s *stubStoreRepo) Update(ctx context.Context, store *models.Store) error {
	if s.err != nil {
		return s.err
	}
	s.updated = true
	s.store = store
	return nil
}

func baseStore() *models.Store {
	phone := "555-0100"
	return &models.Store{
		ID:       uuid.New(),
		Type:     enums.StoreTypeSeller,
		Name:     "Alpha Goods",
		Phone:    &phone,
		IsActive: true,
	}
}

func stringPtr(v string) *string { return &v }
