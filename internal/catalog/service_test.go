package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
)

type stubCatalogRepo struct {
	menuItem *models.MenuItem
	category *models.Category

	listedAvailableOnly *bool
	createdItem         *models.MenuItem
	createdTable        *models.Table
	findItemErr         error
	findCategoryErr     error
	tableErr            error
}

func (s *stubCatalogRepo) WithTx(*gorm.DB) CatalogRepository { return s }

func (s *stubCatalogRepo) CreateMenuItem(_ context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	item.ID = uuid.New()
	s.createdItem = item
	return item, nil
}

func (s *stubCatalogRepo) UpdateMenuItem(_ context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	return item, nil
}

func (s *stubCatalogRepo) FindMenuItem(_ context.Context, _ uuid.UUID) (*models.MenuItem, error) {
	if s.findItemErr != nil {
		return nil, s.findItemErr
	}
	return s.menuItem, nil
}

func (s *stubCatalogRepo) ListMenuItems(_ context.Context, _ uuid.UUID, availableOnly bool) ([]models.MenuItem, error) {
	s.listedAvailableOnly = &availableOnly
	if s.menuItem == nil {
		return nil, nil
	}
	return []models.MenuItem{*s.menuItem}, nil
}

func (s *stubCatalogRepo) DeleteMenuItem(_ context.Context, _ uuid.UUID) error { return nil }

func (s *stubCatalogRepo) CreateCategory(_ context.Context, category *models.Category) (*models.Category, error) {
	category.ID = uuid.New()
	return category, nil
}

func (s *stubCatalogRepo) FindCategory(_ context.Context, _ uuid.UUID) (*models.Category, error) {
	if s.findCategoryErr != nil {
		return nil, s.findCategoryErr
	}
	return s.category, nil
}

func (s *stubCatalogRepo) ListCategories(_ context.Context, _ uuid.UUID) ([]models.Category, error) {
	if s.category == nil {
		return nil, nil
	}
	return []models.Category{*s.category}, nil
}

func (s *stubCatalogRepo) DeleteCategory(_ context.Context, _ uuid.UUID) error { return nil }

func (s *stubCatalogRepo) CreateTable(_ context.Context, table *models.Table) (*models.Table, error) {
	if s.tableErr != nil {
		return nil, s.tableErr
	}
	table.ID = uuid.New()
	s.createdTable = table
	return table, nil
}

func (s *stubCatalogRepo) ListTables(_ context.Context, _ uuid.UUID) ([]models.Table, error) {
	return nil, nil
}

func (s *stubCatalogRepo) DeleteTable(_ context.Context, _ uuid.UUID) error { return nil }

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestListAvailableMenuItemsFiltersServerSide(t *testing.T) {
	repo := &stubCatalogRepo{}
	svc, _ := NewService(repo)

	if _, err := svc.ListAvailableMenuItems(context.Background(), uuid.New()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listedAvailableOnly == nil || !*repo.listedAvailableOnly {
		t.Fatal("expected availability filter to be pushed to the repository")
	}

	if _, err := svc.ListAllMenuItems(context.Background(), uuid.New()); err != nil {
		t.Fatalf("list all: %v", err)
	}
	if *repo.listedAvailableOnly {
		t.Fatal("admin list must not filter by availability")
	}
}

func TestListAvailableMenuItemsRequiresRestaurant(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{})

	_, err := svc.ListAvailableMenuItems(context.Background(), uuid.Nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateMenuItemRejectsNegativePrice(t *testing.T) {
	restaurantID := uuid.New()
	repo := &stubCatalogRepo{category: &models.Category{ID: uuid.New(), RestaurantID: restaurantID}}
	svc, _ := NewService(repo)

	_, err := svc.CreateMenuItem(context.Background(), MenuItemInput{
		RestaurantID: restaurantID,
		CategoryID:   repo.category.ID,
		Name:         "Bobotie",
		Price:        decimal.NewFromFloat(-1.50),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateMenuItemDefaultsAvailability(t *testing.T) {
	restaurantID := uuid.New()
	repo := &stubCatalogRepo{category: &models.Category{ID: uuid.New(), RestaurantID: restaurantID}}
	svc, _ := NewService(repo)

	created, err := svc.CreateMenuItem(context.Background(), MenuItemInput{
		RestaurantID: restaurantID,
		CategoryID:   repo.category.ID,
		Name:         "Bobotie",
		Price:        decimal.NewFromFloat(89.50),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.Availability {
		t.Fatal("new items should default to available")
	}
	if !created.Price.Equal(decimal.NewFromFloat(89.50)) {
		t.Fatalf("unexpected price %s", created.Price)
	}
}

func TestCreateMenuItemCrossTenantCategory(t *testing.T) {
	repo := &stubCatalogRepo{category: &models.Category{ID: uuid.New(), RestaurantID: uuid.New()}}
	svc, _ := NewService(repo)

	_, err := svc.CreateMenuItem(context.Background(), MenuItemInput{
		RestaurantID: uuid.New(),
		CategoryID:   repo.category.ID,
		Name:         "Bobotie",
		Price:        decimal.NewFromInt(10),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for cross-tenant category, got %v", err)
	}
}

func TestCreateMenuItemCategoryNotFound(t *testing.T) {
	repo := &stubCatalogRepo{findCategoryErr: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo)

	_, err := svc.CreateMenuItem(context.Background(), MenuItemInput{
		RestaurantID: uuid.New(),
		CategoryID:   uuid.New(),
		Name:         "Bobotie",
		Price:        decimal.NewFromInt(10),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateMenuItemPriceValidation(t *testing.T) {
	item := &models.MenuItem{ID: uuid.New(), RestaurantID: uuid.New(), Name: "Bobotie", Price: decimal.NewFromInt(10)}
	repo := &stubCatalogRepo{menuItem: item}
	svc, _ := NewService(repo)

	negative := decimal.NewFromInt(-5)
	_, err := svc.UpdateMenuItem(context.Background(), item.ID, MenuItemUpdateInput{Price: &negative})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	newPrice := decimal.NewFromFloat(12.50)
	updated, err := svc.UpdateMenuItem(context.Background(), item.ID, MenuItemUpdateInput{Price: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Fatalf("expected price %s, got %s", newPrice, updated.Price)
	}
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	repo := &stubCatalogRepo{findItemErr: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo)

	_, err := svc.UpdateMenuItem(context.Background(), uuid.New(), MenuItemUpdateInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateTableValidation(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{})

	_, err := svc.CreateTable(context.Background(), TableInput{
		RestaurantID:    uuid.New(),
		TableNumber:     "T1",
		SeatingCapacity: 0,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateCategoryRequiresName(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{})

	_, err := svc.CreateCategory(context.Background(), CategoryInput{RestaurantID: uuid.New(), Name: "  "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
