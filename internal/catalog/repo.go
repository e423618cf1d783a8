package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
)

// CatalogRepository defines the persistence surface required by the service.
type CatalogRepository interface {
	WithTx(tx *gorm.DB) CatalogRepository

	CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context, restaurantID uuid.UUID, availableOnly bool) ([]models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateTable(ctx context.Context, table *models.Table) (*models.Table, error)
	ListTables(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error)
	DeleteTable(ctx context.Context, id uuid.UUID) error
}

// Repository is the gorm-backed implementation.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CatalogRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateMenuItem inserts a new menu item.
func (r *Repository) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItem saves the provided menu item.
func (r *Repository) UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindMenuItem loads a menu item by primary key.
func (r *Repository) FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMenuItems returns menu items for a restaurant, optionally filtered to
// available ones. The availability filter is applied in SQL, never client-side.
func (r *Repository) ListMenuItems(ctx context.Context, restaurantID uuid.UUID, availableOnly bool) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC")
	if availableOnly {
		query = query.Where("availability = ?", true)
	}
	var rows []models.MenuItem
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindMenuItemsByIDs loads the menu items matching the provided ids. Missing
// ids are simply absent from the result; callers detect them by length.
func (r *Repository) FindMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.MenuItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteMenuItem removes a menu item.
func (r *Repository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id).Error
}

// CreateCategory inserts a new category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindCategory loads a category by primary key.
func (r *Repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns categories for a restaurant.
func (r *Repository) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteCategory removes a category.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

// CreateTable inserts a new table.
func (r *Repository) CreateTable(ctx context.Context, table *models.Table) (*models.Table, error) {
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(table).Error; err != nil {
		return nil, err
	}
	return table, nil
}

// ListTables returns tables for a restaurant.
func (r *Repository) ListTables(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error) {
	var rows []models.Table
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("table_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteTable removes a table.
func (r *Repository) DeleteTable(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Table{}, "id = ?", id).Error
}
