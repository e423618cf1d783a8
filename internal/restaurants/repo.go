package restaurants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	"github.com/PollinateIQ/dineup-backend/pkg/pagination"
)

// RestaurantRepository defines the persistence surface required by the service.
type RestaurantRepository interface {
	WithTx(tx *gorm.DB) RestaurantRepository
	Create(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	FindByIdentifier(ctx context.Context, identifier string) (*models.Restaurant, error)
	List(ctx context.Context, page pagination.Params) ([]models.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository is the gorm-backed implementation.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a restaurant repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) RestaurantRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new restaurant.
func (r *Repository) Create(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error) {
	if restaurant.ID == uuid.Nil {
		restaurant.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(restaurant).Error; err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Update saves the provided restaurant.
func (r *Repository) Update(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error) {
	if err := r.db.WithContext(ctx).Save(restaurant).Error; err != nil {
		return nil, err
	}
	return restaurant, nil
}

// FindByID loads a restaurant by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FindByIdentifier loads a restaurant by its public identifier.
func (r *Repository) FindByIdentifier(ctx context.Context, identifier string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "identifier = ?", identifier).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// List returns restaurants ordered by creation time.
func (r *Repository) List(ctx context.Context, page pagination.Params) ([]models.Restaurant, error) {
	page = pagination.Normalize(page)
	var rows []models.Restaurant
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes a restaurant. Dependents cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Restaurant{}, "id = ?", id).Error
}
