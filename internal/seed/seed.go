package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/config"
	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	"github.com/PollinateIQ/dineup-backend/pkg/logger"
	"github.com/PollinateIQ/dineup-backend/pkg/security"
)

// Seeder loads a demo restaurant with users, a menu, and tables. Running it
// twice is safe: existing rows are left alone, keyed by their natural
// identifiers.
type Seeder struct {
	db          *gorm.DB
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

// New constructs a seeder bound to the provided DB.
func New(db *gorm.DB, passwordCfg config.PasswordConfig, logg *logger.Logger) (*Seeder, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Seeder{db: db, passwordCfg: passwordCfg, logg: logg}, nil
}

// Run seeds the demo tenant inside one transaction.
func (s *Seeder) Run(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restaurant, err := s.ensureRestaurant(ctx, tx)
		if err != nil {
			return err
		}
		if err := s.ensureUsers(ctx, tx, restaurant.ID); err != nil {
			return err
		}
		if err := s.ensureMenu(ctx, tx, restaurant.ID); err != nil {
			return err
		}
		return s.ensureTables(ctx, tx, restaurant.ID)
	})
}

func (s *Seeder) ensureRestaurant(ctx context.Context, tx *gorm.DB) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := tx.First(&restaurant, "identifier = ?", "demo-bistro").Error
	if err == nil {
		return &restaurant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	restaurant = models.Restaurant{
		ID:          uuid.New(),
		Name:        "Demo Bistro",
		Address:     "1 Harbour Road",
		ContactInfo: "hello@demobistro.test",
		Identifier:  "demo-bistro",
		Cuisines:    pq.StringArray{"bistro", "seafood"},
	}
	if err := tx.Create(&restaurant).Error; err != nil {
		return nil, err
	}
	s.logg.Info(ctx, "seeded demo restaurant")
	return &restaurant, nil
}

func (s *Seeder) ensureUsers(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) error {
	seedUsers := []struct {
		name     string
		email    string
		password string
		role     enums.UserRole
		tenant   *uuid.UUID
	}{
		{"Platform Admin", "admin@demobistro.test", "admin-password", enums.UserRoleAdmin, nil},
		{"Floor Staff", "staff@demobistro.test", "staff-password", enums.UserRoleStaff, &restaurantID},
		{"Demo Customer", "customer@demobistro.test", "customer-password", enums.UserRoleCustomer, &restaurantID},
	}

	for _, candidate := range seedUsers {
		var existing models.User
		err := tx.First(&existing, "email = ?", candidate.email).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := security.HashPassword(candidate.password, s.passwordCfg)
		if err != nil {
			return err
		}
		user := models.User{
			ID:           uuid.New(),
			RestaurantID: candidate.tenant,
			Name:         candidate.name,
			Email:        candidate.email,
			PasswordHash: hash,
			Role:         candidate.role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
	}
	s.logg.Info(ctx, "seeded demo users")
	return nil
}

func (s *Seeder) ensureMenu(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) error {
	menu := map[string][]struct {
		name  string
		price string
	}{
		"Starters": {
			{"Mussel Pot", "85.00"},
			{"Calamari Strips", "72.50"},
		},
		"Mains": {
			{"Linefish of the Day", "165.00"},
			{"Bistro Burger", "120.00"},
		},
		"Drinks": {
			{"House Lemonade", "38.00"},
		},
	}

	for categoryName, items := range menu {
		category, err := s.ensureCategory(tx, restaurantID, categoryName)
		if err != nil {
			return err
		}
		for _, entry := range items {
			var existing models.MenuItem
			err := tx.First(&existing, "restaurant_id = ? AND name = ?", restaurantID, entry.name).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			price, err := decimal.NewFromString(entry.price)
			if err != nil {
				return err
			}
			item := models.MenuItem{
				ID:           uuid.New(),
				RestaurantID: restaurantID,
				CategoryID:   category.ID,
				Name:         entry.name,
				Price:        price,
				Availability: true,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
	}
	s.logg.Info(ctx, "seeded demo menu")
	return nil
}

func (s *Seeder) ensureCategory(tx *gorm.DB, restaurantID uuid.UUID, name string) (*models.Category, error) {
	var category models.Category
	err := tx.First(&category, "restaurant_id = ? AND name = ?", restaurantID, name).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	category = models.Category{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
	}
	if err := tx.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Seeder) ensureTables(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) error {
	for i := 1; i <= 6; i++ {
		number := fmt.Sprintf("T%d", i)
		var existing models.Table
		err := tx.First(&existing, "restaurant_id = ? AND table_number = ?", restaurantID, number).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		table := models.Table{
			ID:              uuid.New(),
			RestaurantID:    restaurantID,
			TableNumber:     number,
			SeatingCapacity: 4,
		}
		if err := tx.Create(&table).Error; err != nil {
			return err
		}
	}
	s.logg.Info(ctx, "seeded demo tables")
	return nil
}
