package store

import (
	"errors"

	"restaurant-booking-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the production database: Postgres when a connection string is
// configured, a local SQLite file otherwise.
func Connect(databaseURL, sqlitePath string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if databaseURL != "" {
		return gorm.Open(postgres.Open(databaseURL), cfg)
	}
	return gorm.Open(sqlite.Open(sqlitePath), cfg)
}

// Migrate auto-migrates all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Booking{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
}

// NewGorm builds the gorm-backed Store.
func NewGorm(db *gorm.DB) *Store {
	return &Store{
		Users:       &gormUserStore{db: db},
		Restaurants: &gormRestaurantStore{db: db},
		MenuItems:   &gormMenuItemStore{db: db},
		Bookings:    &gormBookingStore{db: db},
		Orders:      &gormOrderStore{db: db},
		Reviews:     &gormReviewStore{db: db},
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ── Users ───────────────────────────────────────────────────────────────────

type gormUserStore struct{ db *gorm.DB }

func (s *gormUserStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *gormUserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUserStore) favoriteIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Table("user_favorites").
		Where("user_id = ?", userID).
		Pluck("restaurant_id", &ids).Error
	return ids, err
}

func (s *gormUserStore) AddFavorite(userID, restaurantID uint) ([]uint, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, translate(err)
	}
	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		return nil, translate(err)
	}
	ids, err := s.favoriteIDs(userID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == restaurantID {
			return ids, nil
		}
	}
	if err := s.db.Model(&user).Association("Favorites").Append(&restaurant); err != nil {
		return nil, err
	}
	return append(ids, restaurantID), nil
}

func (s *gormUserStore) RemoveFavorite(userID, restaurantID uint) ([]uint, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, translate(err)
	}
	err := s.db.Model(&user).
		Association("Favorites").
		Delete(&models.Restaurant{ID: restaurantID})
	if err != nil {
		return nil, err
	}
	return s.favoriteIDs(userID)
}

func (s *gormUserStore) ListFavorites(userID uint) ([]models.Restaurant, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, translate(err)
	}
	restaurants := []models.Restaurant{}
	if err := s.db.Model(&user).Association("Favorites").Find(&restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// ── Restaurants ─────────────────────────────────────────────────────────────

type gormRestaurantStore struct{ db *gorm.DB }

func (s *gormRestaurantStore) Create(restaurant *models.Restaurant) error {
	return s.db.Create(restaurant).Error
}

func (s *gormRestaurantStore) FindByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.Preload("MenuItems").First(&restaurant, id).Error; err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

func (s *gormRestaurantStore) List(filter RestaurantFilter) ([]models.Restaurant, error) {
	query := s.db.Model(&models.Restaurant{})
	if filter.Cuisine != "" {
		// cuisine is stored as a JSON array, so filter with a substring match
		query = query.Where("cuisine LIKE ?", "%"+filter.Cuisine+"%")
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	restaurants := []models.Restaurant{}
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// ── Menu items ──────────────────────────────────────────────────────────────

type gormMenuItemStore struct{ db *gorm.DB }

func (s *gormMenuItemStore) Create(item *models.MenuItem) error {
	return s.db.Create(item).Error
}

func (s *gormMenuItemStore) FindByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *gormMenuItemStore) ListByRestaurant(restaurantID uint) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if err := s.db.Where("restaurant_id = ?", restaurantID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *gormMenuItemStore) Update(id uint, fields map[string]any) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	if len(fields) > 0 {
		if err := s.db.Model(&item).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &item, nil
}

func (s *gormMenuItemStore) Delete(id uint) error {
	result := s.db.Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Bookings ────────────────────────────────────────────────────────────────

type gormBookingStore struct{ db *gorm.DB }

func (s *gormBookingStore) Create(booking *models.Booking) error {
	return s.db.Create(booking).Error
}

func (s *gormBookingStore) FindByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Restaurant").First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (s *gormBookingStore) ListByUser(userID uint) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := s.db.Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("booking_date desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *gormBookingStore) ListByStatus(status models.BookingStatus) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := s.db.Preload("Restaurant").
		Where("status = ?", status).
		Order("booking_date desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *gormBookingStore) Update(id uint, fields map[string]any) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	if len(fields) > 0 {
		if err := s.db.Model(&booking).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.FindByID(id)
}

// ── Orders ──────────────────────────────────────────────────────────────────

type gormOrderStore struct{ db *gorm.DB }

func (s *gormOrderStore) Create(order *models.Order) error {
	return s.db.Create(order).Error
}

func (s *gormOrderStore) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Restaurant").First(&order, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *gormOrderStore) ListByUser(userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.Preload("Items").Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *gormOrderStore) Update(id uint, fields map[string]any) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	if len(fields) > 0 {
		if err := s.db.Model(&order).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.FindByID(id)
}

// ── Reviews ─────────────────────────────────────────────────────────────────

type gormReviewStore struct{ db *gorm.DB }

func (s *gormReviewStore) Create(review *models.Review) error {
	if err := s.db.Create(review).Error; err != nil {
		return err
	}
	return s.db.Preload("User").First(review, review.ID).Error
}

func (s *gormReviewStore) FindByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (s *gormReviewStore) ListByRestaurant(restaurantID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *gormReviewStore) Delete(id uint) error {
	result := s.db.Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
