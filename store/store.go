package store

import (
	"errors"

	"restaurant-booking-api/models"
)

// Sentinel errors translated by handlers into HTTP error responses.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// RestaurantFilter narrows restaurant listings. Zero value matches everything.
type RestaurantFilter struct {
	Cuisine string // substring match against the cuisine set
	Search  string // substring match against the name
}

type UserStore interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	// AddFavorite and RemoveFavorite are idempotent and return the updated
	// favorite restaurant id list in insertion order.
	AddFavorite(userID, restaurantID uint) ([]uint, error)
	RemoveFavorite(userID, restaurantID uint) ([]uint, error)
	ListFavorites(userID uint) ([]models.Restaurant, error)
}

type RestaurantStore interface {
	Create(restaurant *models.Restaurant) error
	FindByID(id uint) (*models.Restaurant, error)
	List(filter RestaurantFilter) ([]models.Restaurant, error)
}

type MenuItemStore interface {
	Create(item *models.MenuItem) error
	FindByID(id uint) (*models.MenuItem, error)
	ListByRestaurant(restaurantID uint) ([]models.MenuItem, error)
	Update(id uint, fields map[string]any) (*models.MenuItem, error)
	Delete(id uint) error
}

type BookingStore interface {
	Create(booking *models.Booking) error
	FindByID(id uint) (*models.Booking, error)
	// ListByUser returns the user's bookings ordered newest booking date first.
	ListByUser(userID uint) ([]models.Booking, error)
	ListByStatus(status models.BookingStatus) ([]models.Booking, error)
	Update(id uint, fields map[string]any) (*models.Booking, error)
}

type OrderStore interface {
	Create(order *models.Order) error
	FindByID(id uint) (*models.Order, error)
	// ListByUser returns the user's orders ordered newest order date first.
	ListByUser(userID uint) ([]models.Order, error)
	Update(id uint, fields map[string]any) (*models.Order, error)
}

type ReviewStore interface {
	Create(review *models.Review) error
	FindByID(id uint) (*models.Review, error)
	// ListByRestaurant returns reviews ordered newest first.
	ListByRestaurant(restaurantID uint) ([]models.Review, error)
	Delete(id uint) error
}

// Store aggregates one backend's repositories. Exactly one implementation is
// chosen at startup and injected into the handlers.
type Store struct {
	Users       UserStore
	Restaurants RestaurantStore
	MenuItems   MenuItemStore
	Bookings    BookingStore
	Orders      OrderStore
	Reviews     ReviewStore
}
