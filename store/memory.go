package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"restaurant-booking-api/models"
)

// NewMemory builds the in-memory Store. It exists for the test suite and is
// never selected in production wiring. Each logical table carries its own
// mutex so concurrent requests cannot corrupt the slices.
func NewMemory() *Store {
	menuItems := &memMenuItemStore{}
	restaurants := &memRestaurantStore{menuItems: menuItems}
	users := &memUserStore{favorites: map[uint][]uint{}, restaurants: restaurants}
	return &Store{
		Users:       users,
		Restaurants: restaurants,
		MenuItems:   menuItems,
		Bookings:    &memBookingStore{restaurants: restaurants},
		Orders:      &memOrderStore{restaurants: restaurants},
		Reviews:     &memReviewStore{users: users},
	}
}

// ── Users ───────────────────────────────────────────────────────────────────

type memUserStore struct {
	mu          sync.RWMutex
	seq         uint
	users       []models.User
	favorites   map[uint][]uint
	restaurants *memRestaurantStore
}

func (s *memUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	s.seq++
	user.ID = s.seq
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users = append(s.users, *user)
	return nil
}

func (s *memUserStore) FindByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUserStore) FindByID(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUserStore) AddFavorite(userID, restaurantID uint) ([]uint, error) {
	if _, err := s.FindByID(userID); err != nil {
		return nil, err
	}
	if _, err := s.restaurants.FindByID(restaurantID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.favorites[userID]
	for _, id := range ids {
		if id == restaurantID {
			return append([]uint{}, ids...), nil
		}
	}
	ids = append(ids, restaurantID)
	s.favorites[userID] = ids
	return append([]uint{}, ids...), nil
}

func (s *memUserStore) RemoveFavorite(userID, restaurantID uint) ([]uint, error) {
	if _, err := s.FindByID(userID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := []uint{}
	for _, id := range s.favorites[userID] {
		if id != restaurantID {
			kept = append(kept, id)
		}
	}
	s.favorites[userID] = kept
	return append([]uint{}, kept...), nil
}

func (s *memUserStore) ListFavorites(userID uint) ([]models.Restaurant, error) {
	if _, err := s.FindByID(userID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	ids := append([]uint{}, s.favorites[userID]...)
	s.mu.RUnlock()
	restaurants := []models.Restaurant{}
	for _, id := range ids {
		if r, err := s.restaurants.FindByID(id); err == nil {
			restaurants = append(restaurants, *r)
		}
	}
	return restaurants, nil
}

// ── Restaurants ─────────────────────────────────────────────────────────────

type memRestaurantStore struct {
	mu          sync.RWMutex
	seq         uint
	restaurants []models.Restaurant
	menuItems   *memMenuItemStore
}

func (s *memRestaurantStore) Create(restaurant *models.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	restaurant.ID = s.seq
	now := time.Now()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now
	s.restaurants = append(s.restaurants, *restaurant)
	return nil
}

func (s *memRestaurantStore) FindByID(id uint) (*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.restaurants {
		if r.ID == id {
			restaurant := r
			restaurant.MenuItems, _ = s.menuItems.ListByRestaurant(id)
			return &restaurant, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memRestaurantStore) List(filter RestaurantFilter) ([]models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := []models.Restaurant{}
	for _, r := range s.restaurants {
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(r.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Cuisine != "" && !cuisineMatches(r.Cuisine, filter.Cuisine) {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

func cuisineMatches(cuisines []string, want string) bool {
	for _, c := range cuisines {
		if strings.Contains(strings.ToLower(c), strings.ToLower(want)) {
			return true
		}
	}
	return false
}

// ── Menu items ──────────────────────────────────────────────────────────────

type memMenuItemStore struct {
	mu    sync.RWMutex
	seq   uint
	items []models.MenuItem
}

func (s *memMenuItemStore) Create(item *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	item.ID = s.seq
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items = append(s.items, *item)
	return nil
}

func (s *memMenuItemStore) FindByID(id uint) (*models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memMenuItemStore) ListByRestaurant(restaurantID uint) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := []models.MenuItem{}
	for _, it := range s.items {
		if it.RestaurantID == restaurantID {
			items = append(items, it)
		}
	}
	return items, nil
}

func (s *memMenuItemStore) Update(id uint, fields map[string]any) (*models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		item := &s.items[i]
		for key, value := range fields {
			switch key {
			case "name":
				item.Name = value.(string)
			case "description":
				item.Description = value.(string)
			case "category":
				item.Category = value.(string)
			case "price":
				item.Price = value.(float64)
			case "is_available":
				item.IsAvailable = value.(bool)
			}
		}
		item.UpdatedAt = time.Now()
		updated := *item
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (s *memMenuItemStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ── Bookings ────────────────────────────────────────────────────────────────

type memBookingStore struct {
	mu          sync.RWMutex
	seq         uint
	bookings    []models.Booking
	restaurants *memRestaurantStore
}

func (s *memBookingStore) Create(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	booking.ID = s.seq
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	stored := *booking
	stored.Restaurant = nil
	s.bookings = append(s.bookings, stored)
	return nil
}

func (s *memBookingStore) attach(b models.Booking) models.Booking {
	if r, err := s.restaurants.FindByID(b.RestaurantID); err == nil {
		b.Restaurant = r
	}
	return b
}

func (s *memBookingStore) FindByID(id uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			booking := s.attach(b)
			return &booking, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memBookingStore) ListByUser(userID uint) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := []models.Booking{}
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, s.attach(b))
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
	return bookings, nil
}

func (s *memBookingStore) ListByStatus(status models.BookingStatus) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := []models.Booking{}
	for _, b := range s.bookings {
		if b.Status == status {
			bookings = append(bookings, s.attach(b))
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
	return bookings, nil
}

func (s *memBookingStore) Update(id uint, fields map[string]any) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID != id {
			continue
		}
		booking := &s.bookings[i]
		for key, value := range fields {
			switch key {
			case "booking_date":
				booking.BookingDate = value.(time.Time)
			case "number_of_guests":
				booking.NumberOfGuests = value.(int)
			case "special_requests":
				booking.SpecialRequests = value.(string)
			case "status":
				booking.Status = toBookingStatus(value)
			}
		}
		booking.UpdatedAt = time.Now()
		updated := s.attach(*booking)
		return &updated, nil
	}
	return nil, ErrNotFound
}

func toBookingStatus(value any) models.BookingStatus {
	switch v := value.(type) {
	case models.BookingStatus:
		return v
	case string:
		return models.BookingStatus(v)
	}
	return ""
}

// ── Orders ──────────────────────────────────────────────────────────────────

type memOrderStore struct {
	mu          sync.RWMutex
	seq         uint
	itemSeq     uint
	orders      []models.Order
	restaurants *memRestaurantStore
}

func (s *memOrderStore) Create(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	order.ID = s.seq
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	now := time.Now()
	if order.OrderDate.IsZero() {
		order.OrderDate = now
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		s.itemSeq++
		order.Items[i].ID = s.itemSeq
		order.Items[i].OrderID = order.ID
	}
	stored := *order
	stored.Restaurant = nil
	stored.Items = append([]models.OrderItem{}, order.Items...)
	s.orders = append(s.orders, stored)
	return nil
}

func (s *memOrderStore) attach(o models.Order) models.Order {
	o.Items = append([]models.OrderItem{}, o.Items...)
	if r, err := s.restaurants.FindByID(o.RestaurantID); err == nil {
		o.Restaurant = r
	}
	return o
}

func (s *memOrderStore) FindByID(id uint) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			order := s.attach(o)
			return &order, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memOrderStore) ListByUser(userID uint) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, s.attach(o))
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

func (s *memOrderStore) Update(id uint, fields map[string]any) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		order := &s.orders[i]
		for key, value := range fields {
			switch key {
			case "status":
				order.Status = toOrderStatus(value)
			case "booking_id":
				switch v := value.(type) {
				case *uint:
					order.BookingID = v
				case uint:
					order.BookingID = &v
				}
			}
		}
		order.UpdatedAt = time.Now()
		updated := s.attach(*order)
		return &updated, nil
	}
	return nil, ErrNotFound
}

func toOrderStatus(value any) models.OrderStatus {
	switch v := value.(type) {
	case models.OrderStatus:
		return v
	case string:
		return models.OrderStatus(v)
	}
	return ""
}

// ── Reviews ─────────────────────────────────────────────────────────────────

type memReviewStore struct {
	mu      sync.RWMutex
	seq     uint
	reviews []models.Review
	users   *memUserStore
}

func (s *memReviewStore) Create(review *models.Review) error {
	s.mu.Lock()
	s.seq++
	review.ID = s.seq
	review.CreatedAt = time.Now()
	stored := *review
	stored.User = nil
	s.reviews = append(s.reviews, stored)
	s.mu.Unlock()
	if u, err := s.users.FindByID(review.UserID); err == nil {
		review.User = u
	}
	return nil
}

func (s *memReviewStore) FindByID(id uint) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reviews {
		if r.ID == id {
			review := r
			return &review, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memReviewStore) ListByRestaurant(restaurantID uint) ([]models.Review, error) {
	s.mu.RLock()
	matched := []models.Review{}
	for _, r := range s.reviews {
		if r.RestaurantID == restaurantID {
			matched = append(matched, r)
		}
	}
	s.mu.RUnlock()
	for i := range matched {
		if u, err := s.users.FindByID(matched[i].UserID); err == nil {
			matched[i].User = u
		}
	}
	// newest first; creation timestamps can collide, so fall back to id
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *memReviewStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
