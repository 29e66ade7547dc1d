// Package client is a Go client for the restaurant booking API. It owns the
// session token: Login stores it, Logout discards it, and every request
// presents it as a bearer credential. Expiry is the server's concern — a
// request after expiry fails with an APIError carrying the TOKEN_EXPIRED
// code, at which point the caller re-authenticates.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"restaurant-booking-api/models"
)

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
	user  *AuthUser
}

// AuthUser is the public user view returned by register and login.
type AuthUser struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// APIError is a non-2xx response decoded into the server's error shape.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// ── Session ─────────────────────────────────────────────────────────────────

// Register creates an account. It does not log in.
func (c *Client) Register(name, email, password, phone string) (*AuthUser, error) {
	var resp struct {
		User AuthUser `json:"user"`
	}
	err := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"phone":    phone,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and stores the session token for subsequent calls.
func (c *Client) Login(email, password string) (*AuthUser, error) {
	var resp struct {
		Token string   `json:"token"`
		User  AuthUser `json:"user"`
	}
	err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.token = resp.Token
	user := resp.User
	c.user = &user
	c.mu.Unlock()
	return &resp.User, nil
}

// Logout discards the session token.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.user = nil
	c.mu.Unlock()
}

// CurrentUser returns the identity from the last successful login, if any.
func (c *Client) CurrentUser() (AuthUser, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return AuthUser{}, false
	}
	return *c.user, true
}

// Profile fetches the caller's full user record from the server.
func (c *Client) Profile() (*models.User, error) {
	var user models.User
	if err := c.do(http.MethodGet, "/api/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ── Restaurants & menu ──────────────────────────────────────────────────────

type RestaurantInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description,omitempty"`
	Address      string              `json:"address,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	Email        string              `json:"email,omitempty"`
	Cuisine      []string            `json:"cuisine,omitempty"`
	OpeningHours models.OpeningHours `json:"opening_hours,omitempty"`
	TotalTables  int                 `json:"total_tables,omitempty"`
}

func (c *Client) ListRestaurants(cuisine, search string) ([]models.Restaurant, error) {
	query := url.Values{}
	if cuisine != "" {
		query.Set("cuisine", cuisine)
	}
	if search != "" {
		query.Set("search", search)
	}
	path := "/api/restaurants"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var restaurants []models.Restaurant
	if err := c.do(http.MethodGet, path, nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *Client) GetRestaurant(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := c.do(http.MethodGet, "/api/restaurants/"+itoa(id), nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (c *Client) CreateRestaurant(input RestaurantInput) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := c.do(http.MethodPost, "/api/restaurants", input, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

type MenuItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

func (c *Client) GetMenu(restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.do(http.MethodGet, "/api/menu/"+itoa(restaurantID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddMenuItem(restaurantID uint, input MenuItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(http.MethodPost, "/api/menu/"+itoa(restaurantID), input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteMenuItem(id uint) error {
	return c.do(http.MethodDelete, "/api/menu/"+itoa(id), nil, nil)
}

// ── Favorites ───────────────────────────────────────────────────────────────

func (c *Client) AddFavorite(restaurantID uint) ([]uint, error) {
	var ids []uint
	if err := c.do(http.MethodPost, "/api/auth/favorites/"+itoa(restaurantID), nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) RemoveFavorite(restaurantID uint) ([]uint, error) {
	var ids []uint
	if err := c.do(http.MethodDelete, "/api/auth/favorites/"+itoa(restaurantID), nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) ListFavorites() ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := c.do(http.MethodGet, "/api/auth/favorites", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// ── Bookings ────────────────────────────────────────────────────────────────

type BookingInput struct {
	RestaurantID    uint      `json:"restaurant_id"`
	BookingDate     time.Time `json:"booking_date"`
	NumberOfGuests  int       `json:"number_of_guests"`
	SpecialRequests string    `json:"special_requests,omitempty"`
}

func (c *Client) CreateBooking(input BookingInput) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(http.MethodPost, "/api/bookings", input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) MyBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.do(http.MethodGet, "/api/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) GetBooking(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(http.MethodGet, "/api/bookings/"+itoa(id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CancelBooking(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(http.MethodDelete, "/api/bookings/"+itoa(id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ── Orders ──────────────────────────────────────────────────────────────────

type OrderItemInput struct {
	MenuItemID uint     `json:"menu_item_id"`
	Quantity   int      `json:"quantity"`
	Price      *float64 `json:"price,omitempty"`
}

type OrderInput struct {
	RestaurantID uint             `json:"restaurant_id"`
	BookingID    *uint            `json:"booking_id,omitempty"`
	Items        []OrderItemInput `json:"items"`
}

func (c *Client) CreateOrder(input OrderInput) (*models.Order, error) {
	var order models.Order
	if err := c.do(http.MethodPost, "/api/orders", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) MyOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := c.do(http.MethodGet, "/api/orders/"+itoa(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := c.do(http.MethodDelete, "/api/orders/"+itoa(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ── Reviews ─────────────────────────────────────────────────────────────────

type ReviewInput struct {
	RestaurantID uint   `json:"restaurant_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
}

func (c *Client) CreateReview(input ReviewInput) (*models.Review, error) {
	var review models.Review
	if err := c.do(http.MethodPost, "/api/reviews", input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) GetReviews(restaurantID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.do(http.MethodGet, "/api/reviews/"+itoa(restaurantID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) DeleteReview(id uint) error {
	return c.do(http.MethodDelete, "/api/reviews/"+itoa(id), nil, nil)
}

// ── Misc ────────────────────────────────────────────────────────────────────

// Health pings the server.
func (c *Client) Health() error {
	return c.do(http.MethodGet, "/health", nil, nil)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
