package client_test

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-booking-api/client"
	"restaurant-booking-api/config"
	"restaurant-booking-api/handlers"
	"restaurant-booking-api/models"
	"restaurant-booking-api/routes"
	"restaurant-booking-api/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newServer spins up the real router over the in-memory store and returns a
// client pointed at it.
func newServer(t *testing.T) (*client.Client, *store.Store) {
	t.Helper()
	cfg := &config.Config{
		GoEnv:               "test",
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Hour,
		BcryptCost:          bcrypt.MinCost,
		RateLimitWindow:     time.Minute,
		RateLimitMax:        10000,
		RateLimitAuthWindow: time.Minute,
		RateLimitAuthMax:    10000,
		MaxBodyBytes:        1 << 20,
	}
	st := store.NewMemory()
	router := gin.New()
	routes.SetupRoutes(router, handlers.New(st, cfg), cfg)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return client.New(server.URL), st
}

func TestHealth(t *testing.T) {
	c, _ := newServer(t)
	assert.NoError(t, c.Health())
}

func TestSessionLifecycle(t *testing.T) {
	c, _ := newServer(t)

	registered, err := c.Register("Alice", "alice@example.com", "Password1", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, registered.Role)

	// registering does not log in
	_, ok := c.CurrentUser()
	assert.False(t, ok)
	_, err = c.Profile()
	require.Error(t, err)

	user, err := c.Login("alice@example.com", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	current, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, registered.ID, current.ID)

	profile, err := c.Profile()
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Empty(t, profile.PasswordHash, "password hash never crosses the wire")

	c.Logout()
	_, ok = c.CurrentUser()
	assert.False(t, ok)

	_, err = c.Profile()
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "NO_AUTH_TOKEN", apiErr.Code)
}

func TestLoginFailure(t *testing.T) {
	c, _ := newServer(t)

	_, err := c.Login("nobody@example.com", "Password1")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	assert.NotEmpty(t, apiErr.Error())
}

func TestBookingFlow(t *testing.T) {
	c, st := newServer(t)

	restaurant := &models.Restaurant{Name: "Trattoria", TotalTables: 10}
	require.NoError(t, st.Restaurants.Create(restaurant))

	_, err := c.Register("Alice", "alice@example.com", "Password1", "")
	require.NoError(t, err)
	_, err = c.Login("alice@example.com", "Password1")
	require.NoError(t, err)

	booking, err := c.CreateBooking(client.BookingInput{
		RestaurantID:   restaurant.ID,
		BookingDate:    time.Now().Add(48 * time.Hour),
		NumberOfGuests: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)

	bookings, err := c.MyBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	cancelled, err := c.CancelBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
}

func TestOrderFlow(t *testing.T) {
	c, st := newServer(t)

	restaurant := &models.Restaurant{Name: "Trattoria", TotalTables: 10}
	require.NoError(t, st.Restaurants.Create(restaurant))
	pizza := &models.MenuItem{RestaurantID: restaurant.ID, Name: "Margherita", Price: 12.50, IsAvailable: true}
	require.NoError(t, st.MenuItems.Create(pizza))

	_, err := c.Register("Alice", "alice@example.com", "Password1", "")
	require.NoError(t, err)
	_, err = c.Login("alice@example.com", "Password1")
	require.NoError(t, err)

	menu, err := c.GetMenu(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, menu, 1)

	order, err := c.CreateOrder(client.OrderInput{
		RestaurantID: restaurant.ID,
		Items: []client.OrderItemInput{
			{MenuItemID: pizza.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, order.TotalAmount)

	fetched, err := c.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)

	cancelled, err := c.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
}

func TestFavoritesAndReviews(t *testing.T) {
	c, st := newServer(t)

	restaurant := &models.Restaurant{Name: "Trattoria", TotalTables: 10}
	require.NoError(t, st.Restaurants.Create(restaurant))

	_, err := c.Register("Alice", "alice@example.com", "Password1", "")
	require.NoError(t, err)
	_, err = c.Login("alice@example.com", "Password1")
	require.NoError(t, err)

	ids, err := c.AddFavorite(restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{restaurant.ID}, ids)

	favorites, err := c.ListFavorites()
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Trattoria", favorites[0].Name)

	review, err := c.CreateReview(client.ReviewInput{
		RestaurantID: restaurant.ID,
		Rating:       5,
		Comment:      "Great",
	})
	require.NoError(t, err)

	reviews, err := c.GetReviews(restaurant.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	require.NoError(t, c.DeleteReview(review.ID))

	ids, err = c.RemoveFavorite(restaurant.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAPIErrorDecoding(t *testing.T) {
	c, _ := newServer(t)

	_, err := c.GetRestaurant(999)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "RESTAURANT_NOT_FOUND", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "RESTAURANT_NOT_FOUND")
}
