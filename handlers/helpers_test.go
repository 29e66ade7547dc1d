package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"restaurant-booking-api/config"
	"restaurant-booking-api/handlers"
	"restaurant-booking-api/middleware"
	"restaurant-booking-api/models"
	"restaurant-booking-api/routes"
	"restaurant-booking-api/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig uses the cheapest bcrypt cost and rate limits high enough that
// tests never trip them.
func testConfig() *config.Config {
	return &config.Config{
		Port:                "8080",
		GoEnv:               "test",
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Hour,
		BcryptCost:          bcrypt.MinCost,
		AllowedOrigins:      []string{"http://localhost:3000"},
		RateLimitWindow:     time.Minute,
		RateLimitMax:        10000,
		RateLimitAuthWindow: time.Minute,
		RateLimitAuthMax:    10000,
		MaxBodyBytes:        1 << 20,
	}
}

type testEnv struct {
	router *gin.Engine
	store  *store.Store
	cfg    *config.Config
}

func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	st := store.NewMemory()
	router := gin.New()
	routes.SetupRoutes(router, handlers.New(st, cfg), cfg)
	return &testEnv{router: router, store: st, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// errorCode pulls the reason code out of an error response body.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	decode(t, w, &body)
	return body.Code
}

// seedUser creates an account directly in the store, bypassing the
// registration endpoint so that owner and admin roles can be provisioned.
// The password is always "Password1".
func (e *testEnv) seedUser(t *testing.T, email string, role models.UserRole) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:         "Test " + string(role),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, e.store.Users.Create(user))
	token, err := middleware.GenerateToken(user, []byte(e.cfg.JWTSecret), e.cfg.JWTExpiry)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) seedRestaurant(t *testing.T, name string, cuisine ...string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{Name: name, Cuisine: cuisine, TotalTables: 10}
	require.NoError(t, e.store.Restaurants.Create(restaurant))
	return restaurant
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (e *testEnv) seedMenuItem(t *testing.T, restaurantID uint, name string, price float64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{RestaurantID: restaurantID, Name: name, Price: price, IsAvailable: true}
	require.NoError(t, e.store.MenuItems.Create(item))
	return item
}
