package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"restaurant-booking-api/middleware"
	"restaurant-booking-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		body     map[string]any
		wantCode string
	}{
		{
			name:     "missing name",
			body:     map[string]any{"email": "a@b.com", "password": "Password1"},
			wantCode: "MISSING_FIELDS",
		},
		{
			name:     "missing email",
			body:     map[string]any{"name": "Alice", "password": "Password1"},
			wantCode: "MISSING_FIELDS",
		},
		{
			name:     "missing password",
			body:     map[string]any{"name": "Alice", "email": "a@b.com"},
			wantCode: "MISSING_FIELDS",
		},
		{
			name:     "invalid email",
			body:     map[string]any{"name": "Alice", "email": "not-an-email", "password": "Password1"},
			wantCode: "INVALID_EMAIL",
		},
		{
			name:     "email with spaces",
			body:     map[string]any{"name": "Alice", "email": "a b@c.com", "password": "Password1"},
			wantCode: "INVALID_EMAIL",
		},
		{
			name:     "password too short",
			body:     map[string]any{"name": "Alice", "email": "a@b.com", "password": "Pass1"},
			wantCode: "WEAK_PASSWORD",
		},
		{
			name:     "password without uppercase",
			body:     map[string]any{"name": "Alice", "email": "a@b.com", "password": "password1"},
			wantCode: "WEAK_PASSWORD",
		},
		{
			name:     "password without digit",
			body:     map[string]any{"name": "Alice", "email": "a@b.com", "password": "Passwordx"},
			wantCode: "WEAK_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(t, http.MethodPost, "/api/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Alice",
		"email":    "Alice@Example.com",
		"password": "Password1",
		"phone":    "555-0100",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Message string `json:"message"`
		User    struct {
			ID    uint   `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &body)
	assert.NotZero(t, body.User.ID)
	assert.Equal(t, "Alice", body.User.Name)
	assert.Equal(t, "alice@example.com", body.User.Email, "email is stored lowercased")
	assert.Equal(t, "user", body.User.Role)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "Password1")
}

func TestRegisterIgnoresRequestedRole(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Mallory",
		"email":    "mallory@example.com",
		"password": "Password1",
		"role":     "admin",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	user, err := env.store.Users.FindByEmail("mallory@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	first := map[string]any{"name": "Alice", "email": "alice@example.com", "password": "Password1"}
	w := env.request(t, http.MethodPost, "/api/auth/register", first, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// same address with different casing still conflicts
	second := map[string]any{"name": "Other", "email": "ALICE@example.com", "password": "Password2"}
	w = env.request(t, http.MethodPost, "/api/auth/register", second, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", errorCode(t, w))
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice@example.com", models.RoleUser)

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "Password1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &body)
	require.NotEmpty(t, body.Token)
	assert.Equal(t, "alice@example.com", body.User.Email)

	// the issued token works against a protected route
	w = env.request(t, http.MethodGet, "/api/auth/profile", nil, body.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.User
	decode(t, w, &profile)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestLoginResistsEnumeration(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice@example.com", models.RoleUser)

	unknown := env.request(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "Password1",
	}, "")
	wrongPassword := env.request(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "WrongPass1",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	// indistinguishable responses for unknown account vs bad password
	assert.Equal(t, unknown.Body.String(), wrongPassword.Body.String())
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, unknown))
}

func TestLoginMissingCredentials(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "alice@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_CREDENTIALS", errorCode(t, w))
}

func TestProtectedRouteTokenFailures(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.seedUser(t, "alice@example.com", models.RoleUser)

	expired, err := middleware.GenerateToken(user, []byte(env.cfg.JWTSecret), -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		wantCode string
	}{
		{"no token", "", "NO_AUTH_TOKEN"},
		{"garbage token", "not.a.jwt", "INVALID_TOKEN"},
		{"expired token", expired, "TOKEN_EXPIRED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(t, http.MethodGet, "/api/auth/profile", nil, tt.token)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestFavorites(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice@example.com", models.RoleUser)
	first := env.seedRestaurant(t, "First Place")
	second := env.seedRestaurant(t, "Second Place")

	w := env.request(t, http.MethodPost, "/api/auth/favorites/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var ids []uint
	decode(t, w, &ids)
	assert.Equal(t, []uint{first.ID}, ids)

	// adding the same restaurant again is a no-op
	w = env.request(t, http.MethodPost, "/api/auth/favorites/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ids)
	assert.Equal(t, []uint{first.ID}, ids)

	w = env.request(t, http.MethodPost, "/api/auth/favorites/2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ids)
	assert.Equal(t, []uint{first.ID, second.ID}, ids)

	w = env.request(t, http.MethodGet, "/api/auth/favorites", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var restaurants []models.Restaurant
	decode(t, w, &restaurants)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "First Place", restaurants[0].Name)

	w = env.request(t, http.MethodDelete, "/api/auth/favorites/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ids)
	assert.Equal(t, []uint{second.ID}, ids)

	// removing an absent id returns the unchanged list
	w = env.request(t, http.MethodDelete, "/api/auth/favorites/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ids)
	assert.Equal(t, []uint{second.ID}, ids)
}

func TestAddFavoriteUnknownRestaurant(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice@example.com", models.RoleUser)

	w := env.request(t, http.MethodPost, "/api/auth/favorites/999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
