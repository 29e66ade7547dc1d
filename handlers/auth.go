package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"restaurant-booking-api/middleware"
	"restaurant-booking-api/models"
	"restaurant-booking-api/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// passwordStrong requires at least 8 characters, one uppercase letter and one
// digit.
func passwordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

// sanitize trims and bounds free-text input.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func publicUser(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

// Register creates a new user account. New accounts always get the plain
// user role; owners and admins are provisioned out of band.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": "INVALID_BODY"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and password are required", "code": "MISSING_FIELDS"})
		return
	}

	email := strings.ToLower(sanitize(req.Email))
	if !emailPattern.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format", "code": "INVALID_EMAIL"})
		return
	}
	if !passwordStrong(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters with uppercase letter and number", "code": "WEAK_PASSWORD"})
		return
	}

	if _, err := h.store.Users.FindByEmail(email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "code": "DUPLICATE_EMAIL"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.BcryptCost)
	if err != nil {
		h.serverError(c, err, "Registration failed", "REGISTRATION_ERROR")
		return
	}

	user := models.User{
		Name:         sanitize(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         models.RoleUser,
	}
	if err := h.store.Users.Create(&user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "code": "DUPLICATE_EMAIL"})
			return
		}
		h.serverError(c, err, "Registration failed", "REGISTRATION_ERROR")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    publicUser(&user),
	})
}

// Login authenticates a user and returns a JWT. Unknown email and wrong
// password answer identically to resist account enumeration.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": "INVALID_BODY"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required", "code": "MISSING_CREDENTIALS"})
		return
	}

	email := strings.ToLower(sanitize(req.Email))
	user, err := h.store.Users.FindByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "code": "INVALID_CREDENTIALS"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "code": "INVALID_CREDENTIALS"})
		return
	}

	token, err := middleware.GenerateToken(user, []byte(h.cfg.JWTSecret), h.cfg.JWTExpiry)
	if err != nil {
		h.serverError(c, err, "Login failed", "LOGIN_ERROR")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  publicUser(user),
	})
}

// GetProfile returns the authenticated user's record, password excluded.
func (h *Handler) GetProfile(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	user, err := h.store.Users.FindByID(identity.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "code": "USER_NOT_FOUND"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// AddFavorite saves a restaurant to the caller's favorites. Adding an
// already-present id is a no-op.
func (h *Handler) AddFavorite(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	restaurantID, ok := parseID(c, "restaurantId")
	if !ok {
		return
	}
	ids, err := h.store.Users.AddFavorite(identity.UserID, restaurantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User or restaurant not found", "code": "NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to add favorite", "FAVORITE_ERROR")
		return
	}
	c.JSON(http.StatusOK, ids)
}

// RemoveFavorite drops a restaurant from the caller's favorites. Removing an
// absent id returns the unchanged list.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	restaurantID, ok := parseID(c, "restaurantId")
	if !ok {
		return
	}
	ids, err := h.store.Users.RemoveFavorite(identity.UserID, restaurantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "code": "USER_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to remove favorite", "FAVORITE_ERROR")
		return
	}
	c.JSON(http.StatusOK, ids)
}

// GetFavorites resolves the caller's favorites to full restaurant records.
func (h *Handler) GetFavorites(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	restaurants, err := h.store.Users.ListFavorites(identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "code": "USER_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to fetch favorites", "FAVORITE_ERROR")
		return
	}
	c.JSON(http.StatusOK, restaurants)
}
