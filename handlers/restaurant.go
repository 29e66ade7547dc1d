package handlers

import (
	"errors"
	"net/http"

	"restaurant-booking-api/models"
	"restaurant-booking-api/store"

	"github.com/gin-gonic/gin"
)

type CreateRestaurantRequest struct {
	Name         string              `json:"name" binding:"required"`
	Description  string              `json:"description"`
	Address      string              `json:"address"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email"`
	Cuisine      []string            `json:"cuisine"`
	OpeningHours models.OpeningHours `json:"opening_hours"`
	TotalTables  int                 `json:"total_tables"`
}

// ListRestaurants returns all restaurants, optionally filtered by cuisine or
// name search.
func (h *Handler) ListRestaurants(c *gin.Context) {
	filter := store.RestaurantFilter{
		Cuisine: c.Query("cuisine"),
		Search:  c.Query("search"),
	}
	restaurants, err := h.store.Restaurants.List(filter)
	if err != nil {
		h.serverError(c, err, "Failed to fetch restaurants", "RESTAURANT_ERROR")
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// GetRestaurant returns a single restaurant with its menu.
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.store.Restaurants.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found", "code": "RESTAURANT_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to fetch restaurant", "RESTAURANT_ERROR")
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// CreateRestaurant registers a new restaurant (owner or admin).
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	restaurant := models.Restaurant{
		Name:         sanitize(req.Name),
		Description:  req.Description,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		Cuisine:      req.Cuisine,
		OpeningHours: req.OpeningHours,
		TotalTables:  req.TotalTables,
	}
	if err := h.store.Restaurants.Create(&restaurant); err != nil {
		h.serverError(c, err, "Failed to create restaurant", "RESTAURANT_ERROR")
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}
