package handlers

import (
	"errors"
	"net/http"

	"restaurant-booking-api/models"
	"restaurant-booking-api/store"

	"github.com/gin-gonic/gin"
)

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	IsAvailable *bool   `json:"is_available"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"is_available"`
}

// GetMenu returns the menu for a restaurant. Unknown restaurants yield an
// empty list.
func (h *Handler) GetMenu(c *gin.Context) {
	restaurantID, ok := parseID(c, "restaurantId")
	if !ok {
		return
	}
	items, err := h.store.MenuItems.ListByRestaurant(restaurantID)
	if err != nil {
		h.serverError(c, err, "Failed to fetch menu", "MENU_ERROR")
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddMenuItem adds an item to a restaurant's menu (owner or admin).
func (h *Handler) AddMenuItem(c *gin.Context) {
	restaurantID, ok := parseID(c, "restaurantId")
	if !ok {
		return
	}
	if _, err := h.store.Restaurants.FindByID(restaurantID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found", "code": "RESTAURANT_NOT_FOUND"})
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurantID,
		Name:         sanitize(req.Name),
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if err := h.store.MenuItems.Create(&item); err != nil {
		h.serverError(c, err, "Failed to add menu item", "MENU_ERROR")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem applies a partial update to a menu item (owner or admin).
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = sanitize(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.IsAvailable != nil {
		fields["is_available"] = *req.IsAvailable
	}

	item, err := h.store.MenuItems.Update(id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found", "code": "MENU_ITEM_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to update menu item", "MENU_ERROR")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem physically removes a menu item (owner or admin).
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.MenuItems.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found", "code": "MENU_ITEM_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to delete menu item", "MENU_ERROR")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
