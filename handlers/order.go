package handlers

import (
	"errors"
	"net/http"
	"time"

	"restaurant-booking-api/lifecycle"
	"restaurant-booking-api/middleware"
	"restaurant-booking-api/models"
	"restaurant-booking-api/store"

	"github.com/gin-gonic/gin"
)

type OrderItemRequest struct {
	MenuItemID uint     `json:"menu_item_id" binding:"required"`
	Quantity   int      `json:"quantity" binding:"required,min=1"`
	Price      *float64 `json:"price"`
}

type CreateOrderRequest struct {
	RestaurantID uint               `json:"restaurant_id" binding:"required"`
	BookingID    *uint              `json:"booking_id"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	BookingID *uint `json:"booking_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder places an order. The total is the sum of price×quantity frozen
// at creation time; the price is the caller's quoted price when supplied,
// otherwise the current menu price.
func (h *Handler) CreateOrder(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant ID and items are required", "code": "VALIDATION_ERROR"})
		return
	}
	if _, err := h.store.Restaurants.FindByID(req.RestaurantID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found", "code": "RESTAURANT_NOT_FOUND"})
		return
	}

	var items []models.OrderItem
	var total float64
	for _, reqItem := range req.Items {
		price := 0.0
		if reqItem.Price != nil {
			price = *reqItem.Price
		} else {
			menuItem, err := h.store.MenuItems.FindByID(reqItem.MenuItemID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found", "code": "MENU_ITEM_NOT_FOUND"})
				return
			}
			price = menuItem.Price
		}
		total += price * float64(reqItem.Quantity)
		items = append(items, models.OrderItem{
			MenuItemID: reqItem.MenuItemID,
			Quantity:   reqItem.Quantity,
			Price:      price,
		})
	}

	order := models.Order{
		UserID:       identity.UserID,
		RestaurantID: req.RestaurantID,
		BookingID:    req.BookingID,
		Items:        items,
		TotalAmount:  total,
		Status:       models.OrderPending,
		OrderDate:    time.Now(),
	}
	if err := h.store.Orders.Create(&order); err != nil {
		h.serverError(c, err, "Failed to create order", "ORDER_ERROR")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetMyOrders lists the caller's orders, newest order date first.
func (h *Handler) GetMyOrders(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	orders, err := h.store.Orders.ListByUser(identity.UserID)
	if err != nil {
		h.serverError(c, err, "Failed to fetch orders", "ORDER_ERROR")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) orderForCaller(c *gin.Context, id uint) (*models.Order, bool) {
	identity, _ := middleware.CallerIdentity(c)
	order, err := h.store.Orders.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found", "code": "ORDER_NOT_FOUND"})
			return nil, false
		}
		h.serverError(c, err, "Failed to fetch order", "ORDER_ERROR")
		return nil, false
	}
	if order.UserID != identity.UserID && identity.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you", "code": "NOT_ORDER_OWNER"})
		return nil, false
	}
	return order, true
}

// GetOrder returns an order by id. Only the order's owner or an admin may
// read it.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, ok := h.orderForCaller(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder applies a partial update. The total amount is never recomputed
// after creation.
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}
	if _, ok := h.orderForCaller(c, id); !ok {
		return
	}

	fields := map[string]any{}
	if req.BookingID != nil {
		fields["booking_id"] = *req.BookingID
	}
	order, err := h.store.Orders.Update(id, fields)
	if err != nil {
		h.serverError(c, err, "Failed to update order", "ORDER_ERROR")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order through its lifecycle (admin only).
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required", "code": "VALIDATION_ERROR"})
		return
	}

	order, err := h.store.Orders.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found", "code": "ORDER_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to fetch order", "ORDER_ERROR")
		return
	}

	next := models.OrderStatus(req.Status)
	if err := lifecycle.CanTransitionOrder(order.Status, next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_STATUS"})
		return
	}

	updated, err := h.store.Orders.Update(id, map[string]any{"status": next})
	if err != nil {
		h.serverError(c, err, "Failed to update order status", "ORDER_ERROR")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelOrder sets the order status to cancelled. Idempotent like booking
// cancellation.
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, ok := h.orderForCaller(c, id)
	if !ok {
		return
	}
	if err := lifecycle.CanTransitionOrder(order.Status, models.OrderCancelled); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_STATUS"})
		return
	}

	updated, err := h.store.Orders.Update(id, map[string]any{"status": models.OrderCancelled})
	if err != nil {
		h.serverError(c, err, "Failed to cancel order", "ORDER_ERROR")
		return
	}
	c.JSON(http.StatusOK, updated)
}
