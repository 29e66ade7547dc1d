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

type CreateBookingRequest struct {
	RestaurantID    uint      `json:"restaurant_id" binding:"required"`
	BookingDate     time.Time `json:"booking_date" binding:"required"`
	NumberOfGuests  int       `json:"number_of_guests" binding:"required,gt=0"`
	SpecialRequests string    `json:"special_requests"`
}

type UpdateBookingRequest struct {
	BookingDate     *time.Time `json:"booking_date"`
	NumberOfGuests  *int       `json:"number_of_guests"`
	SpecialRequests *string    `json:"special_requests"`
	Status          *string    `json:"status"`
}

// CreateBooking reserves a table for the authenticated user.
func (h *Handler) CreateBooking(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "code": "VALIDATION_ERROR"})
		return
	}
	if _, err := h.store.Restaurants.FindByID(req.RestaurantID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found", "code": "RESTAURANT_NOT_FOUND"})
		return
	}

	booking := models.Booking{
		UserID:          identity.UserID,
		RestaurantID:    req.RestaurantID,
		BookingDate:     req.BookingDate,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
		Status:          models.BookingPending,
	}
	if err := h.store.Bookings.Create(&booking); err != nil {
		h.serverError(c, err, "Failed to create booking", "BOOKING_ERROR")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetMyBookings lists the caller's bookings, newest booking date first.
func (h *Handler) GetMyBookings(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	bookings, err := h.store.Bookings.ListByUser(identity.UserID)
	if err != nil {
		h.serverError(c, err, "Failed to fetch bookings", "BOOKING_ERROR")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking returns a booking by id.
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := h.store.Bookings.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found", "code": "BOOKING_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to fetch booking", "BOOKING_ERROR")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking applies a partial update. A status change must respect the
// booking lifecycle.
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	booking, err := h.store.Bookings.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found", "code": "BOOKING_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to fetch booking", "BOOKING_ERROR")
		return
	}

	fields := map[string]any{}
	if req.BookingDate != nil {
		fields["booking_date"] = *req.BookingDate
	}
	if req.NumberOfGuests != nil {
		if *req.NumberOfGuests <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Number of guests must be positive", "code": "VALIDATION_ERROR"})
			return
		}
		fields["number_of_guests"] = *req.NumberOfGuests
	}
	if req.SpecialRequests != nil {
		fields["special_requests"] = *req.SpecialRequests
	}
	if req.Status != nil {
		next := models.BookingStatus(*req.Status)
		if err := lifecycle.CanTransitionBooking(booking.Status, next); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_STATUS"})
			return
		}
		fields["status"] = next
	}

	updated, err := h.store.Bookings.Update(id, fields)
	if err != nil {
		h.serverError(c, err, "Failed to update booking", "BOOKING_ERROR")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelBooking sets the booking status to cancelled. Cancelling an already
// cancelled booking is a no-op.
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := h.store.Bookings.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found", "code": "BOOKING_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to fetch booking", "BOOKING_ERROR")
		return
	}
	if err := lifecycle.CanTransitionBooking(booking.Status, models.BookingCancelled); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_STATUS"})
		return
	}

	updated, err := h.store.Bookings.Update(id, map[string]any{"status": models.BookingCancelled})
	if err != nil {
		h.serverError(c, err, "Failed to cancel booking", "BOOKING_ERROR")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetWaitingList returns pending bookings across all users for staff review.
func (h *Handler) GetWaitingList(c *gin.Context) {
	bookings, err := h.store.Bookings.ListByStatus(models.BookingPending)
	if err != nil {
		h.serverError(c, err, "Failed to fetch waiting list", "BOOKING_ERROR")
		return
	}
	c.JSON(http.StatusOK, bookings)
}
