package handlers

import (
	"errors"
	"net/http"

	"restaurant-booking-api/middleware"
	"restaurant-booking-api/models"
	"restaurant-booking-api/store"

	"github.com/gin-gonic/gin"
)

type CreateReviewRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

// CreateReview adds a review for a restaurant. Multiple reviews per user per
// restaurant are permitted.
func (h *Handler) CreateReview(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}
	if _, err := h.store.Restaurants.FindByID(req.RestaurantID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found", "code": "RESTAURANT_NOT_FOUND"})
		return
	}

	review := models.Review{
		RestaurantID: req.RestaurantID,
		UserID:       identity.UserID,
		Rating:       req.Rating,
		Comment:      sanitize(req.Comment),
	}
	if err := h.store.Reviews.Create(&review); err != nil {
		h.serverError(c, err, "Failed to create review", "REVIEW_ERROR")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetReviews lists a restaurant's reviews, newest first.
func (h *Handler) GetReviews(c *gin.Context) {
	restaurantID, ok := parseID(c, "restaurantId")
	if !ok {
		return
	}
	reviews, err := h.store.Reviews.ListByRestaurant(restaurantID)
	if err != nil {
		h.serverError(c, err, "Failed to fetch reviews", "REVIEW_ERROR")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// DeleteReview removes a review. Only its author or an admin may do so.
func (h *Handler) DeleteReview(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	review, err := h.store.Reviews.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found", "code": "REVIEW_NOT_FOUND"})
			return
		}
		h.serverError(c, err, "Failed to fetch review", "REVIEW_ERROR")
		return
	}
	if review.UserID != identity.UserID && identity.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only delete your own reviews", "code": "NOT_REVIEW_AUTHOR"})
		return
	}

	if err := h.store.Reviews.Delete(id); err != nil {
		h.serverError(c, err, "Failed to delete review", "REVIEW_ERROR")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
