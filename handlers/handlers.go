package handlers

import (
	"log"
	"net/http"
	"strconv"

	"restaurant-booking-api/config"
	"restaurant-booking-api/store"

	"github.com/gin-gonic/gin"
)

// Handler carries the injected store backend and configuration. One instance
// serves all routes.
type Handler struct {
	store *store.Store
	cfg   *config.Config
}

func New(s *store.Store, cfg *config.Config) *Handler {
	return &Handler{store: s, cfg: cfg}
}

// serverError logs the failure and answers 500. The underlying message is
// only exposed in development mode.
func (h *Handler) serverError(c *gin.Context, err error, publicMsg, code string) {
	log.Printf("Error: %v", err)
	msg := publicMsg
	if h.cfg.IsDevelopment() {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "code": code})
}

// parseID reads a numeric path parameter, answering 400 on garbage.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id: " + raw, "code": "INVALID_ID"})
		return 0, false
	}
	return uint(id), true
}
