package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListDestinations(c *gin.Context) {
	entries, err := h.catalog.ListDestinations(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to list destinations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching destinations"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) ListOrigins(c *gin.Context) {
	entries, err := h.catalog.ListOrigins(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to list origins: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching origins"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
