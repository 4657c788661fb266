package handlers

import (
	"net/http"

	"travelhub/services"

	"github.com/gin-gonic/gin"
)

type SeedResponse struct {
	Message string                `json:"message"`
	Details []services.SeedResult `json:"details"`
}

func (h *Handler) Seed(c *gin.Context) {
	results, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Seeding failed", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, SeedResponse{Message: "Seeding complete", Details: results})
}
