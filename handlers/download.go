package handlers

import (
	"log"
	"net/http"

	"travelhub/services"

	"github.com/gin-gonic/gin"
)

// DownloadOffers renders the same search as Search into an offer sheet PDF.
func (h *Handler) DownloadOffers(c *gin.Context) {
	criteria, err := parseSearchCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	set, err := h.offers.Search(c.Request.Context(), criteria)
	if err != nil {
		respondSearchError(c, err)
		return
	}

	pdfBytes, err := services.OfferSheetPDF(criteria, set)
	if err != nil {
		log.Printf("❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=travelhub-offers.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) Health(c *gin.Context) {
	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "not initialized"
	} else if err := h.db.PingContext(c.Request.Context()); err != nil {
		dbStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "TravelHub API",
		"database": dbStatus,
	})
}
