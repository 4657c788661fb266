package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"travelhub/services"

	"github.com/gin-gonic/gin"
)

type SearchResponse struct {
	Data    []services.FlightOffer `json:"data"`
	Warning string                 `json:"warning,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Search handles GET /api/vuelos?origin=&destination=&date=YYYY-MM-DD&passengers=
func (h *Handler) Search(c *gin.Context) {
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

	c.JSON(http.StatusOK, SearchResponse{
		Data:    set.Offers(),
		Warning: set.Warning(),
		Error:   set.UpstreamError(),
	})
}

func parseSearchCriteria(c *gin.Context) (services.SearchCriteria, error) {
	origin := strings.TrimSpace(c.Query("origin"))
	destination := strings.TrimSpace(c.Query("destination"))
	date := strings.TrimSpace(c.Query("date"))
	if origin == "" || destination == "" || date == "" {
		return services.SearchCriteria{}, &services.InputError{Message: "Missing required parameters: origin, destination, date"}
	}

	travelDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return services.SearchCriteria{}, &services.InputError{Message: "Invalid date format. Use YYYY-MM-DD"}
	}

	passengers := 1
	if raw := strings.TrimSpace(c.Query("passengers")); raw != "" {
		passengers, err = strconv.Atoi(raw)
		if err != nil || passengers <= 0 {
			return services.SearchCriteria{}, &services.InputError{Message: "passengers must be a positive integer"}
		}
	}

	return services.SearchCriteria{
		Origin:      origin,
		Destination: destination,
		TravelDate:  travelDate,
		Passengers:  passengers,
	}, nil
}

func respondSearchError(c *gin.Context, err error) {
	var inputErr *services.InputError
	if errors.As(err, &inputErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": inputErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Error searching flights", "error": err.Error()})
}
