package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. An empty allowedOrigins list allows any origin.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID())

	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/vuelos", h.Search)
		api.GET("/vuelos/pdf", h.DownloadOffers)
		api.GET("/seed", h.Seed)
		api.GET("/destinos", h.ListDestinations)
		api.GET("/origen", h.ListOrigins)
	}

	r.GET("/search", h.Search)
	r.GET("/seed", h.Seed)

	return r
}
