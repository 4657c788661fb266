package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelhub/config"
	"travelhub/database"
	"travelhub/handlers"
	"travelhub/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer db.Close()
	catalog := database.NewCatalogStore(db)

	// Pricing provider: absent credentials put flight search in mock mode.
	var (
		locations services.LocationSearcher
		pricing   services.FlightOfferSearcher
	)
	amadeus, err := services.NewAmadeusClient(cfg.Amadeus, cfg.UpstreamTimeout)
	switch {
	case errors.Is(err, services.ErrNotConfigured):
		log.Println("⚠️  AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET not set — flight search will use mock data")
	case err != nil:
		log.Fatalf("❌ Failed to initialize Amadeus client: %v", err)
	default:
		if err := amadeus.Warm(ctx); err != nil {
			log.Printf("⚠️  Amadeus token pre-warm failed: %v", err)
		} else {
			log.Println("✅ Amadeus API authenticated")
		}
		locations, pricing = amadeus, amadeus
	}

	// Image provider: absent key means placeholder images.
	var photos services.PhotoSearcher
	unsplash, err := services.NewUnsplashClient(cfg.UnsplashAccessKey, cfg.UpstreamTimeout)
	if err != nil {
		log.Println("⚠️  UNSPLASH_ACCESS_KEY not set — seeding will use placeholder images")
	} else {
		photos = unsplash
	}

	offers := services.NewOfferFetcher(pricing, services.NewLocationResolver(locations))
	seeder := services.NewCatalogSeeder(
		services.NewTeleportClient(cfg.TeleportURL, cfg.UpstreamTimeout),
		services.NewImageResolver(photos),
		catalog,
	)

	if cfg.SeedSchedule != "" {
		scheduler, err := services.StartSeedCron(seeder, cfg.SeedSchedule)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer scheduler.Stop()
	}

	h := handlers.New(handlers.Dependency{
		Offers:  offers,
		Seeder:  seeder,
		Catalog: catalog,
		DB:      db,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(h, cfg.FrontendURLs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 TravelHub backend starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server shutdown failed: %v", err)
	}
	log.Println("application gracefully shutdown")
}
