package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	StatusCreated = "created"
	StatusUpdated = "updated"

	maxCandidates = 10
)

// FallbackCities is seeded whenever the directory provider is unavailable or empty.
func FallbackCities() []string {
	return []string{"Paris", "London", "New York", "Tokyo", "Rome", "Dubai", "Barcelona", "Madrid"}
}

type SeedResult struct {
	City   string `json:"city"`
	Status string `json:"status"`
	Image  string `json:"image"`
}

type DirectoryProvider interface {
	UrbanAreaNames(ctx context.Context, limit int) ([]string, error)
}

type ImageSource interface {
	ResolveImage(ctx context.Context, query string) string
}

// CatalogWriter upserts name into both the destination and origin catalogs in
// one unit of work. created reports the destination catalog's outcome.
type CatalogWriter interface {
	UpsertCity(ctx context.Context, name, imageURL string) (created bool, err error)
}

type CatalogSeeder struct {
	directory DirectoryProvider
	images    ImageSource
	catalog   CatalogWriter
}

func NewCatalogSeeder(directory DirectoryProvider, images ImageSource, catalog CatalogWriter) *CatalogSeeder {
	return &CatalogSeeder{directory: directory, images: images, catalog: catalog}
}

// Seed processes candidates one at a time to keep load on the image provider
// bounded. A storage failure stops the run and returns the results so far.
func (s *CatalogSeeder) Seed(ctx context.Context) ([]SeedResult, error) {
	runID := uuid.NewString()
	log.Printf("🌱 Seed run %s starting", runID)

	cities := s.candidates(ctx)
	results := make([]SeedResult, 0, len(cities))

	for _, city := range cities {
		log.Printf("Processing %s...", city)
		imageURL := s.images.ResolveImage(ctx, city)

		created, err := s.catalog.UpsertCity(ctx, city, imageURL)
		if err != nil {
			log.Printf("❌ Seed run %s failed on %s: %v", runID, city, err)
			return results, &StorageError{City: city, Err: errors.Wrapf(err, "upsert %q", city)}
		}

		status := StatusUpdated
		if created {
			status = StatusCreated
		}
		results = append(results, SeedResult{City: city, Status: status, Image: imageURL})
	}

	log.Printf("✅ Seed run %s complete: %d cities", runID, len(results))
	return results, nil
}

func (s *CatalogSeeder) candidates(ctx context.Context) []string {
	if s.directory == nil {
		return FallbackCities()
	}
	names, err := s.directory.UrbanAreaNames(ctx, maxCandidates)
	if err != nil {
		log.Printf("⚠️  Error fetching Teleport data: %v, using fallback cities", err)
		return FallbackCities()
	}
	if len(names) == 0 {
		log.Println("⚠️  Teleport returned no urban areas, using fallback cities")
		return FallbackCities()
	}
	if len(names) > maxCandidates {
		names = names[:maxCandidates]
	}
	return names
}
