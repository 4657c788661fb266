package handlers

import (
	"context"

	"travelhub/database"
	"travelhub/services"
)

type offerSearcher interface {
	Search(ctx context.Context, criteria services.SearchCriteria) (services.OfferSet, error)
}

type catalogSeeder interface {
	Seed(ctx context.Context) ([]services.SeedResult, error)
}

type catalogReader interface {
	ListDestinations(ctx context.Context) ([]database.CatalogEntry, error)
	ListOrigins(ctx context.Context) ([]database.CatalogEntry, error)
}

type pinger interface {
	PingContext(ctx context.Context) error
}

type Dependency struct {
	Offers  offerSearcher
	Seeder  catalogSeeder
	Catalog catalogReader
	DB      pinger
}

type Handler struct {
	offers  offerSearcher
	seeder  catalogSeeder
	catalog catalogReader
	db      pinger
}

func New(dep Dependency) *Handler {
	return &Handler{
		offers:  dep.Offers,
		seeder:  dep.Seeder,
		catalog: dep.Catalog,
		db:      dep.DB,
	}
}
