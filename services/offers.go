package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	maxOffers = 10

	MissingCredentialsWarning = "Showing mock data. Configure AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET to see real flights."
)

type SearchCriteria struct {
	Origin      string
	Destination string
	TravelDate  time.Time
	Passengers  int
}

func (c *SearchCriteria) validate() error {
	if strings.TrimSpace(c.Origin) == "" || strings.TrimSpace(c.Destination) == "" || c.TravelDate.IsZero() {
		return invalidInput("Missing required parameters: origin, destination, date")
	}
	if c.Passengers < 0 {
		return invalidInput("passengers must be a positive integer")
	}
	if c.Passengers == 0 {
		c.Passengers = 1
	}
	return nil
}

// OfferSet is the result of a flight search: either live provider offers or
// the synthetic fallback set, which always carries a warning.
type OfferSet interface {
	Offers() []FlightOffer
	Warning() string
	Synthetic() bool
	UpstreamError() string
}

type RealOffers struct {
	Items []FlightOffer
}

func (r RealOffers) Offers() []FlightOffer { return r.Items }
func (RealOffers) Warning() string         { return "" }
func (RealOffers) Synthetic() bool         { return false }
func (RealOffers) UpstreamError() string   { return "" }

type MockOffers struct {
	Items  []FlightOffer
	Reason string
	Err    error
}

func (m MockOffers) Offers() []FlightOffer { return m.Items }
func (m MockOffers) Warning() string       { return m.Reason }
func (MockOffers) Synthetic() bool         { return true }

func (m MockOffers) UpstreamError() string {
	if m.Err == nil {
		return ""
	}
	return m.Err.Error()
}

type FlightOfferSearcher interface {
	SearchFlightOffers(ctx context.Context, in FlightOfferQuery) ([]FlightOffer, error)
}

type OfferFetcher struct {
	provider FlightOfferSearcher
	resolver *LocationResolver
	now      func() time.Time
}

// NewOfferFetcher takes a nil provider when pricing credentials are absent.
func NewOfferFetcher(provider FlightOfferSearcher, resolver *LocationResolver) *OfferFetcher {
	if resolver == nil {
		resolver = NewLocationResolver(nil)
	}
	return &OfferFetcher{provider: provider, resolver: resolver, now: time.Now}
}

// Search only returns an error for invalid criteria. Provider trouble is
// reported through a MockOffers result instead.
func (f *OfferFetcher) Search(ctx context.Context, criteria SearchCriteria) (OfferSet, error) {
	if err := criteria.validate(); err != nil {
		return nil, err
	}

	if f.provider == nil {
		log.Println("⚠️  Amadeus keys not found — returning mock data")
		return MockOffers{Items: MockFlightOffers(criteria.TravelDate), Reason: MissingCredentialsWarning}, nil
	}

	origin := f.resolver.Resolve(ctx, criteria.Origin)
	destination := f.resolver.Resolve(ctx, criteria.Destination)
	searchDate := clampToToday(criteria.TravelDate, f.now())

	log.Printf("Searching flights from %s to %s on %s", origin.Code, destination.Code, searchDate.Format(dateLayout))

	offers, err := f.provider.SearchFlightOffers(ctx, FlightOfferQuery{
		OriginCode:      origin.Code,
		DestinationCode: destination.Code,
		DepartureDate:   searchDate.Format(dateLayout),
		Adults:          criteria.Passengers,
		Max:             maxOffers,
	})
	if err != nil {
		log.Printf("⚠️  Amadeus flight search failed: %v — using mock data", err)
		return MockOffers{
			Items:  MockFlightOffers(criteria.TravelDate),
			Reason: fmt.Sprintf("Error fetching real flights (check keys/quota): %v. Showing mock data.", err),
			Err:    err,
		}, nil
	}

	log.Printf("✅ Amadeus: %d live offers found", len(offers))
	return RealOffers{Items: offers}, nil
}

// clampToToday compares calendar dates in UTC.
func clampToToday(date, now time.Time) time.Time {
	n := now.UTC()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return today
	}
	return day
}
