package services

import "time"

const dateLayout = "2006-01-02"

// MockFlightOffers produces the two synthetic offers shown whenever real
// flights are unavailable. Only the travel date varies.
func MockFlightOffers(date time.Time) []FlightOffer {
	day := date.Format(dateLayout)

	type mockOption struct {
		id       string
		price    string
		duration string
		depart   string
		arrive   string
		number   string
	}
	options := []mockOption{
		{"mock-1", "150.00", "PT2H30M", "10:00:00", "12:30:00", "101"},
		{"mock-2", "280.50", "PT4H15M", "15:00:00", "19:15:00", "202"},
	}

	offers := make([]FlightOffer, 0, len(options))
	for _, opt := range options {
		offers = append(offers, FlightOffer{
			ID:    opt.id,
			Price: OfferPrice{GrandTotal: opt.price, Currency: "USD"},
			Itineraries: []Itinerary{{
				Duration: opt.duration,
				Segments: []Segment{{
					Departure:   SegmentPoint{IataCode: "MOCK_ORG", At: day + "T" + opt.depart},
					Arrival:     SegmentPoint{IataCode: "MOCK_DST", At: day + "T" + opt.arrive},
					CarrierCode: "MK",
					Number:      opt.number,
				}},
			}},
			TravelerPricings: []TravelerPricing{{
				TravelerType: "ADULT",
				Price:        TravelerPrice{Total: opt.price},
			}},
		})
	}
	return offers
}
