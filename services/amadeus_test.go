package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"travelhub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offersJSON = `{
  "meta": {"count": 1},
  "data": [{
    "type": "flight-offer",
    "id": "1",
    "price": {"currency": "EUR", "total": "355.34", "grandTotal": "355.34"},
    "itineraries": [{
      "duration": "PT7H10M",
      "segments": [{
        "departure": {"iataCode": "CDG", "terminal": "2E", "at": "2026-11-01T10:40:00"},
        "arrival": {"iataCode": "DXB", "at": "2026-11-01T19:50:00"},
        "carrierCode": "EK",
        "number": "76"
      }]
    }],
    "travelerPricings": [{"travelerId": "1", "travelerType": "ADULT", "price": {"currency": "EUR", "total": "355.34"}}]
  }]
}`

func newAmadeusServer(t *testing.T, tokenCalls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		assert.NoError(t, r.ParseForm())
		if r.Form.Get("client_id") != "id" || r.Form.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"access_token":"tok","expires_in":1799}`))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "CITY", q.Get("subType"))
		assert.Equal(t, "1", q.Get("page[limit]"))
		if q.Get("keyword") == "Lisboa" {
			w.Write([]byte(`{"data":[{"type":"location","subType":"CITY","name":"LISBON","iataCode":"LIS"}]}`))
			return
		}
		w.Write([]byte(`{"data":[]}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("originLocationCode") == "ERR" {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"errors":[{"status":429,"title":"Too many requests"}]}`))
			return
		}
		assert.Equal(t, "PAR", q.Get("originLocationCode"))
		assert.Equal(t, "DXB", q.Get("destinationLocationCode"))
		assert.Equal(t, "2026-11-01", q.Get("departureDate"))
		assert.Equal(t, "2", q.Get("adults"))
		assert.Equal(t, "10", q.Get("max"))
		w.Write([]byte(offersJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestAmadeus(t *testing.T, baseURL string) *AmadeusClient {
	t.Helper()
	c, err := NewAmadeusClient(config.Amadeus{
		Credentials: config.Credentials{ClientID: "id", ClientSecret: "secret"},
		BaseURL:     baseURL,
	}, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewAmadeusClientRequiresCredentials(t *testing.T) {
	c, err := NewAmadeusClient(config.Amadeus{Credentials: config.Credentials{ClientID: "id"}}, time.Second)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAmadeusSearchFlightOffers(t *testing.T) {
	var tokenCalls int32
	srv := newAmadeusServer(t, &tokenCalls)
	c := newTestAmadeus(t, srv.URL)

	offers, err := c.SearchFlightOffers(context.Background(), FlightOfferQuery{
		OriginCode: "PAR", DestinationCode: "DXB", DepartureDate: "2026-11-01", Adults: 2, Max: 10,
	})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "1", offers[0].ID)
	assert.Equal(t, OfferPrice{GrandTotal: "355.34", Currency: "EUR"}, offers[0].Price)
	assert.Equal(t, "EK", offers[0].Itineraries[0].Segments[0].CarrierCode)
	assert.Equal(t, "2026-11-01T19:50:00", offers[0].Itineraries[0].Segments[0].Arrival.At)
	assert.Equal(t, "355.34", offers[0].TravelerPricings[0].Price.Total)
}

func TestAmadeusReusesToken(t *testing.T) {
	var tokenCalls int32
	srv := newAmadeusServer(t, &tokenCalls)
	c := newTestAmadeus(t, srv.URL)

	require.NoError(t, c.Warm(context.Background()))
	_, err := c.SearchLocations(context.Background(), "Lisboa")
	require.NoError(t, err)
	_, err = c.SearchLocations(context.Background(), "Nowhere")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestAmadeusSearchLocations(t *testing.T) {
	var tokenCalls int32
	srv := newAmadeusServer(t, &tokenCalls)
	c := newTestAmadeus(t, srv.URL)

	locations, err := c.SearchLocations(context.Background(), "Lisboa")
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "LIS", locations[0].IataCode)

	locations, err = c.SearchLocations(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestAmadeusUpstreamErrors(t *testing.T) {
	var tokenCalls int32
	srv := newAmadeusServer(t, &tokenCalls)
	c := newTestAmadeus(t, srv.URL)

	_, err := c.SearchFlightOffers(context.Background(), FlightOfferQuery{OriginCode: "ERR", DestinationCode: "DXB", DepartureDate: "2026-11-01", Adults: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAmadeusAuthFailure(t *testing.T) {
	var tokenCalls int32
	srv := newAmadeusServer(t, &tokenCalls)
	c, err := NewAmadeusClient(config.Amadeus{
		Credentials: config.Credentials{ClientID: "id", ClientSecret: "wrong"},
		BaseURL:     srv.URL,
	}, time.Second)
	require.NoError(t, err)

	_, err = c.SearchLocations(context.Background(), "Lisboa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth failed")
}

func TestAmadeusTimeoutIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := NewAmadeusClient(config.Amadeus{
		Credentials: config.Credentials{ClientID: "id", ClientSecret: "secret"},
		BaseURL:     srv.URL,
	}, 20*time.Millisecond)
	require.NoError(t, err)

	_, err = c.SearchFlightOffers(context.Background(), FlightOfferQuery{OriginCode: "PAR", DestinationCode: "DXB"})
	assert.Error(t, err)
}
