package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"travelhub/config"
)

// ─── Types ────────────────────────────────────────────────────────────────────

// FlightOffer mirrors the provider's flight-offer shape. Mock offers use the
// same struct so callers cannot tell them apart structurally.
type FlightOffer struct {
	ID               string            `json:"id"`
	Price            OfferPrice        `json:"price"`
	Itineraries      []Itinerary       `json:"itineraries"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`
}

type OfferPrice struct {
	GrandTotal string `json:"grandTotal"`
	Currency   string `json:"currency"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   SegmentPoint `json:"departure"`
	Arrival     SegmentPoint `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
}

type SegmentPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type TravelerPricing struct {
	TravelerType string        `json:"travelerType"`
	Price        TravelerPrice `json:"price"`
}

type TravelerPrice struct {
	Total string `json:"total"`
}

// Location is a reference-data record returned by the location search.
type Location struct {
	IataCode string `json:"iataCode"`
	Name     string `json:"name"`
	SubType  string `json:"subType"`
}

type FlightOfferQuery struct {
	OriginCode      string
	DestinationCode string
	DepartureDate   string // YYYY-MM-DD
	Adults          int
	Max             int
}

// ─── Amadeus Client ───────────────────────────────────────────────────────────

type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	accessToken  string
	tokenExpiry  time.Time
	mu           sync.Mutex
	httpClient   *http.Client
}

// NewAmadeusClient returns ErrNotConfigured when either credential is missing.
func NewAmadeusClient(cfg config.Amadeus, timeout time.Duration) (*AmadeusClient, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	return &AmadeusClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Warm fetches a token ahead of the first request.
func (c *AmadeusClient) Warm(ctx context.Context) error {
	return c.refreshToken(ctx)
}

// ─── OAuth2 Token ─────────────────────────────────────────────────────────────

func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) doGet(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.amadeus+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// ─── Location Search ──────────────────────────────────────────────────────────

// SearchLocations asks for the best-matching CITY record for keyword.
func (c *AmadeusClient) SearchLocations(ctx context.Context, keyword string) ([]Location, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("subType", "CITY")
	q.Set("page[limit]", "1")

	body, err := c.doGet(ctx, "/v1/reference-data/locations", q)
	if err != nil {
		return nil, fmt.Errorf("location search failed: %w", err)
	}

	var resp struct {
		Data []Location `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse locations: %w", err)
	}
	return resp.Data, nil
}

// ─── Flight Search ────────────────────────────────────────────────────────────

// SearchFlightOffers runs a one-way Flight Offers Search.
func (c *AmadeusClient) SearchFlightOffers(ctx context.Context, in FlightOfferQuery) ([]FlightOffer, error) {
	q := url.Values{}
	q.Set("originLocationCode", in.OriginCode)
	q.Set("destinationLocationCode", in.DestinationCode)
	q.Set("departureDate", in.DepartureDate)
	q.Set("adults", strconv.Itoa(in.Adults))
	if in.Max > 0 {
		q.Set("max", strconv.Itoa(in.Max))
	}

	body, err := c.doGet(ctx, "/v2/shopping/flight-offers", q)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	var resp struct {
		Data []FlightOffer `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}
	if resp.Data == nil {
		resp.Data = []FlightOffer{}
	}
	return resp.Data, nil
}
