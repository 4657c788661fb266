package services

import (
	"context"
	"errors"
	"sync"
)

type fakeLocations struct {
	calls    int
	keywords []string
	result   []Location
	err      error
}

func (f *fakeLocations) SearchLocations(_ context.Context, keyword string) ([]Location, error) {
	f.calls++
	f.keywords = append(f.keywords, keyword)
	return f.result, f.err
}

type fakePricing struct {
	calls  int
	last   FlightOfferQuery
	offers []FlightOffer
	err    error
}

func (f *fakePricing) SearchFlightOffers(_ context.Context, in FlightOfferQuery) ([]FlightOffer, error) {
	f.calls++
	f.last = in
	return f.offers, f.err
}

// fakeAmadeus plays both provider roles, like the real client.
type fakeAmadeus struct {
	fakeLocations
	fakePricing
}

type fakeDirectory struct {
	calls int
	names []string
	err   error
}

func (f *fakeDirectory) UrbanAreaNames(_ context.Context, limit int) ([]string, error) {
	f.calls++
	return f.names, f.err
}

type fakePhotos struct {
	calls int
	urls  map[string]string
	err   error
}

func (f *fakePhotos) SearchPhoto(_ context.Context, query string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.urls[query], nil
}

var errDiskFull = errors.New("disk full")

// memoryCatalog keeps name -> image for both catalogs.
type memoryCatalog struct {
	mu           sync.Mutex
	destinations map[string]string
	origins      map[string]string
	failOn       string
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{destinations: map[string]string{}, origins: map[string]string{}}
}

func (m *memoryCatalog) UpsertCity(_ context.Context, name, imageURL string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == m.failOn {
		return false, errDiskFull
	}
	_, exists := m.destinations[name]
	m.destinations[name] = imageURL
	m.origins[name] = imageURL
	return !exists, nil
}
