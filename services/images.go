package services

import (
	"context"
	"log"
	"net/url"
	"strings"
)

type PhotoSearcher interface {
	SearchPhoto(ctx context.Context, query string) (string, error)
}

type ImageResolver struct {
	photos PhotoSearcher
}

// NewImageResolver accepts a nil searcher; every query then gets a placeholder.
func NewImageResolver(photos PhotoSearcher) *ImageResolver {
	return &ImageResolver{photos: photos}
}

// ResolveImage makes at most one upstream call and always returns a URL.
func (r *ImageResolver) ResolveImage(ctx context.Context, query string) string {
	if r.photos == nil {
		return PlaceholderImageURL(query)
	}

	imageURL, err := r.photos.SearchPhoto(ctx, query)
	if err != nil {
		log.Printf("⚠️  Error fetching Unsplash image for %s: %v", query, err)
		return PlaceholderImageURL(query)
	}
	if imageURL == "" {
		return PlaceholderImageURL(query)
	}
	return imageURL
}

// PlaceholderImageURL is deterministic in query.
func PlaceholderImageURL(query string) string {
	return "https://loremflickr.com/640/480/" + escapeComponent(query) + ",city"
}

// escapeComponent matches JavaScript's encodeURIComponent closely enough for
// city names: spaces become %20 rather than +.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
