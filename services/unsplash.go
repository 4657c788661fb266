package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const unsplashBaseURL = "https://api.unsplash.com"

type UnsplashClient struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

func NewUnsplashClient(accessKey string, timeout time.Duration) (*UnsplashClient, error) {
	if accessKey == "" {
		return nil, ErrNotConfigured
	}
	return &UnsplashClient{
		accessKey: accessKey,
		baseURL:   unsplashBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchPhoto returns the first landscape photo URL for query, or "" when
// nothing matched.
func (c *UnsplashClient) SearchPhoto(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash error (%d): %s", resp.StatusCode, string(body))
	}

	var result unsplashSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse unsplash response: %w", err)
	}
	if len(result.Results) == 0 {
		return "", nil
	}
	return result.Results[0].URLs.Regular, nil
}
