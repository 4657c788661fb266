package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TeleportClient lists urban areas from the Teleport public API. No
// credentials are needed.
type TeleportClient struct {
	url        string
	httpClient *http.Client
}

func NewTeleportClient(url string, timeout time.Duration) *TeleportClient {
	return &TeleportClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type teleportUrbanAreas struct {
	Links struct {
		Items []struct {
			Href string `json:"href"`
			Name string `json:"name"`
		} `json:"ua:item"`
	} `json:"_links"`
}

// UrbanAreaNames returns at most limit names in the order the API lists them.
func (c *TeleportClient) UrbanAreaNames(ctx context.Context, limit int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("teleport error (%d): %s", resp.StatusCode, string(body))
	}

	var areas teleportUrbanAreas
	if err := json.Unmarshal(body, &areas); err != nil {
		return nil, fmt.Errorf("failed to parse urban areas: %w", err)
	}

	names := make([]string, 0, limit)
	for _, item := range areas.Links.Items {
		if len(names) == limit {
			break
		}
		if name := strings.TrimSpace(item.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
