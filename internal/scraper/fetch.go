package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	fetchTimeout = 10 * time.Second

	// Browser-like identity; plenty of sites reject requests that announce
	// themselves as scripts.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	clientInstance *Client
	clientOnce     sync.Once
)

// Client fetches pages for the scrape pipeline.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetClient returns the shared fetch client, initializing it on first use.
func GetClient() *Client {
	clientOnce.Do(func() {
		slog.Info("[Scraper] Initializing HTTP client", slog.Duration("timeout", fetchTimeout))
		clientInstance = NewClient(fetchTimeout)
	})
	return clientInstance
}

// FetchPage downloads url and returns the response body. Any non-success
// status fails the fetch; redirects are followed by the underlying client.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return string(body), nil
}
