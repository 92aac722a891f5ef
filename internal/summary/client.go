package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"secondbrain/internal/domain"
)

// maxBodySize caps how much of an API response is read.
const maxBodySize = 4 << 20

// Client is the HTTP client shared by strategies and the generator. Every
// request waits on a rate limiter first.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient allows one request per interval. A zero interval disables
// throttling.
func NewClient(timeout, interval time.Duration) *Client {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Do sends req and returns the body of a 2xx response.
func (c *Client) Do(req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", domain.ErrSummaryGenerationFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrSummaryGenerationFailed, req.Method, req.URL.Host, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", domain.ErrSummaryGenerationFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s returned %s", domain.ErrSummaryGenerationFailed, req.Method, req.URL.Path, resp.Status)
	}
	return body, nil
}

// GetJSON fetches url and decodes the response into v.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSummaryGenerationFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, val := range headers {
		req.Header.Set(k, val)
	}
	body, err := c.Do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: decoding response: %w", domain.ErrSummaryGenerationFailed, err)
	}
	return nil
}
