package opendota

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://api.opendota.com/api"

	// Per-request timeout; a timeout is treated like any other transport failure
	requestTimeout = 30 * time.Second

	// Cooldown applied when the API answers 429
	rateLimitCooldown = 60 * time.Second
)

// Client is an OpenDota API client with a bounded per-request timeout.
// Page and detail fetches never return errors to the caller: transport
// failures are logged and surface as an empty page / nil detail, because
// the collection loop's retry policy handles them.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cooldown   time.Duration
}

// NewClient creates a new OpenDota client. baseURL may be empty to use the
// public API. An API key is picked up from OPENDOTA_API_KEY if set.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  os.Getenv("OPENDOTA_API_KEY"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		cooldown: rateLimitCooldown,
	}
}

// PublicMatches fetches one page of recently finished public matches.
// When lessThan is > 0 every returned match ID is strictly below it.
// Returns an empty slice on any transport, status or decode failure; a
// rate-limited listing is a soft failure like any other, handled by the
// caller's empty-page backoff.
func (c *Client) PublicMatches(ctx context.Context, limit int, lessThan int64) []PublicMatch {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if lessThan > 0 {
		params.Set("less_than_match_id", fmt.Sprintf("%d", lessThan))
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/publicMatches?%s", c.baseURL, params.Encode())

	var page []PublicMatch
	if err := c.get(ctx, reqURL, &page, false); err != nil {
		log.Printf("[OpenDota] Failed to fetch public matches page: %v", err)
		return nil
	}
	return page
}

// MatchDetails fetches the full payload for one match. Returns nil on any
// transport or decode failure. A 429 answer triggers a cooldown and the
// request is retried until it gets through or the context is cancelled.
func (c *Client) MatchDetails(ctx context.Context, matchID int64) *MatchDetail {
	reqURL := fmt.Sprintf("%s/matches/%d", c.baseURL, matchID)
	if c.apiKey != "" {
		reqURL += "?api_key=" + url.QueryEscape(c.apiKey)
	}

	var detail MatchDetail
	if err := c.get(ctx, reqURL, &detail, true); err != nil {
		log.Printf("[OpenDota] Failed to fetch match %d: %v", matchID, err)
		return nil
	}
	return &detail
}

// get performs one GET request and decodes the JSON body into result.
// When retryRateLimit is set, a 429 answer is retried in place after the
// cooldown; otherwise it is an error like any other bad status.
func (c *Client) get(ctx context.Context, reqURL string, result interface{}, retryRateLimit bool) error {
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", "dota-collector/1.0")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests && retryRateLimit {
			resp.Body.Close()
			log.Printf("[OpenDota] Rate limited, waiting %s...", c.cooldown)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.cooldown):
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("API returned status %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
}
