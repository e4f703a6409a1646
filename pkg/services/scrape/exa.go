package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/hashicorp/go-retryablehttp"
)

const DefaultExaURL = "https://api.exa.ai"

type ExaClient struct {
	apiKey  string
	baseURL string
	client  *retryablehttp.Client
}

type Option func(*ExaClient)

func WithBaseURL(url string) Option {
	return func(c *ExaClient) { c.baseURL = url }
}

// NewExaClient builds a client for the Exa contents API. An empty key is
// allowed; FetchListing then degrades to a plain GET of the listing page.
func NewExaClient(apiKey string, opts ...Option) *ExaClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	client.HTTPClient.Timeout = 15 * time.Second

	c := &ExaClient{
		apiKey:  apiKey,
		baseURL: DefaultExaURL,
		client:  client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type contentsRequest struct {
	URLs   []string       `json:"urls"`
	Text   bool           `json:"text"`
	Extras contentsExtras `json:"extras"`
}

type contentsExtras struct {
	Links      int `json:"links"`
	ImageLinks int `json:"imageLinks"`
}

type contentsResponse struct {
	Results []struct {
		Text   string `json:"text"`
		Extras struct {
			ImageLinks []string `json:"imageLinks"`
		} `json:"extras"`
	} `json:"results"`
}

// FetchListing pulls clean page content for a listing URL.
func (c *ExaClient) FetchListing(ctx context.Context, listingURL string) (domain.ListingPage, error) {
	if c.apiKey == "" {
		return c.fetchBasic(ctx, listingURL)
	}

	body, err := json.Marshal(contentsRequest{
		URLs:   []string{listingURL},
		Text:   true,
		Extras: contentsExtras{Links: 3, ImageLinks: 5},
	})
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("failed to encode contents request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contents", body)
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("failed to build contents request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("%w: exa contents call failed: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.ListingPage{}, fmt.Errorf("%w: exa rejected the API key", domain.ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.ListingPage{}, fmt.Errorf("%w: exa returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var decoded contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.ListingPage{}, fmt.Errorf("%w: failed to decode exa response: %v", domain.ErrUpstreamUnavailable, err)
	}
	if len(decoded.Results) == 0 {
		return domain.ListingPage{}, nil
	}

	return domain.ListingPage{
		Text:   decoded.Results[0].Text,
		Images: decoded.Results[0].Extras.ImageLinks,
	}, nil
}

// fetchBasic fetches the raw listing page directly when no Exa key is
// configured. Listing sites often block obvious bots, hence the browser
// user agent.
func (c *ExaClient) fetchBasic(ctx context.Context, listingURL string) (domain.ListingPage, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("%w: bad listing URL: %v", domain.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("%w: listing page fetch failed: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ListingPage{}, fmt.Errorf("%w: listing page returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("%w: failed to read listing page: %v", domain.ErrUpstreamUnavailable, err)
	}
	return domain.ListingPage{Text: string(text)}, nil
}
