package safety

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/hashicorp/go-retryablehttp"
)

const DefaultNHTSAURL = "https://api.nhtsa.gov"

const (
	maxRecalls        = 10
	maxComplaintAreas = 5
)

// NHTSAClient fetches recalls and consumer complaints from the public
// NHTSA API. No API key required.
type NHTSAClient struct {
	baseURL string
	client  *retryablehttp.Client
}

type Option func(*NHTSAClient)

func WithBaseURL(url string) Option {
	return func(c *NHTSAClient) { c.baseURL = url }
}

func NewNHTSAClient(opts ...Option) *NHTSAClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	client.HTTPClient.Timeout = 10 * time.Second

	c := &NHTSAClient{
		baseURL: DefaultNHTSAURL,
		client:  client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type recallsResponse struct {
	Results []struct {
		Component   string `json:"Component"`
		Summary     string `json:"Summary"`
		Consequence string `json:"Consequence"`
		Remedy      string `json:"Remedy"`
	} `json:"results"`
}

type complaintsResponse struct {
	Results []struct {
		Components string `json:"components"`
	} `json:"results"`
}

// GetSafetyRecord fetches recalls and complaints for a year/make/model.
func (c *NHTSAClient) GetSafetyRecord(ctx context.Context, year int, makeName, model string) (*domain.SafetyRecord, error) {
	query := url.Values{
		"make":      {makeName},
		"model":     {model},
		"modelYear": {strconv.Itoa(year)},
	}

	record := &domain.SafetyRecord{}

	var recalls recallsResponse
	if err := c.get(ctx, "/recalls/recallsByVehicle", query, &recalls); err != nil {
		return nil, err
	}
	record.RecallCount = len(recalls.Results)
	for i, r := range recalls.Results {
		if i == maxRecalls {
			break
		}
		record.Recalls = append(record.Recalls, domain.Recall{
			Component:   orUnknown(r.Component),
			Summary:     r.Summary,
			Consequence: r.Consequence,
			Remedy:      r.Remedy,
		})
	}

	var complaints complaintsResponse
	if err := c.get(ctx, "/complaints/complaintsByVehicle", query, &complaints); err != nil {
		return nil, err
	}
	record.ComplaintCount = len(complaints.Results)
	record.TopComplaintAreas = topAreas(complaints)

	return record, nil
}

func (c *NHTSAClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build NHTSA request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: NHTSA call failed: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: NHTSA returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode NHTSA response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return nil
}

// topAreas counts complaints by component and keeps the most frequent
// ones. Ties break alphabetically so the result is stable.
func topAreas(complaints complaintsResponse) []domain.ComplaintArea {
	counts := make(map[string]int)
	for _, c := range complaints.Results {
		counts[orUnknown(c.Components)]++
	}

	areas := make([]domain.ComplaintArea, 0, len(counts))
	for component, count := range counts {
		areas = append(areas, domain.ComplaintArea{Component: component, Count: count})
	}
	sort.Slice(areas, func(i, j int) bool {
		if areas[i].Count != areas[j].Count {
			return areas[i].Count > areas[j].Count
		}
		return areas[i].Component < areas[j].Component
	})

	if len(areas) > maxComplaintAreas {
		areas = areas[:maxComplaintAreas]
	}
	return areas
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
