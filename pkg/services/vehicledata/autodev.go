package vehicledata

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

const DefaultAutoDevURL = "https://auto.dev"

const (
	compsPageSize   = 50
	compsZipRadius  = 100
	priceSampleSize = 20
)

type AutoDevClient struct {
	apiKey  string
	baseURL string
	client  *retryablehttp.Client
}

type Option func(*AutoDevClient)

func WithBaseURL(url string) Option {
	return func(c *AutoDevClient) { c.baseURL = url }
}

func NewAutoDevClient(apiKey string, opts ...Option) *AutoDevClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	client.HTTPClient.Timeout = 10 * time.Second

	c := &AutoDevClient{
		apiKey:  apiKey,
		baseURL: DefaultAutoDevURL,
		client:  client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listingRecord struct {
	Year         int      `json:"year"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Trim         string   `json:"trim"`
	Price        int      `json:"price"`
	Mileage      int      `json:"mileage"`
	DealerName   string   `json:"dealerName"`
	DealerPhone  string   `json:"dealerPhone"`
	DisplayColor string   `json:"displayColor"`
	PhotoURLs    []string `json:"photoUrls"`
	BodyType     string   `json:"bodyType"`
	Engine       string   `json:"engine"`
	Transmission string   `json:"transmission"`
	Drivetrain   string   `json:"drivetrain"`
	FuelType     string   `json:"fuelType"`
	MPGCity      int      `json:"mpgCity"`
	MPGHighway   int      `json:"mpgHighway"`
}

type listingsResponse struct {
	Records    []listingRecord `json:"records"`
	TotalCount int             `json:"totalCount"`
}

// LookupVIN resolves a VIN into a full vehicle profile using the most
// recent Auto.dev listing record for that VIN. Returns nil when the VIN
// has no listing history.
func (c *AutoDevClient) LookupVIN(ctx context.Context, vin string) (*domain.VehicleProfile, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: auto.dev API key not configured", domain.ErrUnauthorized)
	}

	query := url.Values{"vin": {vin}}
	decoded, err := c.getListings(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(decoded.Records) == 0 {
		return nil, nil
	}

	r := decoded.Records[0]
	return &domain.VehicleProfile{
		Year:         r.Year,
		Make:         r.Make,
		Model:        r.Model,
		Trim:         r.Trim,
		VIN:          vin,
		Price:        r.Price,
		Mileage:      r.Mileage,
		Engine:       r.Engine,
		Transmission: r.Transmission,
		Drivetrain:   r.Drivetrain,
		FuelType:     r.FuelType,
		BodyType:     r.BodyType,
		MPGCity:      r.MPGCity,
		MPGHighway:   r.MPGHighway,
		Color:        r.DisplayColor,
		DealerName:   r.DealerName,
		DealerPhone:  r.DealerPhone,
		Photos:       r.PhotoURLs,
	}, nil
}

// GetMarketComps pulls comparable listings around the vehicle's
// year/make/model and reduces them to pricing statistics. Returns nil
// when no comparable has a usable price.
func (c *AutoDevClient) GetMarketComps(ctx context.Context, q domain.CompsQuery) (*domain.MarketComps, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: auto.dev API key not configured", domain.ErrUnauthorized)
	}

	query := url.Values{
		"make":      {q.Make},
		"model":     {q.Model},
		"page_size": {strconv.Itoa(compsPageSize)},
	}
	if q.Year > 0 {
		yearMin := q.Year - 1
		if yearMin < 1990 {
			yearMin = 1990
		}
		query.Set("year_min", strconv.Itoa(yearMin))
		query.Set("year_max", strconv.Itoa(q.Year+1))
	}
	if q.Zip != "" {
		query.Set("zip", q.Zip)
		query.Set("radius", strconv.Itoa(compsZipRadius))
	}

	decoded, err := c.getListings(ctx, query)
	if err != nil {
		return nil, err
	}

	prices := make([]int, 0, len(decoded.Records))
	for _, r := range decoded.Records {
		if r.Price > 0 {
			prices = append(prices, r.Price)
		}
	}
	if len(prices) == 0 {
		return nil, nil
	}
	sort.Ints(prices)

	total := decoded.TotalCount
	if total == 0 {
		total = len(decoded.Records)
	}

	sum := 0
	for _, p := range prices {
		sum += p
	}
	comps := &domain.MarketComps{
		AvgPrice:    sum / len(prices),
		MinPrice:    prices[0],
		MaxPrice:    prices[len(prices)-1],
		CompCount:   len(prices),
		TotalMarket: total,
		DemandScore: demandScore(total),
	}

	if comps.AvgPrice > 0 {
		comps.SpreadPct = int(float64(comps.MaxPrice-comps.MinPrice)/float64(comps.AvgPrice)*100 + 0.5)
	}
	if q.ListingPrice > 0 {
		below := 0
		for _, p := range prices {
			if p <= q.ListingPrice {
				below++
			}
		}
		pct := int(float64(below)/float64(len(prices))*100 + 0.5)
		comps.Percentile = &pct
	}

	sample := prices
	if len(sample) > priceSampleSize {
		sample = sample[:priceSampleSize]
	}
	comps.PriceSample = sample

	return comps, nil
}

func (c *AutoDevClient) getListings(ctx context.Context, query url.Values) (*listingsResponse, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/api/listings?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listings request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: auto.dev call failed: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: auto.dev rejected the API key", domain.ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: auto.dev returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var decoded listingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode auto.dev response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return &decoded, nil
}

// demandScore maps total market size to a 1-10 score: one point per ten
// listings on the market, clamped.
func demandScore(totalMarket int) int {
	score := totalMarket / 10
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
