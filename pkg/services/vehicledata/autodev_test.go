package vehicledata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingsServer(t *testing.T, handler func(r *http.Request) interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/listings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(handler(r))
	}))
}

func TestAutoDevClient_LookupVIN(t *testing.T) {
	server := listingsServer(t, func(r *http.Request) interface{} {
		assert.Equal(t, "2HGFC2F59KH512345", r.URL.Query().Get("vin"))
		return map[string]interface{}{
			"records": []map[string]interface{}{{
				"year":         2019,
				"make":         "Honda",
				"model":        "Civic",
				"trim":         "EX",
				"price":        15000,
				"mileage":      45000,
				"engine":       "2.0L I4",
				"transmission": "CVT",
				"fuelType":     "Gasoline",
				"mpgCity":      30,
				"mpgHighway":   38,
				"dealerName":   "Bob Motors",
			}},
			"totalCount": 1,
		}
	})
	defer server.Close()

	client := NewAutoDevClient("test-key", WithBaseURL(server.URL))
	profile, err := client.LookupVIN(context.Background(), "2HGFC2F59KH512345")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 2019, profile.Year)
	assert.Equal(t, "Honda", profile.Make)
	assert.Equal(t, "Civic", profile.Model)
	assert.Equal(t, "2HGFC2F59KH512345", profile.VIN)
	assert.Equal(t, "2.0L I4", profile.Engine)
	assert.Equal(t, 30, profile.MPGCity)
	assert.Equal(t, "Bob Motors", profile.DealerName)
}

func TestAutoDevClient_LookupVIN_NoRecords(t *testing.T) {
	server := listingsServer(t, func(r *http.Request) interface{} {
		return map[string]interface{}{"records": []interface{}{}}
	})
	defer server.Close()

	client := NewAutoDevClient("test-key", WithBaseURL(server.URL))
	profile, err := client.LookupVIN(context.Background(), "2HGFC2F59KH512345")

	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestAutoDevClient_LookupVIN_NoKey(t *testing.T) {
	client := NewAutoDevClient("")
	_, err := client.LookupVIN(context.Background(), "2HGFC2F59KH512345")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAutoDevClient_GetMarketComps(t *testing.T) {
	server := listingsServer(t, func(r *http.Request) interface{} {
		q := r.URL.Query()
		assert.Equal(t, "Honda", q.Get("make"))
		assert.Equal(t, "Civic", q.Get("model"))
		assert.Equal(t, "2018", q.Get("year_min"))
		assert.Equal(t, "2020", q.Get("year_max"))
		assert.Equal(t, "48309", q.Get("zip"))
		assert.Equal(t, "100", q.Get("radius"))
		assert.Equal(t, "50", q.Get("page_size"))

		return map[string]interface{}{
			"records": []map[string]interface{}{
				{"price": 14000},
				{"price": 16000},
				{"price": 18000},
				{"price": 0}, // no price, skipped
			},
			"totalCount": 120,
		}
	})
	defer server.Close()

	client := NewAutoDevClient("test-key", WithBaseURL(server.URL))
	comps, err := client.GetMarketComps(context.Background(), domain.CompsQuery{
		Year:         2019,
		Make:         "Honda",
		Model:        "Civic",
		Zip:          "48309",
		ListingPrice: 15000,
	})

	require.NoError(t, err)
	require.NotNil(t, comps)
	assert.Equal(t, 16000, comps.AvgPrice)
	assert.Equal(t, 14000, comps.MinPrice)
	assert.Equal(t, 18000, comps.MaxPrice)
	assert.Equal(t, 3, comps.CompCount)
	assert.Equal(t, 120, comps.TotalMarket)
	assert.Equal(t, 10, comps.DemandScore)
	assert.Equal(t, 25, comps.SpreadPct)
	require.NotNil(t, comps.Percentile)
	assert.Equal(t, 33, *comps.Percentile)
	assert.Equal(t, []int{14000, 16000, 18000}, comps.PriceSample)
}

func TestAutoDevClient_GetMarketComps_NoPrices(t *testing.T) {
	server := listingsServer(t, func(r *http.Request) interface{} {
		return map[string]interface{}{
			"records":    []map[string]interface{}{{"price": 0}},
			"totalCount": 1,
		}
	})
	defer server.Close()

	client := NewAutoDevClient("test-key", WithBaseURL(server.URL))
	comps, err := client.GetMarketComps(context.Background(), domain.CompsQuery{Make: "Honda", Model: "Civic"})

	require.NoError(t, err)
	assert.Nil(t, comps)
}

func TestAutoDevClient_GetMarketComps_Upstream500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewAutoDevClient("test-key", WithBaseURL(server.URL))
	_, err := client.GetMarketComps(context.Background(), domain.CompsQuery{Make: "Honda", Model: "Civic"})

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestDemandScore(t *testing.T) {
	assert.Equal(t, 1, demandScore(0))
	assert.Equal(t, 1, demandScore(9))
	assert.Equal(t, 5, demandScore(55))
	assert.Equal(t, 10, demandScore(5000))
}
