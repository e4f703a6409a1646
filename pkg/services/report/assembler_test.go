package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockScraper struct {
	mock.Mock
}

func (m *mockScraper) FetchListing(ctx context.Context, url string) (domain.ListingPage, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(domain.ListingPage), args.Error(1)
}

type mockVehicleAPI struct {
	mock.Mock
}

func (m *mockVehicleAPI) LookupVIN(ctx context.Context, vin string) (*domain.VehicleProfile, error) {
	args := m.Called(ctx, vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleProfile), args.Error(1)
}

func (m *mockVehicleAPI) GetMarketComps(ctx context.Context, q domain.CompsQuery) (*domain.MarketComps, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketComps), args.Error(1)
}

type mockSafetyAPI struct {
	mock.Mock
}

func (m *mockSafetyAPI) GetSafetyRecord(ctx context.Context, year int, makeName, model string) (*domain.SafetyRecord, error) {
	args := m.Called(ctx, year, makeName, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SafetyRecord), args.Error(1)
}

type mockAnalyst struct {
	mock.Mock
}

func (m *mockAnalyst) GenerateBrief(
	ctx context.Context,
	vehicle domain.VehicleProfile,
	comps *domain.MarketComps,
	safety *domain.SafetyRecord,
	listingText string,
) (*domain.Brief, error) {
	args := m.Called(ctx, vehicle, comps, safety, listingText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brief), args.Error(1)
}

func sampleBrief() *domain.Brief {
	return &domain.Brief{
		Score:         domain.BuyScore{Score: 8, Label: "Solid Pick", OneLiner: "Good one."},
		MarketSummary: "Priced under market.",
		PricePosition: domain.PriceBelowMarket,
		SmartQuestions: []domain.SmartQuestion{
			{Ask: "q1"}, {Ask: "q2"}, {Ask: "q3"},
		},
		Negotiation: &domain.NegotiationStrategy{ExpectedOTD: "$16,500"},
		CostToOwn:   &domain.CostToOwn{Verdict: "Cheap to own."},
		ProTips:     []string{"tip"},
	}
}

func newMocks() (*mockScraper, *mockVehicleAPI, *mockSafetyAPI, *mockAnalyst) {
	return new(mockScraper), new(mockVehicleAPI), new(mockSafetyAPI), new(mockAnalyst)
}

func TestAssembler_Analyze_ManualInputFreeTier(t *testing.T) {
	scraper, vehicles, safety, analyst := newMocks()

	comps := &domain.MarketComps{AvgPrice: 16000, CompCount: 20}
	record := &domain.SafetyRecord{RecallCount: 2, ComplaintCount: 31}

	vehicles.On("GetMarketComps", mock.Anything, domain.CompsQuery{
		Year: 2019, Make: "Honda", Model: "Civic", Zip: "48309", ListingPrice: 15000,
	}).Return(comps, nil)
	safety.On("GetSafetyRecord", mock.Anything, 2019, "Honda", "Civic").Return(record, nil)
	analyst.On("GenerateBrief", mock.Anything, mock.Anything, comps, record, "").
		Return(sampleBrief(), nil)

	assembler := NewAssembler(scraper, vehicles, safety, analyst, "48309")
	got, err := assembler.Analyze(context.Background(), domain.ListingInput{
		Year: 2019, Make: "Honda", Model: "Civic", Mileage: 45000, Price: 15000,
	}, false)

	require.NoError(t, err)
	assert.Equal(t, domain.TierFree, got.Tier)
	assert.Equal(t, 8, got.Score.Score)
	assert.Nil(t, got.Negotiation)
	assert.Len(t, got.Questions, 2)
	assert.Equal(t, 2, got.Reliability.RecallCount)
	assert.NotEmpty(t, got.ID)

	scraper.AssertNotCalled(t, "FetchListing", mock.Anything, mock.Anything)
	vehicles.AssertNotCalled(t, "LookupVIN", mock.Anything, mock.Anything)
	vehicles.AssertExpectations(t)
	safety.AssertExpectations(t)
	analyst.AssertExpectations(t)
}

func TestAssembler_Analyze_URLPipelinePaidTier(t *testing.T) {
	scraper, vehicles, safety, analyst := newMocks()

	url := "https://www.cars.com/vehicledetail/detail/2HGFC2F59KH512345/"
	pageText := "2019 Honda Civic EX $15,250 with 45,000 miles VIN: 2HGFC2F59KH512345"

	scraper.On("FetchListing", mock.Anything, url).
		Return(domain.ListingPage{Text: pageText, Images: []string{"img1", "img2"}}, nil)
	vehicles.On("LookupVIN", mock.Anything, "2HGFC2F59KH512345").
		Return(&domain.VehicleProfile{
			Year: 2019, Make: "Honda", Model: "Civic", Trim: "EX",
			Engine: "2.0L I4", Transmission: "CVT",
		}, nil)
	vehicles.On("GetMarketComps", mock.Anything, mock.MatchedBy(func(q domain.CompsQuery) bool {
		return q.Make == "Honda" && q.Model == "Civic" && q.ListingPrice == 15250
	})).Return(&domain.MarketComps{AvgPrice: 16000}, nil)
	safety.On("GetSafetyRecord", mock.Anything, 2019, "Honda", "Civic").
		Return(&domain.SafetyRecord{}, nil)
	analyst.On("GenerateBrief", mock.Anything, mock.MatchedBy(func(v domain.VehicleProfile) bool {
		// merged profile: page text price, VIN-decode engine, scraped photos
		return v.Price == 15250 && v.Engine == "2.0L I4" && len(v.Photos) == 2
	}), mock.Anything, mock.Anything, pageText).Return(sampleBrief(), nil)

	assembler := NewAssembler(scraper, vehicles, safety, analyst, "48309")
	got, err := assembler.Analyze(context.Background(), domain.ListingInput{URL: url}, true)

	require.NoError(t, err)
	assert.Equal(t, domain.TierPaid, got.Tier)
	require.NotNil(t, got.Negotiation)
	assert.Equal(t, "$16,500", got.Negotiation.ExpectedOTD)
	assert.Len(t, got.Questions, 3)
	assert.Equal(t, []string{"tip"}, got.ProTips)

	scraper.AssertExpectations(t)
	vehicles.AssertExpectations(t)
	safety.AssertExpectations(t)
	analyst.AssertExpectations(t)
}

func TestAssembler_Analyze_MissingMakeModel(t *testing.T) {
	scraper, vehicles, safety, analyst := newMocks()

	assembler := NewAssembler(scraper, vehicles, safety, analyst, "48309")
	_, err := assembler.Analyze(context.Background(), domain.ListingInput{Year: 2019}, false)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	vehicles.AssertNotCalled(t, "GetMarketComps", mock.Anything, mock.Anything)
}

func TestAssembler_Analyze_BadURL(t *testing.T) {
	scraper, vehicles, safety, analyst := newMocks()

	assembler := NewAssembler(scraper, vehicles, safety, analyst, "48309")
	_, err := assembler.Analyze(context.Background(), domain.ListingInput{URL: "not a url"}, false)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	scraper.AssertNotCalled(t, "FetchListing", mock.Anything, mock.Anything)
}

func TestAssembler_Analyze_UpstreamFailureFailsWholeRequest(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*mockScraper, *mockVehicleAPI, *mockSafetyAPI, *mockAnalyst)
	}{
		{
			name: "comps unavailable",
			setup: func(s *mockScraper, v *mockVehicleAPI, sa *mockSafetyAPI, an *mockAnalyst) {
				v.On("GetMarketComps", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: auto.dev returned status 503", domain.ErrUpstreamUnavailable))
			},
		},
		{
			name: "safety unavailable",
			setup: func(s *mockScraper, v *mockVehicleAPI, sa *mockSafetyAPI, an *mockAnalyst) {
				v.On("GetMarketComps", mock.Anything, mock.Anything).
					Return(&domain.MarketComps{}, nil)
				sa.On("GetSafetyRecord", mock.Anything, 2019, "Honda", "Civic").
					Return(nil, fmt.Errorf("%w: NHTSA returned status 502", domain.ErrUpstreamUnavailable))
			},
		},
		{
			name: "analyst unavailable",
			setup: func(s *mockScraper, v *mockVehicleAPI, sa *mockSafetyAPI, an *mockAnalyst) {
				v.On("GetMarketComps", mock.Anything, mock.Anything).
					Return(&domain.MarketComps{}, nil)
				sa.On("GetSafetyRecord", mock.Anything, 2019, "Honda", "Civic").
					Return(&domain.SafetyRecord{}, nil)
				an.On("GenerateBrief", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: groq returned status 500", domain.ErrUpstreamUnavailable))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scraper, vehicles, safety, analyst := newMocks()
			tt.setup(scraper, vehicles, safety, analyst)

			assembler := NewAssembler(scraper, vehicles, safety, analyst, "48309")
			got, err := assembler.Analyze(context.Background(), domain.ListingInput{
				Year: 2019, Make: "Honda", Model: "Civic",
			}, true)

			assert.Nil(t, got, "no partial report on upstream failure")
			assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		})
	}
}

func TestAssembler_Analyze_NoYearSkipsSafety(t *testing.T) {
	scraper, vehicles, safety, analyst := newMocks()

	vehicles.On("GetMarketComps", mock.Anything, mock.Anything).
		Return(&domain.MarketComps{}, nil)
	analyst.On("GenerateBrief", mock.Anything, mock.Anything, mock.Anything,
		(*domain.SafetyRecord)(nil), "").Return(sampleBrief(), nil)

	assembler := NewAssembler(scraper, vehicles, safety, analyst, "48309")
	got, err := assembler.Analyze(context.Background(), domain.ListingInput{
		Make: "Honda", Model: "Civic",
	}, false)

	require.NoError(t, err)
	assert.Equal(t, 0, got.Reliability.RecallCount)
	safety.AssertNotCalled(t, "GetSafetyRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAssembler_Analyze_DeterministicReportID(t *testing.T) {
	input := domain.ListingInput{Year: 2019, Make: "Honda", Model: "Civic", Price: 15000}

	run := func() string {
		scraper, vehicles, safety, analyst := newMocks()
		vehicles.On("GetMarketComps", mock.Anything, mock.Anything).Return(&domain.MarketComps{}, nil)
		safety.On("GetSafetyRecord", mock.Anything, 2019, "Honda", "Civic").Return(&domain.SafetyRecord{}, nil)
		analyst.On("GenerateBrief", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(sampleBrief(), nil)

		assembler := NewAssembler(scraper, vehicles, safety, analyst, "48309")
		got, err := assembler.Analyze(context.Background(), input, false)
		require.NoError(t, err)
		return got.ID
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
	assert.Len(t, first, 12)
}
