package report

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/askcarbuddy/carscout/pkg/services/listing"
	"github.com/rs/zerolog"
)

// Scraper pulls raw page content for a listing URL.
type Scraper interface {
	FetchListing(ctx context.Context, url string) (domain.ListingPage, error)
}

// VehicleAPI resolves VINs and market comparables.
type VehicleAPI interface {
	LookupVIN(ctx context.Context, vin string) (*domain.VehicleProfile, error)
	GetMarketComps(ctx context.Context, q domain.CompsQuery) (*domain.MarketComps, error)
}

// SafetyAPI fetches government recall and complaint data.
type SafetyAPI interface {
	GetSafetyRecord(ctx context.Context, year int, make, model string) (*domain.SafetyRecord, error)
}

// Analyst turns fetched vehicle data into the LLM-generated brief.
type Analyst interface {
	GenerateBrief(
		ctx context.Context,
		vehicle domain.VehicleProfile,
		comps *domain.MarketComps,
		safety *domain.SafetyRecord,
		listingText string,
	) (*domain.Brief, error)
}

// Assembler runs the sequential analysis pipeline: resolve the listing,
// enrich it upstream, generate the brief and project it to the caller's
// tier. One upstream failure fails the whole request.
type Assembler struct {
	scraper    Scraper
	vehicles   VehicleAPI
	safety     SafetyAPI
	analyst    Analyst
	defaultZip string
}

func NewAssembler(scraper Scraper, vehicles VehicleAPI, safety SafetyAPI, analyst Analyst, defaultZip string) *Assembler {
	return &Assembler{
		scraper:    scraper,
		vehicles:   vehicles,
		safety:     safety,
		analyst:    analyst,
		defaultZip: defaultZip,
	}
}

func (a *Assembler) Analyze(ctx context.Context, input domain.ListingInput, paid bool) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	var page domain.ListingPage
	if input.URL != "" {
		parsed, err := listing.ParseURL(input.URL)
		if err != nil {
			return nil, err
		}
		input.Source = parsed.Source
		input.FillFrom(parsed)

		page, err = a.scraper.FetchListing(ctx, input.URL)
		if err != nil {
			return nil, fmt.Errorf("scrape listing: %w", err)
		}
		if page.Text != "" {
			input.FillFrom(listing.ExtractVehicle(page.Text))
		}
	}

	// VIN decode can still recover make/model when the URL and page gave
	// nothing usable, so it runs before input validation.
	var vinProfile *domain.VehicleProfile
	if input.VIN != "" {
		decoded, err := a.vehicles.LookupVIN(ctx, input.VIN)
		if err != nil {
			return nil, fmt.Errorf("vin lookup: %w", err)
		}
		vinProfile = decoded
	}

	vehicle := buildProfile(input, vinProfile, page.Images)
	if vehicle.Make == "" || vehicle.Model == "" {
		return nil, fmt.Errorf("%w: could not identify the vehicle; provide make and model", domain.ErrInvalidInput)
	}
	if vehicle.Zip == "" {
		vehicle.Zip = a.defaultZip
	}

	logger.Info().
		Int("year", vehicle.Year).
		Str("make", vehicle.Make).
		Str("model", vehicle.Model).
		Int("price", vehicle.Price).
		Msg("analyzing listing")

	comps, err := a.vehicles.GetMarketComps(ctx, domain.CompsQuery{
		Year:         vehicle.Year,
		Make:         vehicle.Make,
		Model:        vehicle.Model,
		Trim:         vehicle.Trim,
		Zip:          vehicle.Zip,
		ListingPrice: vehicle.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("market comps: %w", err)
	}

	var safetyRecord *domain.SafetyRecord
	if vehicle.Year > 0 {
		safetyRecord, err = a.safety.GetSafetyRecord(ctx, vehicle.Year, vehicle.Make, vehicle.Model)
		if err != nil {
			return nil, fmt.Errorf("safety record: %w", err)
		}
	}

	brief, err := a.analyst.GenerateBrief(ctx, vehicle, comps, safetyRecord, page.Text)
	if err != nil {
		return nil, fmt.Errorf("generate brief: %w", err)
	}

	assembled := assemble(vehicle, comps, safetyRecord, brief)
	projected := Project(assembled, paid)

	logger.Info().
		Str("report_id", projected.ID).
		Int("buy_score", projected.Score.Score).
		Str("tier", string(projected.Tier)).
		Msg("report generated")

	return &projected, nil
}

// buildProfile merges the listing input with VIN-decode data. Listing
// input always wins; VIN data only fills gaps.
func buildProfile(input domain.ListingInput, vinProfile *domain.VehicleProfile, pageImages []string) domain.VehicleProfile {
	profile := domain.VehicleProfile{}
	if vinProfile != nil {
		profile = *vinProfile
	}

	if input.Year != 0 {
		profile.Year = input.Year
	}
	if input.Make != "" {
		profile.Make = input.Make
	}
	if input.Model != "" {
		profile.Model = input.Model
	}
	if input.Trim != "" {
		profile.Trim = input.Trim
	}
	if input.VIN != "" {
		profile.VIN = input.VIN
	}
	if input.Price != 0 {
		profile.Price = input.Price
	}
	if input.Mileage != 0 {
		profile.Mileage = input.Mileage
	}
	if input.Zip != "" {
		profile.Zip = input.Zip
	}
	if input.Color != "" {
		profile.Color = input.Color
	}
	if input.DealerName != "" {
		profile.DealerName = input.DealerName
	}
	if len(profile.Photos) == 0 && len(pageImages) > 0 {
		if len(pageImages) > 5 {
			pageImages = pageImages[:5]
		}
		profile.Photos = pageImages
	}

	return profile
}

func assemble(vehicle domain.VehicleProfile, comps *domain.MarketComps, safety *domain.SafetyRecord, brief *domain.Brief) domain.Report {
	report := domain.Report{
		ID:          reportID(vehicle),
		GeneratedAt: time.Now().UTC(),
		Vehicle:     vehicle,
		Score:       brief.Score,
		Glance:      brief.Glance,
		Market: domain.MarketPosition{
			Summary:       brief.MarketSummary,
			PricePosition: brief.PricePosition,
			ValueFactors:  brief.ValueFactors,
			Comps:         comps,
		},
		Reliability: domain.ReliabilityIntel{
			GenerationOverview: brief.GenerationOverview,
			KnownIssues:        brief.KnownIssues,
			Maintenance:        brief.Maintenance,
		},
		Questions:   brief.SmartQuestions,
		PrepSteps:   brief.PrepSteps,
		TestDrive:   brief.TestDrive,
		Negotiation: brief.Negotiation,
		CostToOwn:   brief.CostToOwn,
		ProTips:     brief.ProTips,
	}

	if safety != nil {
		report.Reliability.RecallCount = safety.RecallCount
		report.Reliability.ComplaintCount = safety.ComplaintCount
		report.Reliability.TopComplaintAreas = safety.TopComplaintAreas
	}

	return report
}

// reportID derives a stable identifier from the vehicle identity, so
// re-analyzing the same listing produces the same report id.
func reportID(vehicle domain.VehicleProfile) string {
	data, _ := json.Marshal(vehicle)
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])[:12]
}
