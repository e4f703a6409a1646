package adapters

import (
	"github.com/askcarbuddy/carscout/pkg/models/api"
	"github.com/askcarbuddy/carscout/pkg/models/domain"
)

func MapListingInputDomainToApi(input domain.ListingInput) api.ParsedListing {
	return api.ParsedListing{
		URL:    input.URL,
		Source: string(input.Source),
		VIN:    input.VIN,
		Year:   input.Year,
		Make:   input.Make,
		Model:  input.Model,
	}
}

func MapAnalyzeRequestApiToDomain(req api.AnalyzeRequest) domain.ListingInput {
	return domain.ListingInput{
		URL:        req.URL,
		VIN:        req.VIN,
		Year:       req.Year,
		Make:       req.Make,
		Model:      req.Model,
		Trim:       req.Trim,
		Price:      req.Price,
		Mileage:    req.Mileage,
		Zip:        req.Zip,
		Color:      req.Color,
		DealerName: req.DealerName,
	}
}

func MapVehicleDomainToApi(v domain.VehicleProfile) api.Vehicle {
	return api.Vehicle{
		Year:         v.Year,
		Make:         v.Make,
		Model:        v.Model,
		Trim:         v.Trim,
		VIN:          v.VIN,
		Price:        v.Price,
		Mileage:      v.Mileage,
		Engine:       v.Engine,
		Transmission: v.Transmission,
		Drivetrain:   v.Drivetrain,
		FuelType:     v.FuelType,
		BodyType:     v.BodyType,
		MPGCity:      v.MPGCity,
		MPGHighway:   v.MPGHighway,
		Color:        v.Color,
		DealerName:   v.DealerName,
		DealerPhone:  v.DealerPhone,
		Photos:       v.Photos,
	}
}

func MapCompsDomainToApi(c *domain.MarketComps) *api.MarketComps {
	if c == nil {
		return nil
	}
	return &api.MarketComps{
		AvgPrice:    c.AvgPrice,
		MinPrice:    c.MinPrice,
		MaxPrice:    c.MaxPrice,
		Percentile:  c.Percentile,
		CompCount:   c.CompCount,
		TotalMarket: c.TotalMarket,
		DemandScore: c.DemandScore,
		SpreadPct:   c.SpreadPct,
		PriceSample: c.PriceSample,
	}
}

func MapReportDomainToApi(r domain.Report) api.Report {
	report := api.Report{
		ID:          r.ID,
		GeneratedAt: r.GeneratedAt,
		Tier:        string(r.Tier),
		Vehicle:     MapVehicleDomainToApi(r.Vehicle),
		Score: api.BuyScore{
			Score:    r.Score.Score,
			Label:    r.Score.Label,
			OneLiner: r.Score.OneLiner,
		},
		Glance: api.AtAGlance{
			BestThing:       r.Glance.BestThing,
			KnowBeforeYouGo: r.Glance.KnowBeforeYouGo,
		},
		Market: api.MarketPosition{
			Summary:       r.Market.Summary,
			PricePosition: string(r.Market.PricePosition),
			ValueFactors:  r.Market.ValueFactors,
			Comps:         MapCompsDomainToApi(r.Market.Comps),
		},
		Reliability: api.ReliabilityIntel{
			GenerationOverview: r.Reliability.GenerationOverview,
			RecallCount:        r.Reliability.RecallCount,
			ComplaintCount:     r.Reliability.ComplaintCount,
		},
		PrepSteps: r.PrepSteps,
		TestDrive: r.TestDrive,
		ProTips:   r.ProTips,
	}

	for _, issue := range r.Reliability.KnownIssues {
		report.Reliability.KnownIssues = append(report.Reliability.KnownIssues, api.KnownIssue{
			Item:     issue.Item,
			Severity: string(issue.Severity),
			Context:  issue.Context,
			WhatToDo: issue.WhatToDo,
		})
	}
	for _, item := range r.Reliability.Maintenance {
		report.Reliability.Maintenance = append(report.Reliability.Maintenance, api.MaintenanceItem{
			Service:     item.Service,
			TypicalCost: item.TypicalCost,
			Urgency:     item.Urgency,
		})
	}
	for _, area := range r.Reliability.TopComplaintAreas {
		report.Reliability.TopComplaintAreas = append(report.Reliability.TopComplaintAreas, api.ComplaintArea{
			Component: area.Component,
			Count:     area.Count,
		})
	}
	for _, q := range r.Questions {
		report.Questions = append(report.Questions, api.SmartQuestion{
			Ask:      q.Ask,
			Why:      q.Why,
			GoodSign: q.GoodSign,
			HeadsUp:  q.HeadsUp,
		})
	}
	if r.Negotiation != nil {
		report.Negotiation = &api.NegotiationStrategy{
			ExpectedOTD:    r.Negotiation.ExpectedOTD,
			FeesToExpect:   r.Negotiation.FeesToExpect,
			FeesToQuestion: r.Negotiation.FeesToQuestion,
			FinancingTip:   r.Negotiation.FinancingTip,
		}
	}
	if r.CostToOwn != nil {
		report.CostToOwn = &api.CostToOwn{
			MonthlyFuel:       r.CostToOwn.MonthlyFuel,
			AnnualInsurance:   r.CostToOwn.AnnualInsurance,
			AnnualMaintenance: r.CostToOwn.AnnualMaintenance,
			TotalAnnual:       r.CostToOwn.TotalAnnual,
			Verdict:           r.CostToOwn.Verdict,
		}
	}

	return report
}
