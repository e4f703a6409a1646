package api

import "time"

// AnalyzeRequest is the body of POST /api/analyze. Either URL or
// make+model must be present.
type AnalyzeRequest struct {
	URL        string `json:"url,omitempty"`
	VIN        string `json:"vin,omitempty"`
	Year       int    `json:"year,omitempty"`
	Make       string `json:"make,omitempty"`
	Model      string `json:"model,omitempty"`
	Trim       string `json:"trim,omitempty"`
	Price      int    `json:"price,omitempty"`
	Mileage    int    `json:"mileage,omitempty"`
	Zip        string `json:"zip,omitempty"`
	Color      string `json:"color,omitempty"`
	DealerName string `json:"dealer_name,omitempty"`
	Paid       bool   `json:"paid,omitempty"`
}

type ParseURLRequest struct {
	URL string `json:"url"`
}

type ParsedListing struct {
	URL    string `json:"url"`
	Source string `json:"source"`
	VIN    string `json:"vin,omitempty"`
	Year   int    `json:"year,omitempty"`
	Make   string `json:"make,omitempty"`
	Model  string `json:"model,omitempty"`
}

type Vehicle struct {
	Year         int      `json:"year,omitempty"`
	Make         string   `json:"make,omitempty"`
	Model        string   `json:"model,omitempty"`
	Trim         string   `json:"trim,omitempty"`
	VIN          string   `json:"vin,omitempty"`
	Price        int      `json:"price,omitempty"`
	Mileage      int      `json:"mileage,omitempty"`
	Engine       string   `json:"engine,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	Drivetrain   string   `json:"drivetrain,omitempty"`
	FuelType     string   `json:"fuel_type,omitempty"`
	BodyType     string   `json:"body_type,omitempty"`
	MPGCity      int      `json:"mpg_city,omitempty"`
	MPGHighway   int      `json:"mpg_highway,omitempty"`
	Color        string   `json:"color,omitempty"`
	DealerName   string   `json:"dealer_name,omitempty"`
	DealerPhone  string   `json:"dealer_phone,omitempty"`
	Photos       []string `json:"photos,omitempty"`
}

type BuyScore struct {
	Score    int    `json:"score"`
	Label    string `json:"label"`
	OneLiner string `json:"one_liner"`
}

type AtAGlance struct {
	BestThing       string `json:"best_thing"`
	KnowBeforeYouGo string `json:"know_before_you_go"`
}

type MarketComps struct {
	AvgPrice    int   `json:"avg_price"`
	MinPrice    int   `json:"min_price"`
	MaxPrice    int   `json:"max_price"`
	Percentile  *int  `json:"percentile,omitempty"`
	CompCount   int   `json:"comp_count"`
	TotalMarket int   `json:"total_market"`
	DemandScore int   `json:"demand_score"`
	SpreadPct   int   `json:"price_spread"`
	PriceSample []int `json:"prices_sample,omitempty"`
}

type MarketPosition struct {
	Summary       string       `json:"summary"`
	PricePosition string       `json:"price_position"`
	ValueFactors  []string     `json:"value_factors,omitempty"`
	Comps         *MarketComps `json:"comps,omitempty"`
}

type KnownIssue struct {
	Item     string `json:"item"`
	Severity string `json:"severity"`
	Context  string `json:"context"`
	WhatToDo string `json:"what_to_do"`
}

type MaintenanceItem struct {
	Service     string `json:"service"`
	TypicalCost string `json:"typical_cost"`
	Urgency     string `json:"urgency"`
}

type ComplaintArea struct {
	Component string `json:"component"`
	Count     int    `json:"count"`
}

type ReliabilityIntel struct {
	GenerationOverview string            `json:"generation_overview,omitempty"`
	KnownIssues        []KnownIssue      `json:"known_issues,omitempty"`
	Maintenance        []MaintenanceItem `json:"maintenance_upcoming,omitempty"`
	RecallCount        int               `json:"recall_count"`
	ComplaintCount     int               `json:"complaint_count"`
	TopComplaintAreas  []ComplaintArea   `json:"top_complaint_areas,omitempty"`
}

type SmartQuestion struct {
	Ask      string `json:"ask"`
	Why      string `json:"why"`
	GoodSign string `json:"good_sign"`
	HeadsUp  string `json:"heads_up"`
}

type NegotiationStrategy struct {
	ExpectedOTD    string   `json:"expected_otd"`
	FeesToExpect   []string `json:"fees_to_expect,omitempty"`
	FeesToQuestion []string `json:"fees_to_question,omitempty"`
	FinancingTip   string   `json:"financing_tip"`
}

type CostToOwn struct {
	MonthlyFuel       string `json:"monthly_fuel"`
	AnnualInsurance   string `json:"annual_insurance_range"`
	AnnualMaintenance string `json:"annual_maintenance"`
	TotalAnnual       string `json:"total_annual_estimate"`
	Verdict           string `json:"ownership_verdict"`
}

type Report struct {
	ID          string               `json:"report_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Tier        string               `json:"tier"`
	Vehicle     Vehicle              `json:"vehicle"`
	Score       BuyScore             `json:"buy_score"`
	Glance      AtAGlance            `json:"at_a_glance"`
	Market      MarketPosition       `json:"market_position"`
	Reliability ReliabilityIntel     `json:"reliability_intel"`
	Questions   []SmartQuestion      `json:"smart_questions,omitempty"`
	PrepSteps   []string             `json:"before_you_visit,omitempty"`
	TestDrive   []string             `json:"on_the_test_drive,omitempty"`
	Negotiation *NegotiationStrategy `json:"negotiation_strategy,omitempty"`
	CostToOwn   *CostToOwn           `json:"cost_to_own,omitempty"`
	ProTips     []string             `json:"pro_tips,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
