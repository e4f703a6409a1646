package domain

import "time"

type Tier string

const (
	TierFree Tier = "free"
	TierPaid Tier = "paid"
)

type PricePosition string

const (
	PriceBelowMarket PricePosition = "below_market"
	PriceCompetitive PricePosition = "competitive"
	PriceAtMarket    PricePosition = "market_price"
	PriceAboveMarket PricePosition = "above_market"
)

type BuyScore struct {
	Score    int // 1-10
	Label    string
	OneLiner string
}

type AtAGlance struct {
	BestThing       string
	KnowBeforeYouGo string
}

type MarketPosition struct {
	Summary       string
	PricePosition PricePosition
	ValueFactors  []string
	Comps         *MarketComps
}

type IssueSeverity string

const (
	SeverityMinorQuirk    IssueSeverity = "minor_quirk"
	SeverityWorthChecking IssueSeverity = "worth_checking"
	SeverityImportant     IssueSeverity = "important"
	SeveritySerious       IssueSeverity = "serious"
)

type KnownIssue struct {
	Item     string
	Severity IssueSeverity
	Context  string
	WhatToDo string
}

type MaintenanceItem struct {
	Service     string
	TypicalCost string
	Urgency     string
}

type ReliabilityIntel struct {
	GenerationOverview string
	KnownIssues        []KnownIssue
	Maintenance        []MaintenanceItem
	RecallCount        int
	ComplaintCount     int
	TopComplaintAreas  []ComplaintArea
}

type SmartQuestion struct {
	Ask      string
	Why      string
	GoodSign string
	HeadsUp  string
}

type NegotiationStrategy struct {
	ExpectedOTD    string
	FeesToExpect   []string
	FeesToQuestion []string
	FinancingTip   string
}

type CostToOwn struct {
	MonthlyFuel       string
	AnnualInsurance   string
	AnnualMaintenance string
	TotalAnnual       string
	Verdict           string
}

// Brief is the LLM-generated portion of a report, before market and
// safety numbers are merged in.
type Brief struct {
	Score              BuyScore
	Glance             AtAGlance
	MarketSummary      string
	PricePosition      PricePosition
	ValueFactors       []string
	GenerationOverview string
	KnownIssues        []KnownIssue
	Maintenance        []MaintenanceItem
	PrepSteps          []string
	SmartQuestions     []SmartQuestion
	TestDrive          []string
	Negotiation        *NegotiationStrategy
	CostToOwn          *CostToOwn
	ProTips            []string
}

// Report is the assembled buying brief for one listing. Produced once
// per request; the free tier is a strict field subset of the paid tier.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Tier        Tier
	Vehicle     VehicleProfile
	Score       BuyScore
	Glance      AtAGlance
	Market      MarketPosition
	Reliability ReliabilityIntel
	Questions   []SmartQuestion
	PrepSteps   []string
	TestDrive   []string
	Negotiation *NegotiationStrategy
	CostToOwn   *CostToOwn
	ProTips     []string
}
