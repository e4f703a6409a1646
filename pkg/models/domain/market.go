package domain

// CompsQuery selects comparable listings for a vehicle.
type CompsQuery struct {
	Year         int
	Make         string
	Model        string
	Trim         string
	Zip          string
	ListingPrice int
}

// MarketComps summarizes comparable listings pulled for one request.
// Recomputed every time; never persisted.
type MarketComps struct {
	AvgPrice    int
	MinPrice    int
	MaxPrice    int
	Percentile  *int // of ListingPrice within comps; nil when no price given
	CompCount   int
	TotalMarket int
	DemandScore int // 1-10, derived from total market size
	SpreadPct   int // (max-min)/avg as a percentage
	PriceSample []int
}
