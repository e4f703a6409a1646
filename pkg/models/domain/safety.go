package domain

type Recall struct {
	Component   string
	Summary     string
	Consequence string
	Remedy      string
}

type ComplaintArea struct {
	Component string
	Count     int
}

// SafetyRecord holds NHTSA recalls and complaints for a year/make/model.
type SafetyRecord struct {
	RecallCount       int
	Recalls           []Recall
	ComplaintCount    int
	TopComplaintAreas []ComplaintArea
}
