package domain

type ListingSource string

const (
	SourceCarsCom    ListingSource = "cars.com"
	SourceAutotrader ListingSource = "autotrader"
	SourceCarGurus   ListingSource = "cargurus"
	SourceFacebook   ListingSource = "facebook"
	SourceDealer     ListingSource = "dealer"
)

// ListingInput is everything we know about a listing before any upstream
// enrichment: fields parsed from a URL, extracted from scraped page text,
// or typed in manually. Zero values mean "unknown".
type ListingInput struct {
	URL        string
	Source     ListingSource
	VIN        string
	Year       int
	Make       string
	Model      string
	Trim       string
	Price      int
	Mileage    int
	Zip        string
	Color      string
	DealerName string
}

// FillFrom copies fields from other into l where l has no value yet.
// Existing values always win; enrichment never overwrites user input.
func (l *ListingInput) FillFrom(other ListingInput) {
	if l.VIN == "" {
		l.VIN = other.VIN
	}
	if l.Year == 0 {
		l.Year = other.Year
	}
	if l.Make == "" {
		l.Make = other.Make
	}
	if l.Model == "" {
		l.Model = other.Model
	}
	if l.Trim == "" {
		l.Trim = other.Trim
	}
	if l.Price == 0 {
		l.Price = other.Price
	}
	if l.Mileage == 0 {
		l.Mileage = other.Mileage
	}
	if l.Zip == "" {
		l.Zip = other.Zip
	}
	if l.Color == "" {
		l.Color = other.Color
	}
	if l.DealerName == "" {
		l.DealerName = other.DealerName
	}
}

// ListingPage is the raw scraped content of a listing URL.
type ListingPage struct {
	Text   string
	Images []string
}

// VehicleProfile is the resolved identity of the vehicle after URL
// parsing, scraping and VIN decode have been merged.
type VehicleProfile struct {
	Year         int
	Make         string
	Model        string
	Trim         string
	VIN          string
	Price        int
	Mileage      int
	Engine       string
	Transmission string
	Drivetrain   string
	FuelType     string
	BodyType     string
	MPGCity      int
	MPGHighway   int
	Color        string
	Zip          string
	DealerName   string
	DealerPhone  string
	Photos       []string
}
