package listing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
)

var (
	pricePattern   = regexp.MustCompile(`\$(\d{1,3},?\d{3})`)
	mileagePattern = regexp.MustCompile(`(?i)(\d{1,3},?\d{3})\s*(?:mi(?:les)?|mileage|odometer)`)
	vinPattern     = regexp.MustCompile(`(?i)VIN[:\s]*([A-HJ-NPR-Z0-9]{17})`)
	ymmPattern     = regexp.MustCompile(`(20\d{2}|19\d{2})\s+([A-Z][a-zA-Z]+)\s+([A-Z][a-zA-Z0-9\-]+)`)
	trimPattern    = regexp.MustCompile(`(?i)(?:trim|package)[:\s]+([A-Za-z0-9 \-]+)`)
)

// ExtractVehicle scans raw listing-page text for structured vehicle
// fields. Best effort; anything it cannot find stays zero.
func ExtractVehicle(text string) domain.ListingInput {
	var input domain.ListingInput

	if m := pricePattern.FindStringSubmatch(text); m != nil {
		input.Price, _ = strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	}
	if m := mileagePattern.FindStringSubmatch(text); m != nil {
		input.Mileage, _ = strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	}
	if m := vinPattern.FindStringSubmatch(text); m != nil {
		input.VIN = strings.ToUpper(m[1])
	}
	if m := ymmPattern.FindStringSubmatch(text); m != nil {
		input.Year, _ = strconv.Atoi(m[1])
		input.Make = m[2]
		input.Model = m[3]
	}
	if m := trimPattern.FindStringSubmatch(text); m != nil {
		input.Trim = strings.TrimSpace(m[1])
	}

	return input
}
