package listing

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
)

// VIN characters exclude I, O and Q.
var (
	carsComVIN    = regexp.MustCompile(`(?i)/detail/([A-HJ-NPR-Z0-9]{17})`)
	carsComYMM    = regexp.MustCompile(`(?i)/(\d{4})[-_]([a-z]+)[-_]([a-z0-9]+)`)
	autotraderVIN = regexp.MustCompile(`(?i)/([A-HJ-NPR-Z0-9]{17})`)
	cargurusVIN   = regexp.MustCompile(`(?i)[#/]([A-HJ-NPR-Z0-9]{17})`)
	dealerVIN     = regexp.MustCompile(`(?i)[/=]([A-HJ-NPR-Z0-9]{17})(?:[/&?.]|$)`)
)

// ParseURL extracts vehicle details from a listing URL by matching the
// URL shapes of known listing sites. Unknown hosts fall back to treating
// the page as a dealer site and scanning for an embedded VIN.
func ParseURL(rawURL string) (domain.ListingInput, error) {
	rawURL = strings.TrimSpace(rawURL)
	input := domain.ListingInput{URL: rawURL}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return input, fmt.Errorf("%w: unrecognized listing URL %q", domain.ErrInvalidInput, rawURL)
	}

	switch {
	case strings.Contains(rawURL, "cars.com"):
		input.Source = domain.SourceCarsCom
		if m := carsComVIN.FindStringSubmatch(rawURL); m != nil {
			input.VIN = strings.ToUpper(m[1])
		}
		if m := carsComYMM.FindStringSubmatch(rawURL); m != nil {
			input.Year, _ = strconv.Atoi(m[1])
			input.Make = titleCase(m[2])
			input.Model = titleCase(m[3])
		}
	case strings.Contains(rawURL, "autotrader.com"):
		input.Source = domain.SourceAutotrader
		if m := autotraderVIN.FindStringSubmatch(rawURL); m != nil {
			input.VIN = strings.ToUpper(m[1])
		}
	case strings.Contains(rawURL, "cargurus.com"):
		input.Source = domain.SourceCarGurus
		if m := cargurusVIN.FindStringSubmatch(rawURL); m != nil {
			input.VIN = strings.ToUpper(m[1])
		}
	case strings.Contains(rawURL, "facebook.com/marketplace"):
		input.Source = domain.SourceFacebook
	default:
		input.Source = domain.SourceDealer
		if m := dealerVIN.FindStringSubmatch(rawURL); m != nil {
			input.VIN = strings.ToUpper(m[1])
		}
	}

	return input, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
