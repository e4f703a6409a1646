package commands

import (
	"context"
	"time"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/askcarbuddy/carscout/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// Analyzer runs the full analysis pipeline for one listing.
type Analyzer interface {
	Analyze(ctx context.Context, input domain.ListingInput, paid bool) (*domain.Report, error)
}

type AnalyzeCmd struct {
	url      string
	vin      string
	make     string
	model    string
	year     int
	price    int
	mileage  int
	zip      string
	paid     bool
	analyzer Analyzer
	reporter *export.Reporter
}

func NewAnalyzeCmd(analyzer Analyzer, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{analyzer: analyzer, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a car listing and print the report",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.url, "url", "", "Listing URL to analyze")
	cmd.Flags().StringVar(&ac.vin, "vin", "", "Vehicle identification number")
	cmd.Flags().StringVar(&ac.make, "make", "", "Vehicle make (e.g., Honda)")
	cmd.Flags().StringVar(&ac.model, "model", "", "Vehicle model (e.g., Civic)")
	cmd.Flags().IntVar(&ac.year, "year", 0, "Model year")
	cmd.Flags().IntVar(&ac.price, "price", 0, "Asking price in USD")
	cmd.Flags().IntVar(&ac.mileage, "mileage", 0, "Odometer reading in miles")
	cmd.Flags().StringVar(&ac.zip, "zip", "", "ZIP code for market comparables")
	cmd.Flags().BoolVar(&ac.paid, "paid", false, "Produce the full report instead of the free preview")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
	defer cancel()

	report, err := ac.analyzer.Analyze(ctx, domain.ListingInput{
		URL:     ac.url,
		VIN:     ac.vin,
		Make:    ac.make,
		Model:   ac.model,
		Year:    ac.year,
		Price:   ac.price,
		Mileage: ac.mileage,
		Zip:     ac.zip,
	}, ac.paid)
	if err != nil {
		return err
	}

	return ac.reporter.Handle(report)
}
