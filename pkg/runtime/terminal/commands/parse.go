package commands

import (
	"fmt"

	"github.com/askcarbuddy/carscout/pkg/services/listing"
	"github.com/spf13/cobra"
)

type ParseCmd struct {
	url string
}

func NewParseCmd() *cobra.Command {
	pc := &ParseCmd{}
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract vehicle details from a listing URL without running an analysis",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.url, "url", "", "Listing URL to parse")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func (pc *ParseCmd) run(cmd *cobra.Command, args []string) error {
	parsed, err := listing.ParseURL(pc.url)
	if err != nil {
		return fmt.Errorf("failed to parse listing URL: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source: %s\n", parsed.Source)
	if parsed.VIN != "" {
		fmt.Fprintf(out, "VIN: %s\n", parsed.VIN)
	}
	if parsed.Year > 0 {
		fmt.Fprintf(out, "Year: %d\n", parsed.Year)
	}
	if parsed.Make != "" {
		fmt.Fprintf(out, "Make: %s\n", parsed.Make)
	}
	if parsed.Model != "" {
		fmt.Fprintf(out, "Model: %s\n", parsed.Model)
	}

	return nil
}
