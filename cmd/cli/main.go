package main

import (
	"fmt"
	"os"

	"github.com/askcarbuddy/carscout/pkg/runtime/terminal"
	"github.com/askcarbuddy/carscout/pkg/services/config"
	"github.com/askcarbuddy/carscout/pkg/services/intel"
	"github.com/askcarbuddy/carscout/pkg/services/report"
	"github.com/askcarbuddy/carscout/pkg/services/safety"
	"github.com/askcarbuddy/carscout/pkg/services/scrape"
	"github.com/askcarbuddy/carscout/pkg/services/vehicledata"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Analyzer: report.NewAssembler(
			scrape.NewExaClient(cfg.ExaAPIKey),
			vehicledata.NewAutoDevClient(cfg.AutoDevAPIKey),
			safety.NewNHTSAClient(),
			intel.NewGroqClient(cfg.GroqAPIKey, intel.WithModel(cfg.GroqModel)),
			cfg.DefaultZip,
		),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
