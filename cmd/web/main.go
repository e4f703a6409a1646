package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/askcarbuddy/carscout/pkg/server"
	"github.com/askcarbuddy/carscout/pkg/services/config"
	"github.com/askcarbuddy/carscout/pkg/services/intel"
	"github.com/askcarbuddy/carscout/pkg/services/report"
	"github.com/askcarbuddy/carscout/pkg/services/safety"
	"github.com/askcarbuddy/carscout/pkg/services/scrape"
	"github.com/askcarbuddy/carscout/pkg/services/vehicledata"
	"github.com/askcarbuddy/carscout/pkg/store/sqlite"
	reportstore "github.com/askcarbuddy/carscout/pkg/store/sqlite/report"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the CarScout web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to an optional YAML config file (environment variables take precedence)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sqlite.NewDB(sqlite.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to open report database: %w", err)
	}
	defer db.Close()

	reports, err := reportstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	assembler := report.NewAssembler(
		scrape.NewExaClient(cfg.ExaAPIKey),
		vehicledata.NewAutoDevClient(cfg.AutoDevAPIKey),
		safety.NewNHTSAClient(),
		intel.NewGroqClient(cfg.GroqAPIKey, intel.WithModel(cfg.GroqModel)),
		cfg.DefaultZip,
	)

	scheduler := cron.New()
	_, err = scheduler.AddFunc("0 3 * * *", func() {
		cutoff := time.Now().UTC().AddDate(0, 0, -cfg.ReportTTLDays)
		purged, purgeErr := reports.PurgeOlderThan(ctx, cutoff)
		if purgeErr != nil {
			logger.Error().Err(purgeErr).Msg("report purge failed")
			return
		}
		logger.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("purged expired reports")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule report purge: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Analyzer: assembler,
			Reports:  reports,
		},
	})

	return webAPI.Start()
}
