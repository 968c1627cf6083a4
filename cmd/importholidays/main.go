package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/richxcame/transport-backend/internal/holidays"
	"github.com/richxcame/transport-backend/pkg/config"
	"github.com/richxcame/transport-backend/pkg/database"
	"github.com/richxcame/transport-backend/pkg/logger"
)

func main() {
	year := flag.Int("year", 0, "calendar year to import (required)")
	country := flag.String("country", "", "country code, defaults to HOLIDAYS_COUNTRY")
	skipAPI := flag.Bool("skip-api", false, "skip the public holiday feed, import Sundays only")
	includeSundays := flag.Bool("include-sundays", true, "register every Sunday as a holiday")
	flag.Parse()

	if *year == 0 {
		fmt.Fprintln(os.Stderr, "usage: importholidays -year 2025 [-country NO] [-skip-api] [-include-sundays=false]")
		os.Exit(2)
	}

	cfg, err := config.Load("importholidays")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if *country == "" {
		*country = cfg.Holidays.Country
	}

	if err := database.Migrate(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	importer := holidays.NewImporter(
		holidays.NewNagerClient(cfg.Holidays.BaseURL, cfg.Holidays.Timeout),
		holidays.NewRepository(db),
	)

	stats, err := importer.Run(context.Background(), holidays.ImportOptions{
		Year:           *year,
		CountryCode:    *country,
		SkipAPI:        *skipAPI,
		IncludeSundays: *includeSundays,
	})
	if err != nil {
		logger.Fatal("Holiday import failed", zap.Error(err))
	}

	fmt.Printf("holidays %d (%s): created=%d skipped=%d\n", *year, *country, stats.Created, stats.Skipped)
}
