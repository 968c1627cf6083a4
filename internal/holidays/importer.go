package holidays

import (
	"context"
	"time"

	"github.com/richxcame/transport-backend/pkg/logger"
	"go.uber.org/zap"
)

// HolidaySource fetches public holidays from an external feed
type HolidaySource interface {
	PublicHolidays(ctx context.Context, year int, countryCode string) ([]PublicHoliday, error)
}

// HolidayWriter persists imported holidays without clobbering existing names
type HolidayWriter interface {
	CreateKeepName(ctx context.Context, date time.Time, name, countryCode string) (bool, error)
}

// ImportOptions controls a holiday import run
type ImportOptions struct {
	Year           int
	CountryCode    string
	SkipAPI        bool
	IncludeSundays bool
}

// ImportStats counts the outcome of an import run
type ImportStats struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// Importer loads public holidays and Sundays into the holiday table
type Importer struct {
	source HolidaySource
	writer HolidayWriter
}

// NewImporter creates a holiday importer
func NewImporter(source HolidaySource, writer HolidayWriter) *Importer {
	return &Importer{source: source, writer: writer}
}

// Run imports holidays for one calendar year. Existing entries are never
// overwritten; a feed failure is logged and the Sunday pass still runs.
func (i *Importer) Run(ctx context.Context, opts ImportOptions) (ImportStats, error) {
	var stats ImportStats
	log := logger.WithContext(ctx)

	if !opts.SkipAPI {
		entries, err := i.source.PublicHolidays(ctx, opts.Year, opts.CountryCode)
		if err != nil {
			log.Warn("public holiday feed unavailable, importing Sundays only",
				zap.Int("year", opts.Year),
				zap.String("country", opts.CountryCode),
				zap.Error(err))
		}
		for _, e := range entries {
			date, err := time.Parse("2006-01-02", e.Date)
			if err != nil {
				log.Warn("skipping malformed holiday date", zap.String("date", e.Date))
				stats.Skipped++
				continue
			}
			name := e.LocalName
			if name == "" {
				name = e.Name
			}
			created, err := i.writer.CreateKeepName(ctx, date, name, opts.CountryCode)
			if err != nil {
				return stats, err
			}
			if created {
				stats.Created++
			} else {
				stats.Skipped++
			}
		}
	}

	if opts.IncludeSundays {
		for _, date := range sundaysOfYear(opts.Year) {
			created, err := i.writer.CreateKeepName(ctx, date, "Søndag", opts.CountryCode)
			if err != nil {
				return stats, err
			}
			if created {
				stats.Created++
			} else {
				stats.Skipped++
			}
		}
	}

	return stats, nil
}

// sundaysOfYear lists every Sunday in the given year
func sundaysOfYear(year int) []time.Time {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}

	var out []time.Time
	for d.Year() == year {
		out = append(out, d)
		d = d.AddDate(0, 0, 7)
	}
	return out
}
