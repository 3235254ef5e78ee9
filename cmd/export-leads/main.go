// Command export-leads writes waitlist entries ranked by interest score as CSV
// or JSON.
//
//	export-leads -type provider -min-score 6 -format csv -out providers.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"time"

	"github.com/joho/godotenv"

	"github.com/ajharbinger/pomegranate-waitlist/internal/database"
	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
	"github.com/ajharbinger/pomegranate-waitlist/internal/repository"
	"github.com/ajharbinger/pomegranate-waitlist/internal/services"
	"github.com/ajharbinger/pomegranate-waitlist/pkg/config"
)

func main() {
	var (
		format   = flag.String("format", "csv", "output format: csv or json")
		userType = flag.String("type", "", "only export booker or provider entries")
		tier     = flag.String("tier", "", "only export providers of this tier")
		minScore = flag.Int("min-score", 0, "minimum interest score")
		since    = flag.String("since", "", "only entries joined on or after this date (YYYY-MM-DD)")
		limit    = flag.Int("limit", 0, "maximum number of entries, 0 for all")
		out      = flag.String("out", "", "output file, stdout when empty")
	)
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()
	if !cfg.HasDatabase() {
		log.Fatal("DATABASE_URL is required to export leads")
	}

	exportFormat, err := services.ParseExportFormat(*format)
	if err != nil {
		log.Fatal(err)
	}

	filter, err := buildFilter(*userType, *tier, *minScore, *since, *limit)
	if err != nil {
		log.Fatal(err)
	}

	appLog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer appLog.Sync()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			appLog.Fatal("Failed to create output file", err, "path", *out)
		}
		defer f.Close()
		w = f
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	exporter := services.NewLeadExportService(repository.NewRepositories(db.DB).Waitlist, appLog)
	if _, err := exporter.Export(ctx, w, filter, exportFormat); err != nil {
		appLog.Fatal("Export failed", err)
	}
}

// buildFilter checks the command line filters against the known enums so a
// typo fails loudly instead of exporting nothing.
func buildFilter(userType, tier string, minScore int, since string, limit int) (models.LeadFilter, error) {
	filter := models.LeadFilter{
		UserType:     models.UserType(userType),
		ProviderTier: models.ProviderTier(tier),
		MinScore:     minScore,
		Limit:        limit,
	}

	switch filter.UserType {
	case "", models.UserTypeBooker, models.UserTypeProvider:
	default:
		return filter, fmt.Errorf("invalid -type %q: want %s or %s", userType, models.UserTypeBooker, models.UserTypeProvider)
	}
	if filter.ProviderTier != "" {
		if !slices.Contains(models.ProviderTiers, filter.ProviderTier) {
			return filter, fmt.Errorf("invalid -tier %q: want one of %v", tier, models.ProviderTiers)
		}
		if filter.UserType == models.UserTypeBooker {
			return filter, fmt.Errorf("-tier only applies to providers")
		}
	}
	if minScore < 0 {
		return filter, fmt.Errorf("invalid -min-score %d: must not be negative", minScore)
	}
	if limit < 0 {
		return filter, fmt.Errorf("invalid -limit %d: must not be negative", limit)
	}

	if since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			return filter, fmt.Errorf("invalid -since %q: %w", since, err)
		}
		filter.JoinedAfter = &t
	}
	return filter, nil
}
