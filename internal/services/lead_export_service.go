package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
	"github.com/ajharbinger/pomegranate-waitlist/internal/repository"
)

// ExportFormat specifies the format for exporting leads
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// ParseExportFormat accepts "csv" or "json" in any case
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// LeadExportService exports waitlist entries ranked by interest score, so the
// launch team can reach out to the most engaged people first.
type LeadExportService struct {
	repo repository.WaitlistRepository
	log  logger.Logger
}

// NewLeadExportService creates a new lead export service
func NewLeadExportService(repo repository.WaitlistRepository, log logger.Logger) *LeadExportService {
	return &LeadExportService{
		repo: repo,
		log:  log.With("service", "lead_export"),
	}
}

// csvHeader is the column order of CSV exports
var csvHeader = []string{
	"email", "name", "school", "user_type", "provider_tier", "interest_score", "joined_at",
	"services", "availability", "budget", "frequency", "timeline", "portfolio_link",
}

// Export writes the entries matching filter to w and returns how many were written
func (s *LeadExportService) Export(ctx context.Context, w io.Writer, filter models.LeadFilter, format ExportFormat) (int, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to list leads: %w", err)
	}

	switch format {
	case FormatJSON:
		err = exportToJSON(w, entries)
	case FormatCSV:
		err = exportToCSV(w, entries)
	default:
		return 0, fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return 0, err
	}

	s.log.Info("Leads exported", "count", len(entries), "format", format, "user_type", filter.UserType)
	return len(entries), nil
}

func exportToJSON(w io.Writer, entries []*models.WaitlistEntry) error {
	if entries == nil {
		entries = []*models.WaitlistEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode leads: %w", err)
	}
	return nil
}

func exportToCSV(w io.Writer, entries []*models.WaitlistEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		services := e.ServicesWanted
		if e.UserType == models.UserTypeProvider {
			services = e.ServicesOffered
		}
		record := []string{
			e.Email,
			deref(e.Name),
			e.School,
			string(e.UserType),
			deref(e.ProviderTier),
			strconv.Itoa(e.InterestScore),
			e.CreatedAt.UTC().Format(time.RFC3339),
			strings.Join(services, ";"),
			strings.Join(e.Availability, ";"),
			deref(e.Budget),
			deref(e.Frequency),
			deref(e.Timeline),
			deref(e.PortfolioLink),
		}
		for i := range record {
			record[i] = escapeFormula(record[i])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// escapeFormula prefixes cells that spreadsheet apps would evaluate as a
// formula with a single quote, so they open as plain text.
func escapeFormula(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + cell
	}
	return cell
}

func deref[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}
