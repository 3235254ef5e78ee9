package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
	"github.com/ajharbinger/pomegranate-waitlist/internal/repository"
	"github.com/ajharbinger/pomegranate-waitlist/pkg/config"
)

func seededRepo(t *testing.T) *repository.MemoryRepository {
	t.Helper()
	repo := repository.NewMemoryRepository()
	svc := newTestService(t, config.VariantTiered, repo)
	ctx := context.Background()

	low := bookerRequest("low@campus.edu")
	low.ServicesWanted = []string{"waxing"}
	low.Budget = "under25"
	low.Frequency = "occasionally"
	_, err := svc.Join(ctx, low)
	require.NoError(t, err)

	_, err = svc.Join(ctx, bookerRequest("high@campus.edu"))
	require.NoError(t, err)
	return repo
}

func TestLeadExport_CSV(t *testing.T) {
	exporter := NewLeadExportService(seededRepo(t), logger.NewNop())

	var buf bytes.Buffer
	n, err := exporter.Export(context.Background(), &buf, models.LeadFilter{}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "high@campus.edu", rows[1][0], "highest score first")
	assert.Equal(t, "hair;nails", rows[1][7])
	assert.Equal(t, "low@campus.edu", rows[2][0])
	assert.Equal(t, "1", rows[2][5])
}

func TestLeadExport_CSVNeutralizesFormulas(t *testing.T) {
	repo := repository.NewMemoryRepository()
	name := `=HYPERLINK("http://evil","x")`
	link := "@SUM(A1:A9)"
	require.NoError(t, repo.Create(context.Background(), &models.WaitlistEntry{
		Email:         "a@b.co",
		Name:          &name,
		School:        "=1+1",
		UserType:      models.UserTypeProvider,
		InterestScore: 3,
		CreatedAt:     fixedNow,
		PortfolioLink: &link,
	}))

	var buf bytes.Buffer
	_, err := NewLeadExportService(repo, logger.NewNop()).Export(context.Background(), &buf, models.LeadFilter{}, FormatCSV)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a@b.co", rows[1][0])
	assert.Equal(t, `'=HYPERLINK("http://evil","x")`, rows[1][1])
	assert.Equal(t, "'=1+1", rows[1][2])
	assert.Equal(t, "'@SUM(A1:A9)", rows[1][12])
}

func TestEscapeFormula(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "State University", want: "State University"},
		{in: "-5", want: "'-5"},
		{in: "+1 555", want: "'+1 555"},
		{in: "\tcmd", want: "'\tcmd"},
		{in: "\rcmd", want: "'\rcmd"},
		{in: "jane@campus.edu", want: "jane@campus.edu"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeFormula(tt.in), "input %q", tt.in)
	}
}

func TestLeadExport_JSONWithFilter(t *testing.T) {
	exporter := NewLeadExportService(seededRepo(t), logger.NewNop())

	var buf bytes.Buffer
	n, err := exporter.Export(context.Background(), &buf, models.LeadFilter{MinScore: 2}, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var entries []models.WaitlistEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "high@campus.edu", entries[0].Email)

	buf.Reset()
	_, err = exporter.Export(context.Background(), &buf, models.LeadFilter{UserType: models.UserTypeProvider}, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, buf.String())
}

func TestLeadExport_Errors(t *testing.T) {
	exporter := NewLeadExportService(repository.NewMemoryRepository().WithError(errors.New("down")), logger.NewNop())
	_, err := exporter.Export(context.Background(), &bytes.Buffer{}, models.LeadFilter{}, FormatCSV)
	assert.Error(t, err)

	_, err = ParseExportFormat("xlsx")
	assert.Error(t, err)
	f, err := ParseExportFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
}
