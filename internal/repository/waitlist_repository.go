package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

// dbExecutor is an interface that both *sql.DB and *sql.Tx implement
type dbExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// waitlistRepository implements WaitlistRepository on Postgres
type waitlistRepository struct {
	db dbExecutor
}

// NewWaitlistRepository creates a new Postgres-backed waitlist repository
func NewWaitlistRepository(db dbExecutor) WaitlistRepository {
	return &waitlistRepository{db: db}
}

// NewRepositories creates a new repository collection
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Waitlist: NewWaitlistRepository(db),
	}
}

// Create inserts a new waitlist entry. The unique index on email decides
// duplicates; there is no existence check beforehand.
func (r *waitlistRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	query := `
		INSERT INTO waitlist (
			id, email, name, school, user_type, interest_score, created_at,
			services_wanted, budget, frequency, timeline,
			provider_tier, services_offered, availability, portfolio_link,
			experience, background_check, start_date,
			beauty_school_name, enrollment_proof_type,
			id_verification_consent, background_check_consent
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18,
			$19, $20,
			$21, $22
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Email, entry.Name, entry.School, string(entry.UserType), entry.InterestScore, entry.CreatedAt,
		nullableArray(entry.ServicesWanted), entry.Budget, entry.Frequency, entry.Timeline,
		entry.ProviderTier, nullableArray(entry.ServicesOffered), nullableArray(entry.Availability), entry.PortfolioLink,
		entry.Experience, entry.BackgroundCheck, entry.StartDate,
		entry.BeautySchoolName, entry.EnrollmentProofType,
		entry.IDVerificationConsent, entry.BackgroundCheckConsent,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create waitlist entry: %w", err)
	}

	return nil
}

// GetStatusByEmail retrieves the read-path projection of an entry
func (r *waitlistRepository) GetStatusByEmail(ctx context.Context, email string) (*models.WaitlistStatus, error) {
	query := `
		SELECT user_type, provider_tier, created_at
		FROM waitlist WHERE email = $1
	`

	var (
		userType     string
		providerTier sql.NullString
		createdAt    sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, email).Scan(&userType, &providerTier, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get waitlist entry: %w", err)
	}

	status := &models.WaitlistStatus{
		OnWaitlist: true,
		UserType:   models.UserType(userType),
	}
	if providerTier.Valid {
		tier := models.ProviderTier(providerTier.String)
		status.ProviderTier = &tier
	}
	if createdAt.Valid {
		joined := createdAt.Time
		status.JoinedAt = &joined
	}
	return status, nil
}

// List returns entries matching filter for lead export
func (r *waitlistRepository) List(ctx context.Context, filter models.LeadFilter) ([]*models.WaitlistEntry, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.WaitlistEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan waitlist entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate waitlist entries: %w", err)
	}
	return entries, nil
}

// buildListQuery constructs the SELECT for filter
func buildListQuery(filter models.LeadFilter) (string, []interface{}) {
	query := `
		SELECT
			id, email, name, school, user_type, interest_score, created_at,
			services_wanted, budget, frequency, timeline,
			provider_tier, services_offered, availability, portfolio_link,
			experience, background_check, start_date,
			beauty_school_name, enrollment_proof_type,
			id_verification_consent, background_check_consent
		FROM waitlist
	`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.UserType != "" {
		conditions = append(conditions, fmt.Sprintf("user_type = $%d", argIndex))
		args = append(args, string(filter.UserType))
		argIndex++
	}
	if filter.ProviderTier != "" {
		conditions = append(conditions, fmt.Sprintf("provider_tier = $%d", argIndex))
		args = append(args, string(filter.ProviderTier))
		argIndex++
	}
	if filter.MinScore > 0 {
		conditions = append(conditions, fmt.Sprintf("interest_score >= $%d", argIndex))
		args = append(args, filter.MinScore)
		argIndex++
	}
	if filter.JoinedAfter != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIndex))
		args = append(args, *filter.JoinedAfter)
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY interest_score DESC, created_at ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	return query, args
}

// scanEntry scans a row selected by buildListQuery
func scanEntry(rows *sql.Rows) (*models.WaitlistEntry, error) {
	var (
		entry                                                   models.WaitlistEntry
		userType                                                string
		name, portfolioLink, beautySchoolName                   sql.NullString
		budget, frequency, timeline, providerTier               sql.NullString
		experience, backgroundCheck, startDate, enrollmentProof sql.NullString
		idVerificationConsent, backgroundCheckConsent           sql.NullBool
	)

	err := rows.Scan(
		&entry.ID, &entry.Email, &name, &entry.School, &userType, &entry.InterestScore, &entry.CreatedAt,
		pq.Array(&entry.ServicesWanted), &budget, &frequency, &timeline,
		&providerTier, pq.Array(&entry.ServicesOffered), pq.Array(&entry.Availability), &portfolioLink,
		&experience, &backgroundCheck, &startDate,
		&beautySchoolName, &enrollmentProof,
		&idVerificationConsent, &backgroundCheckConsent,
	)
	if err != nil {
		return nil, err
	}

	entry.UserType = models.UserType(userType)
	entry.Name = nullString[string](name)
	entry.PortfolioLink = nullString[string](portfolioLink)
	entry.BeautySchoolName = nullString[string](beautySchoolName)
	entry.Budget = nullString[models.Budget](budget)
	entry.Frequency = nullString[models.Frequency](frequency)
	entry.Timeline = nullString[models.Timeline](timeline)
	entry.ProviderTier = nullString[models.ProviderTier](providerTier)
	entry.Experience = nullString[models.Experience](experience)
	entry.BackgroundCheck = nullString[models.BackgroundCheck](backgroundCheck)
	entry.StartDate = nullString[models.StartDate](startDate)
	entry.EnrollmentProofType = nullString[models.EnrollmentProofType](enrollmentProof)
	if idVerificationConsent.Valid {
		entry.IDVerificationConsent = &idVerificationConsent.Bool
	}
	if backgroundCheckConsent.Valid {
		entry.BackgroundCheckConsent = &backgroundCheckConsent.Bool
	}

	return &entry, nil
}

func nullString[T ~string](ns sql.NullString) *T {
	if !ns.Valid {
		return nil
	}
	v := T(ns.String)
	return &v
}

// nullableArray keeps nil slices as SQL NULL instead of an empty array
func nullableArray(values []string) interface{} {
	if values == nil {
		return nil
	}
	return pq.Array(values)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
