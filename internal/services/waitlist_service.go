package services

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/ajharbinger/pomegranate-waitlist/internal/errors"
	"github.com/ajharbinger/pomegranate-waitlist/internal/intake"
	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
	"github.com/ajharbinger/pomegranate-waitlist/internal/repository"
	"github.com/ajharbinger/pomegranate-waitlist/internal/scoring"
)

// waitlistServiceImpl implements WaitlistService
type waitlistServiceImpl struct {
	repo      repository.WaitlistRepository
	validator *intake.Validator
	engine    *scoring.ScoringEngine
	log       logger.Logger
	now       func() time.Time
}

// NewWaitlistService creates a waitlist service. validator and engine must be
// built for the same variant.
func NewWaitlistService(repo repository.WaitlistRepository, validator *intake.Validator, engine *scoring.ScoringEngine, log logger.Logger) WaitlistService {
	return &waitlistServiceImpl{
		repo:      repo,
		validator: validator,
		engine:    engine,
		log:       log.With("service", "waitlist"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Join validates req, scores it and inserts the resulting entry
func (s *waitlistServiceImpl) Join(ctx context.Context, req *models.WaitlistRequest) (*JoinResult, error) {
	sub, err := s.validator.Validate(req)
	if err != nil {
		return nil, err
	}

	score, err := s.engine.Score(sub)
	if err != nil {
		return nil, apperrors.InternalError("failed to score submission", err).WithOperation("waitlist.join")
	}

	entry := BuildEntry(sub, score.Score, s.now())

	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.log.Info("Duplicate waitlist submission", "user_type", sub.Type)
			return nil, apperrors.DuplicateEmail(err).WithOperation("waitlist.join")
		}
		return nil, apperrors.StoreUnavailable("failed to insert waitlist entry", err).WithOperation("waitlist.join")
	}

	s.log.Info("Waitlist entry created",
		"entry_id", entry.ID.String(),
		"user_type", sub.Type,
		"policy", score.Policy,
		"interest_score", score.Score,
	)

	return &JoinResult{Entry: entry, Score: score}, nil
}

// Status looks up the entry for email. An unknown email is not an error.
func (s *waitlistServiceImpl) Status(ctx context.Context, email string) (*models.WaitlistStatus, error) {
	if email == "" {
		return nil, apperrors.MissingField("email")
	}
	normalized := intake.NormalizeEmail(email)
	if normalized == "" {
		return &models.WaitlistStatus{OnWaitlist: false}, nil
	}

	status, err := s.repo.GetStatusByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &models.WaitlistStatus{OnWaitlist: false}, nil
		}
		return nil, apperrors.InternalError("failed to look up waitlist entry", err).WithOperation("waitlist.status")
	}
	return status, nil
}

// BuildEntry assembles the stored record for a validated submission. Only the
// fields of the submission's own variant (and provider tier) are set.
func BuildEntry(sub *models.Submission, score int, createdAt time.Time) *models.WaitlistEntry {
	entry := &models.WaitlistEntry{
		Email:         intake.NormalizeEmail(sub.Email),
		School:        strings.TrimSpace(sub.School),
		UserType:      sub.Type,
		InterestScore: score,
		CreatedAt:     createdAt,
	}
	if name := strings.TrimSpace(sub.Name); name != "" {
		entry.Name = &name
	}

	switch sub.Type {
	case models.UserTypeBooker:
		b := sub.Booker
		entry.ServicesWanted = b.ServicesWanted
		entry.Budget = &b.Budget
		entry.Frequency = &b.Frequency
		if b.Timeline != "" {
			entry.Timeline = &b.Timeline
		}
	case models.UserTypeProvider:
		p := sub.Provider
		entry.ServicesOffered = p.ServicesOffered
		entry.Availability = p.Availability
		if p.Tier != "" {
			entry.ProviderTier = &p.Tier
		}
		switch {
		case p.Simple != nil:
			entry.Experience = &p.Simple.Experience
			entry.BackgroundCheck = &p.Simple.BackgroundCheck
			entry.StartDate = &p.Simple.StartDate
			entry.PortfolioLink = p.Simple.PortfolioLink
		case p.BeautySchool != nil:
			entry.BeautySchoolName = &p.BeautySchool.SchoolName
			entry.EnrollmentProofType = &p.BeautySchool.EnrollmentProof
		case p.Independent != nil:
			entry.IDVerificationConsent = &p.Independent.IDVerificationConsent
			entry.PortfolioLink = &p.Independent.PortfolioLink
			entry.BackgroundCheckConsent = &p.Independent.BackgroundCheckConsent
		}
	}

	return entry
}
