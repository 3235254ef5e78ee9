package services

import (
	"context"
	"fmt"

	"github.com/ajharbinger/pomegranate-waitlist/internal/intake"
	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
	"github.com/ajharbinger/pomegranate-waitlist/internal/repository"
	"github.com/ajharbinger/pomegranate-waitlist/internal/scoring"
	"github.com/ajharbinger/pomegranate-waitlist/pkg/config"
)

// Services contains all application services
type Services struct {
	Waitlist   WaitlistService
	LeadExport *LeadExportService
}

// WaitlistService defines the interface for waitlist business logic
type WaitlistService interface {
	// Join validates, scores and stores a submission
	Join(ctx context.Context, req *models.WaitlistRequest) (*JoinResult, error)
	// Status reports whether email is on the waitlist
	Status(ctx context.Context, email string) (*models.WaitlistStatus, error)
}

// JoinResult is what a successful Join exposes to the caller
type JoinResult struct {
	Entry *models.WaitlistEntry
	Score *scoring.ScoreResult
}

// NewServices creates a new Services instance with all dependencies. The
// waitlist variant in cfg picks both the accepted form and the scoring policy.
func NewServices(repos *repository.Repositories, cfg *config.Config, log logger.Logger) (*Services, error) {
	engine, err := scoring.NewScoringEngine(cfg.WaitlistVariant)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring engine: %w", err)
	}

	return &Services{
		Waitlist:   NewWaitlistService(repos.Waitlist, intake.NewValidator(cfg.WaitlistVariant), engine, log),
		LeadExport: NewLeadExportService(repos.Waitlist, log),
	}, nil
}
