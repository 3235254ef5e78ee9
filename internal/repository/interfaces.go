package repository

import (
	"context"
	"errors"

	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
)

var (
	// ErrDuplicateEmail is returned by Create when an entry with the same
	// normalized email already exists. The existing entry is left untouched.
	ErrDuplicateEmail = errors.New("waitlist entry with this email already exists")

	// ErrNotFound is returned by lookups that match no entry
	ErrNotFound = errors.New("waitlist entry not found")
)

// WaitlistRepository defines the interface for waitlist data access.
// Implementations must enforce at most one entry per email atomically.
type WaitlistRepository interface {
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	GetStatusByEmail(ctx context.Context, email string) (*models.WaitlistStatus, error)
	// List returns entries matching filter, highest score first and oldest
	// first within a score.
	List(ctx context.Context, filter models.LeadFilter) ([]*models.WaitlistEntry, error)
}

// Repositories groups all repository interfaces
type Repositories struct {
	Waitlist WaitlistRepository
}
