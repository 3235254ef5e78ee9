package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
)

// MemoryRepository is an in-process WaitlistRepository used by tests and by
// development servers started without DATABASE_URL.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[string]models.WaitlistEntry
	err     error
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string]models.WaitlistEntry)}
}

// WithError makes every subsequent call fail with err
func (m *MemoryRepository) WithError(err error) *MemoryRepository {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Create stores entry unless its email is already present
func (m *MemoryRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	if _, exists := m.entries[entry.Email]; exists {
		return ErrDuplicateEmail
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.entries[entry.Email] = *entry
	return nil
}

// GetStatusByEmail returns the status of the entry stored under email
func (m *MemoryRepository) GetStatusByEmail(ctx context.Context, email string) (*models.WaitlistStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	entry, ok := m.entries[email]
	if !ok {
		return nil, ErrNotFound
	}
	joined := entry.CreatedAt
	return &models.WaitlistStatus{
		OnWaitlist:   true,
		UserType:     entry.UserType,
		ProviderTier: entry.ProviderTier,
		JoinedAt:     &joined,
	}, nil
}

// List returns copies of the entries matching filter
func (m *MemoryRepository) List(ctx context.Context, filter models.LeadFilter) ([]*models.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	var entries []*models.WaitlistEntry
	for _, entry := range m.entries {
		if !matches(entry, filter) {
			continue
		}
		e := entry
		entries = append(entries, &e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].InterestScore != entries[j].InterestScore {
			return entries[i].InterestScore > entries[j].InterestScore
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}
	return entries, nil
}

func matches(entry models.WaitlistEntry, filter models.LeadFilter) bool {
	if filter.UserType != "" && entry.UserType != filter.UserType {
		return false
	}
	if filter.ProviderTier != "" && (entry.ProviderTier == nil || *entry.ProviderTier != filter.ProviderTier) {
		return false
	}
	if entry.InterestScore < filter.MinScore {
		return false
	}
	if filter.JoinedAfter != nil && entry.CreatedAt.Before(*filter.JoinedAfter) {
		return false
	}
	return true
}

// Get returns a copy of the stored entry, for assertions in tests
func (m *MemoryRepository) Get(email string) (models.WaitlistEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[email]
	return entry, ok
}

// Len returns the number of stored entries
func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
