package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meetscribe/internal/domain/entities"
	repo "github.com/johnquangdev/meetscribe/internal/domain/repositories"
)

// MemorySummaryRepository keeps summaries and shares in process memory.
// Records are lost on restart and never expire.
type MemorySummaryRepository struct {
	mu        sync.RWMutex
	summaries map[string]*entities.Summary
	shares    map[string][]*entities.EmailShare
	now       func() time.Time
}

var _ repo.SummaryRepository = (*MemorySummaryRepository)(nil)

// NewMemorySummaryRepository creates an empty in-memory store
func NewMemorySummaryRepository() *MemorySummaryRepository {
	return &MemorySummaryRepository{
		summaries: make(map[string]*entities.Summary),
		shares:    make(map[string][]*entities.EmailShare),
		now:       time.Now,
	}
}

func (r *MemorySummaryRepository) CreateSummary(_ context.Context, draft *entities.Summary) (*entities.Summary, error) {
	if draft == nil {
		return nil, entities.ErrInvalidSummary
	}

	s := draft.Clone()
	s.ID = uuid.NewString()
	s.CreatedAt = r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.summaries[s.ID] = s
	return s.Clone(), nil
}

func (r *MemorySummaryRepository) GetSummary(_ context.Context, id string) (*entities.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.summaries[id]
	if !ok {
		return nil, entities.ErrSummaryNotFound
	}
	return s.Clone(), nil
}

func (r *MemorySummaryRepository) UpdateSummary(_ context.Context, id string, update entities.SummaryUpdate) (*entities.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.summaries[id]
	if !ok {
		return nil, entities.ErrSummaryNotFound
	}

	merged := existing.Clone()
	update.Apply(merged)
	r.summaries[id] = merged
	return merged.Clone(), nil
}

func (r *MemorySummaryRepository) CreateEmailShare(_ context.Context, draft *entities.EmailShare) (*entities.EmailShare, error) {
	if draft == nil {
		return nil, entities.ErrInvalidShare
	}

	e := draft.Clone()
	e.ID = uuid.NewString()
	e.SentAt = r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.shares[e.SummaryID] = append(r.shares[e.SummaryID], e)
	return e.Clone(), nil
}

func (r *MemorySummaryRepository) ListEmailSharesBySummaryID(_ context.Context, summaryID string) ([]*entities.EmailShare, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.shares[summaryID]
	out := make([]*entities.EmailShare, 0, len(list))
	for _, e := range list {
		out = append(out, e.Clone())
	}
	return out, nil
}

// Len returns the number of stored summaries
func (r *MemorySummaryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.summaries)
}
