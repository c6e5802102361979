package repositories

import (
	"context"

	"github.com/johnquangdev/meetscribe/internal/domain/entities"
)

// SummaryRepository stores summaries and their email share receipts.
// Implementations assign IDs and timestamps on create and return
// entities.ErrSummaryNotFound for unknown summary IDs.
type SummaryRepository interface {
	// CreateSummary assigns ID and CreatedAt, stores and returns the record
	CreateSummary(ctx context.Context, draft *entities.Summary) (*entities.Summary, error)

	// GetSummary returns the record for id
	GetSummary(ctx context.Context, id string) (*entities.Summary, error)

	// UpdateSummary merges update into the stored record and returns the result
	UpdateSummary(ctx context.Context, id string, update entities.SummaryUpdate) (*entities.Summary, error)

	// CreateEmailShare assigns ID and SentAt, stores and returns the record
	CreateEmailShare(ctx context.Context, draft *entities.EmailShare) (*entities.EmailShare, error)

	// ListEmailSharesBySummaryID returns shares for a summary in insertion order
	ListEmailSharesBySummaryID(ctx context.Context, summaryID string) ([]*entities.EmailShare, error)
}
