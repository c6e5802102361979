package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meetscribe/internal/domain/entities"
	repo "github.com/johnquangdev/meetscribe/internal/domain/repositories"
)

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a summary repository backed by GORM
func NewSummaryRepository(db *gorm.DB) repo.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) CreateSummary(ctx context.Context, draft *entities.Summary) (*entities.Summary, error) {
	if draft == nil {
		return nil, entities.ErrInvalidSummary
	}

	s := draft.Clone()
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, fmt.Errorf("failed to create summary: %w", err)
	}
	return s, nil
}

func (r *summaryRepository) GetSummary(ctx context.Context, id string) (*entities.Summary, error) {
	var s entities.Summary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	return &s, nil
}

func (r *summaryRepository) UpdateSummary(ctx context.Context, id string, update entities.SummaryUpdate) (*entities.Summary, error) {
	var merged entities.Summary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&merged).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entities.ErrSummaryNotFound
			}
			return err
		}

		update.Apply(&merged)

		return tx.Model(&entities.Summary{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"edited_summary": merged.EditedSummary,
			}).Error
	})
	if err != nil {
		if errors.Is(err, entities.ErrSummaryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update summary: %w", err)
	}
	return &merged, nil
}

func (r *summaryRepository) CreateEmailShare(ctx context.Context, draft *entities.EmailShare) (*entities.EmailShare, error) {
	if draft == nil {
		return nil, entities.ErrInvalidShare
	}

	e := draft.Clone()
	e.ID = uuid.NewString()
	e.SentAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, fmt.Errorf("failed to create email share: %w", err)
	}
	return e, nil
}

func (r *summaryRepository) ListEmailSharesBySummaryID(ctx context.Context, summaryID string) ([]*entities.EmailShare, error) {
	var shares []*entities.EmailShare
	if err := r.db.WithContext(ctx).
		Where("summary_id = ?", summaryID).
		Order("sent_at ASC").
		Find(&shares).Error; err != nil {
		return nil, fmt.Errorf("failed to list email shares: %w", err)
	}
	return shares, nil
}
