package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meetscribe/internal/domain/entities"
	repo "github.com/johnquangdev/meetscribe/internal/domain/repositories"
)

const redisKeyPrefix = "meetscribe:summary:"

// maxUpdateAttempts bounds optimistic-lock retries on concurrent edits
const maxUpdateAttempts = 5

type redisSummaryRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryRepository creates a summary repository backed by Redis.
// A zero ttl keeps records until they are deleted out of band.
func NewRedisSummaryRepository(client *redis.Client, ttl time.Duration) repo.SummaryRepository {
	return &redisSummaryRepository{client: client, ttl: ttl}
}

func summaryKey(id string) string {
	return redisKeyPrefix + id
}

func sharesKey(summaryID string) string {
	return redisKeyPrefix + summaryID + ":shares"
}

func (r *redisSummaryRepository) CreateSummary(ctx context.Context, draft *entities.Summary) (*entities.Summary, error) {
	if draft == nil {
		return nil, entities.ErrInvalidSummary
	}

	s := draft.Clone()
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()

	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	if err := r.client.Set(ctx, summaryKey(s.ID), b, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to create summary: %w", err)
	}
	return s, nil
}

func (r *redisSummaryRepository) GetSummary(ctx context.Context, id string) (*entities.Summary, error) {
	return r.getSummary(ctx, r.client, id)
}

func (r *redisSummaryRepository) getSummary(ctx context.Context, c redis.Cmdable, id string) (*entities.Summary, error) {
	b, err := c.Get(ctx, summaryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	var s entities.Summary
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return &s, nil
}

func (r *redisSummaryRepository) UpdateSummary(ctx context.Context, id string, update entities.SummaryUpdate) (*entities.Summary, error) {
	key := summaryKey(id)
	var merged *entities.Summary

	txf := func(tx *redis.Tx) error {
		s, err := r.getSummary(ctx, tx, id)
		if err != nil {
			return err
		}
		update.Apply(s)

		b, err := json.Marshal(s)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, redis.KeepTTL)
			return nil
		})
		if err == nil {
			merged = s
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			if errors.Is(err, entities.ErrSummaryNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to update summary: %w", err)
		}
		return merged, nil
	}
	return nil, fmt.Errorf("failed to update summary: too many concurrent writers")
}

func (r *redisSummaryRepository) CreateEmailShare(ctx context.Context, draft *entities.EmailShare) (*entities.EmailShare, error) {
	if draft == nil {
		return nil, entities.ErrInvalidShare
	}

	e := draft.Clone()
	e.ID = uuid.NewString()
	e.SentAt = time.Now().UTC()

	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	key := sharesKey(e.SummaryID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, b)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create email share: %w", err)
	}
	return e, nil
}

func (r *redisSummaryRepository) ListEmailSharesBySummaryID(ctx context.Context, summaryID string) ([]*entities.EmailShare, error) {
	items, err := r.client.LRange(ctx, sharesKey(summaryID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list email shares: %w", err)
	}

	out := make([]*entities.EmailShare, 0, len(items))
	for _, item := range items {
		var e entities.EmailShare
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("failed to decode email share: %w", err)
		}
		out = append(out, &e)
	}
	return out, nil
}
