package infrastructure

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ConnectTimeout bounds how long startup keeps retrying a dependency
const ConnectTimeout = 30 * time.Second

// Retry calls op with exponential backoff until it succeeds, ctx is done
// or ConnectTimeout elapses.
func Retry(ctx context.Context, logger *zap.Logger, name string, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = ConnectTimeout

	notify := func(err error, wait time.Duration) {
		if logger != nil {
			logger.Warn("dependency not ready, retrying",
				zap.String("dependency", name),
				zap.Duration("wait", wait),
				zap.Error(err))
		}
	}

	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}
