package service

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"

	"astrotrack/pkg/platform/sentinel"
)

// runInTx executes fn in one transaction, re-running the whole unit when the
// store reports a concurrent-update conflict. Validation happens inside fn, so
// every attempt re-reads state before writing.
func (s *Service) runInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	attempt := 0
	op := func() error {
		if attempt > 0 {
			s.metrics.IncrementTxRetries()
		}
		attempt++
		err := s.tx.RunInTx(ctx, fn)
		if err == nil || errors.Is(err, sentinel.ErrConflict) {
			return err
		}
		return backoff.Permanent(err)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	return finalErr(backoff.Retry(op, policy))
}
