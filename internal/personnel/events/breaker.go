package events

import (
	"context"
	"errors"
	"log/slog"

	"astrotrack/internal/personnel/models"
	"astrotrack/pkg/platform/circuit"
)

// ErrCircuitOpen is returned while the broker is considered down.
var ErrCircuitOpen = errors.New("duty event publisher circuit open")

// Publisher publishes committed duty assignments.
type Publisher interface {
	PublishDutyAssigned(ctx context.Context, evt models.DutyAssigned) error
}

// BreakerPublisher sheds publishes while the breaker is open so a broker
// outage does not add produce timeouts to every assignment.
type BreakerPublisher struct {
	next    Publisher
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewBreakerPublisher(next Publisher, breaker *circuit.Breaker, logger *slog.Logger) *BreakerPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &BreakerPublisher{next: next, breaker: breaker, logger: logger}
}

func (p *BreakerPublisher) PublishDutyAssigned(ctx context.Context, evt models.DutyAssigned) error {
	if !p.breaker.Allow() {
		return ErrCircuitOpen
	}
	if err := p.next.PublishDutyAssigned(ctx, evt); err != nil {
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.logger.WarnContext(ctx, "duty event circuit opened", "breaker", p.breaker.Name(), "error", err)
		}
		return err
	}
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "duty event circuit closed", "breaker", p.breaker.Name())
	}
	return nil
}
