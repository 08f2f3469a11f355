package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"astrotrack/internal/personnel/models"
	dErrors "astrotrack/pkg/domain-errors"
	"astrotrack/pkg/platform/sentinel"
)

// GetDutyHistory returns the person, their status (nil if never assigned) and
// every duty ordered by start date, newest first.
func (s *Service) GetDutyHistory(ctx context.Context, name string) (*models.DutyHistory, error) {
	ctx, span := tracer.Start(ctx, "personnel.GetDutyHistory")
	defer span.End()
	defer s.metrics.ObserveGetHistory(time.Now())

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	span.SetAttributes(attribute.String("person.name", name))

	if history, ok := s.cachedHistory(ctx, name); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return history, nil
	}

	person, err := s.people.FindByName(ctx, name)
	if err != nil {
		return nil, wrapPersonErr(err)
	}
	status, err := s.duties.FindStatus(ctx, person.ID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, storeErr(err, "failed to load astronaut status")
	}
	duties, err := s.duties.ListDuties(ctx, person.ID)
	if err != nil {
		return nil, storeErr(err, "failed to load duty history")
	}

	history := &models.DutyHistory{Person: person, Status: status, Duties: duties}
	if s.cache != nil {
		if err := s.cache.Set(ctx, name, history); err != nil {
			s.metrics.IncrementCacheError()
			s.logger.WarnContext(ctx, "failed to cache duty history", "error", err)
		}
	}
	return history, nil
}

func (s *Service) cachedHistory(ctx context.Context, name string) (*models.DutyHistory, bool) {
	if s.cache == nil {
		return nil, false
	}
	history, err := s.cache.Get(ctx, name)
	switch {
	case err == nil && history != nil:
		s.metrics.IncrementCacheHit()
		return history, true
	case err == nil, errors.Is(err, sentinel.ErrNotFound):
		s.metrics.IncrementCacheMiss()
	default:
		s.metrics.IncrementCacheError()
		s.logger.WarnContext(ctx, "history cache read failed", "error", err)
	}
	return nil, false
}

func (s *Service) invalidateHistory(ctx context.Context, names ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, names...); err != nil {
		s.metrics.IncrementCacheError()
		s.logger.WarnContext(ctx, "failed to invalidate duty history", "error", err)
	}
}
