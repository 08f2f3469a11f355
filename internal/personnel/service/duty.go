package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"astrotrack/internal/personnel/models"
	id "astrotrack/pkg/domain"
	dErrors "astrotrack/pkg/domain-errors"
	"astrotrack/pkg/platform/sentinel"
	"astrotrack/pkg/requestcontext"
)

// CreateDuty assigns a new duty to the named person and returns its ID.
//
// Validation and mutation run in one transaction that holds the person's lock,
// so the open-duty read, its close and the new insert cannot interleave with
// another writer for the same person. Nothing is persisted on error.
func (s *Service) CreateDuty(ctx context.Context, req *models.CreateDutyRequest) (id.DutyID, error) {
	ctx, span := tracer.Start(ctx, "personnel.CreateDuty")
	defer span.End()
	defer s.metrics.ObserveCreateDuty(time.Now())

	if req == nil {
		return id.DutyID{}, s.rejectDuty(span, dErrors.New(dErrors.CodeValidation, "request is required"))
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return id.DutyID{}, s.rejectDuty(span, err)
	}
	span.SetAttributes(
		attribute.String("person.name", req.Name),
		attribute.String("duty.title", req.DutyTitle),
		attribute.String("duty.start_date", req.DutyStartDate.Format(models.DateLayout)),
	)

	now := requestcontext.Now(ctx)
	var (
		person *models.Person
		plan   *models.AssignmentPlan
	)
	err := s.runInTx(ctx, func(txCtx context.Context) error {
		p, err := s.people.FindByNameForUpdate(txCtx, req.Name)
		if err != nil {
			return wrapPersonErr(err)
		}

		exists, err := s.duties.DutyExists(txCtx, p.ID, req.DutyTitle, req.DutyStartDate)
		if err != nil {
			return storeErr(err, "failed to check duty history")
		}
		if exists {
			return dErrors.New(dErrors.CodeDuplicateDuty, "a duty with this title and start date already exists")
		}

		status, open, err := s.loadCurrent(txCtx, p.ID)
		if err != nil {
			return err
		}

		pl, err := models.PlanAssignment(p.ID, status, open, req.Assignment(), id.NewDutyID(), now)
		if err != nil {
			return err
		}
		if err := s.duties.ApplyAssignment(txCtx, pl); err != nil {
			return storeErr(err, "failed to record duty assignment")
		}
		person, plan = p, pl
		return nil
	})
	if err != nil {
		return id.DutyID{}, s.rejectDuty(span, err)
	}

	s.afterAssignment(ctx, person, plan, now)
	span.SetAttributes(attribute.String("duty.id", plan.Duty.ID.String()))
	return plan.Duty.ID, nil
}

// loadCurrent returns the person's status projection and the open duty it
// points at. Both are nil for a person with no history.
func (s *Service) loadCurrent(ctx context.Context, personID id.PersonID) (*models.AstronautStatus, *models.DutyRecord, error) {
	status, err := s.duties.FindStatus(ctx, personID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, storeErr(err, "failed to load astronaut status")
	}
	if status.CurrentDutyID.IsNil() {
		return status, nil, nil
	}

	open, err := s.duties.FindDuty(ctx, status.CurrentDutyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeInternal, "astronaut status references a missing duty")
		}
		return nil, nil, storeErr(err, "failed to load current duty")
	}
	if !open.IsOpen() {
		return nil, nil, dErrors.New(dErrors.CodeInternal, "astronaut status references a closed duty")
	}
	return status, open, nil
}

// afterAssignment runs post-commit side effects. None of them can undo the
// commit, so failures are counted rather than returned.
func (s *Service) afterAssignment(ctx context.Context, person *models.Person, plan *models.AssignmentPlan, now time.Time) {
	s.metrics.IncrementDutiesCreated(plan.Duty.IsRetirement())
	s.invalidateHistory(ctx, person.Name)

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishDutyAssigned(ctx, models.NewDutyAssigned(person, plan, now)); err != nil {
		s.metrics.IncrementEventPublishFailure()
		trace.SpanFromContext(ctx).RecordError(err)
		s.logger.WarnContext(ctx, "failed to publish duty assignment",
			"duty_id", plan.Duty.ID.String(),
			"error", err,
		)
	}
}

func (s *Service) rejectDuty(span trace.Span, err error) error {
	code := dErrors.GetCode(err)
	s.metrics.IncrementDutyRejected(string(code))
	span.RecordError(err)
	span.SetStatus(codes.Error, string(code))
	return err
}
