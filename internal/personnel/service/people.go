package service

import (
	"context"
	"errors"
	"strings"

	"astrotrack/internal/personnel/models"
	id "astrotrack/pkg/domain"
	dErrors "astrotrack/pkg/domain-errors"
	"astrotrack/pkg/platform/sentinel"
	"astrotrack/pkg/requestcontext"
)

// CreatePerson adds a person to the repository. Names are unique.
func (s *Service) CreatePerson(ctx context.Context, name string) (*models.Person, error) {
	ctx, span := tracer.Start(ctx, "personnel.CreatePerson")
	defer span.End()

	name = strings.TrimSpace(name)
	person, err := models.NewPerson(id.NewPersonID(), name, requestcontext.Now(ctx))
	if err != nil {
		return nil, invariantToValidation(err)
	}

	err = s.runInTx(ctx, func(txCtx context.Context) error {
		if err := s.people.Create(txCtx, person); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "person name must be unique")
			}
			return storeErr(err, "failed to create person")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementPeopleCreated()
	return person, nil
}

// GetPerson returns the named person and their status projection, if any.
func (s *Service) GetPerson(ctx context.Context, name string) (*models.PersonSummary, error) {
	ctx, span := tracer.Start(ctx, "personnel.GetPerson")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	person, err := s.people.FindByName(ctx, name)
	if err != nil {
		return nil, wrapPersonErr(err)
	}
	status, err := s.duties.FindStatus(ctx, person.ID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, storeErr(err, "failed to load astronaut status")
	}
	return &models.PersonSummary{Person: person, Status: status}, nil
}

// ListPeople returns every person with their status, ordered by name.
func (s *Service) ListPeople(ctx context.Context) ([]*models.PersonSummary, error) {
	ctx, span := tracer.Start(ctx, "personnel.ListPeople")
	defer span.End()

	people, err := s.people.List(ctx)
	if err != nil {
		return nil, storeErr(err, "failed to list people")
	}
	return people, nil
}

// RenamePerson changes a person's display name.
func (s *Service) RenamePerson(ctx context.Context, currentName, newName string) (*models.Person, error) {
	ctx, span := tracer.Start(ctx, "personnel.RenamePerson")
	defer span.End()

	currentName = strings.TrimSpace(currentName)
	newName = strings.TrimSpace(newName)
	if currentName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required")
	}

	now := requestcontext.Now(ctx)
	var renamed *models.Person
	err := s.runInTx(ctx, func(txCtx context.Context) error {
		person, err := s.people.FindByNameForUpdate(txCtx, currentName)
		if err != nil {
			return wrapPersonErr(err)
		}
		if err := person.Rename(newName, now); err != nil {
			return invariantToValidation(err)
		}
		if err := s.people.Update(txCtx, person); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "person name must be unique")
			}
			return storeErr(err, "failed to rename person")
		}
		renamed = person
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateHistory(ctx, currentName, newName)
	return renamed, nil
}

func invariantToValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		var de *dErrors.Error
		if errors.As(err, &de) {
			return dErrors.New(dErrors.CodeValidation, de.Message)
		}
	}
	return err
}
