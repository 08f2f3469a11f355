package models

import (
	"time"

	id "astrotrack/pkg/domain"
)

// DutyAssignment is a normalized request to start a new duty for one person.
type DutyAssignment struct {
	Rank      string
	Title     string
	StartDate time.Time
}

// AssignmentPlan lists the writes produced by one duty assignment. Stores apply
// it as a single unit: one status upsert, at most one close, one insert.
type AssignmentPlan struct {
	Status        *AstronautStatus
	StatusCreated bool
	Closed        *DutyRecord
	Duty          *DutyRecord
}

// PlanAssignment computes the state transition for assigning a new duty.
//
// status and open may be nil for a person with no history. On success they are
// updated in place and returned in the plan; on error neither is touched.
func PlanAssignment(
	personID id.PersonID,
	status *AstronautStatus,
	open *DutyRecord,
	a DutyAssignment,
	dutyID id.DutyID,
	now time.Time,
) (*AssignmentPlan, error) {
	start := NormalizeDate(a.StartDate)
	if open != nil {
		if err := open.CanSupersede(start); err != nil {
			return nil, err
		}
	}

	duty := &DutyRecord{
		ID:        dutyID,
		PersonID:  personID,
		Rank:      a.Rank,
		Title:     a.Title,
		StartDate: start,
		CreatedAt: now,
	}
	plan := &AssignmentPlan{Duty: duty}

	if status == nil {
		plan.Status = newStatus(personID, duty, now)
		plan.StatusCreated = true
	} else {
		status.apply(duty, now)
		plan.Status = status
	}

	if open != nil {
		open.ApplyClose(start)
		plan.Closed = open
	}
	return plan, nil
}
