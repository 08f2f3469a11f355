package models

import (
	"time"

	id "astrotrack/pkg/domain"
)

// DutyAssigned is published after a duty assignment commits.
type DutyAssigned struct {
	PersonID      id.PersonID `json:"person_id"`
	PersonName    string      `json:"person_name"`
	DutyID        id.DutyID   `json:"duty_id"`
	Rank          string      `json:"rank"`
	Title         string      `json:"title"`
	StartDate     string      `json:"start_date"`
	ClosedDutyID  *id.DutyID  `json:"closed_duty_id,omitempty"`
	Retired       bool        `json:"retired"`
	CareerEndDate string      `json:"career_end_date,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// NewDutyAssigned builds the event for a committed plan.
func NewDutyAssigned(person *Person, plan *AssignmentPlan, now time.Time) DutyAssigned {
	evt := DutyAssigned{
		PersonID:      person.ID,
		PersonName:    person.Name,
		DutyID:        plan.Duty.ID,
		Rank:          plan.Duty.Rank,
		Title:         plan.Duty.Title,
		StartDate:     plan.Duty.StartDate.Format(DateLayout),
		Retired:       plan.Status.IsRetired(),
		CareerEndDate: FormatDate(plan.Status.CareerEndDate),
		OccurredAt:    now,
	}
	if plan.Closed != nil {
		closedID := plan.Closed.ID
		evt.ClosedDutyID = &closedID
	}
	return evt
}
