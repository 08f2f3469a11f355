package models

import (
	"time"

	id "astrotrack/pkg/domain"
)

// AstronautStatus is the per-person projection of duty history.
//
// Invariants:
//   - CareerStartDate is the start of the first duty ever assigned and never moves
//   - CareerEndDate is set only while the current duty is the retirement sentinel
//   - CurrentDutyID points at the person's single open DutyRecord
type AstronautStatus struct {
	PersonID         id.PersonID `json:"person_id"`
	CurrentRank      string      `json:"current_rank"`
	CurrentDutyTitle string      `json:"current_duty_title"`
	CareerStartDate  time.Time   `json:"career_start_date"`
	CareerEndDate    *time.Time  `json:"career_end_date,omitempty"`
	CurrentDutyID    id.DutyID   `json:"current_duty_id"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func (s *AstronautStatus) IsRetired() bool {
	return s.CareerEndDate != nil
}

// newStatus starts the projection from a person's first duty.
func newStatus(personID id.PersonID, duty *DutyRecord, now time.Time) *AstronautStatus {
	s := &AstronautStatus{
		PersonID:        personID,
		CareerStartDate: duty.StartDate,
	}
	s.apply(duty, now)
	return s
}

// apply moves the projection onto duty. CareerStartDate is left alone.
func (s *AstronautStatus) apply(duty *DutyRecord, now time.Time) {
	s.CurrentRank = duty.Rank
	s.CurrentDutyTitle = duty.Title
	s.CurrentDutyID = duty.ID
	s.UpdatedAt = now
	if duty.IsRetirement() {
		end := DayBefore(duty.StartDate)
		s.CareerEndDate = &end
	} else {
		s.CareerEndDate = nil
	}
}
