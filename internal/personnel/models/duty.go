package models

import (
	"strings"
	"time"

	id "astrotrack/pkg/domain"
	dErrors "astrotrack/pkg/domain-errors"
)

// RetiredTitle is the duty title that ends a career.
const RetiredTitle = "RETIRED"

// IsRetirementTitle compares case-insensitively against RetiredTitle.
func IsRetirementTitle(title string) bool {
	return strings.EqualFold(strings.TrimSpace(title), RetiredTitle)
}

// DutyRecord is one entry in a person's duty history. EndDate nil means open.
// Only EndDate changes after creation.
type DutyRecord struct {
	ID        id.DutyID   `json:"id"`
	PersonID  id.PersonID `json:"person_id"`
	Rank      string      `json:"rank"`
	Title     string      `json:"title"`
	StartDate time.Time   `json:"start_date"`
	EndDate   *time.Time  `json:"end_date,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func (d *DutyRecord) IsOpen() bool {
	return d.EndDate == nil
}

func (d *DutyRecord) IsRetirement() bool {
	return IsRetirementTitle(d.Title)
}

// CanSupersede reports whether a duty starting at start may replace d as the
// open duty. The replacement must begin strictly after d so that d keeps a
// positive duration once closed.
func (d *DutyRecord) CanSupersede(start time.Time) error {
	if !d.IsOpen() {
		return dErrors.New(dErrors.CodeInvariantViolation, "duty is already closed")
	}
	if !NormalizeDate(start).After(d.StartDate) {
		return dErrors.New(dErrors.CodeNonPositiveDutyDuration,
			"duty start date must be after the current duty start date "+d.StartDate.Format(DateLayout))
	}
	return nil
}

// ApplyClose ends d the day before the superseding duty starts.
// Call CanSupersede first.
func (d *DutyRecord) ApplyClose(supersededAt time.Time) {
	end := DayBefore(supersededAt)
	d.EndDate = &end
}

// DutyHistory is the read model for one person's career.
type DutyHistory struct {
	Person *Person
	Status *AstronautStatus
	Duties []*DutyRecord
}
