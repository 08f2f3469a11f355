package models

import (
	"strings"
	"time"

	dErrors "astrotrack/pkg/domain-errors"
)

// MaxFieldLength bounds rank and duty title values.
const MaxFieldLength = 128

// CreateDutyRequest asks for a new duty assignment. DutyStartDate is parsed by
// the transport; Normalize reduces it to a UTC day.
type CreateDutyRequest struct {
	Name          string
	Rank          string
	DutyTitle     string
	DutyStartDate time.Time
}

// Normalize trims text fields and truncates the start date.
func (r *CreateDutyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Rank = strings.TrimSpace(r.Rank)
	r.DutyTitle = strings.TrimSpace(r.DutyTitle)
	if !r.DutyStartDate.IsZero() {
		r.DutyStartDate = NormalizeDate(r.DutyStartDate)
	}
}

// Validate checks required fields. It performs no lookups.
func (r *CreateDutyRequest) Validate() error {
	switch {
	case r.Name == "":
		return dErrors.New(dErrors.CodeValidation, "name is required")
	case r.Rank == "":
		return dErrors.New(dErrors.CodeValidation, "rank is required")
	case r.DutyTitle == "":
		return dErrors.New(dErrors.CodeValidation, "duty title is required")
	case r.DutyStartDate.IsZero():
		return dErrors.New(dErrors.CodeValidation, "duty start date is required")
	case len(r.Rank) > MaxFieldLength:
		return dErrors.New(dErrors.CodeValidation, "rank must be 128 characters or less")
	case len(r.DutyTitle) > MaxFieldLength:
		return dErrors.New(dErrors.CodeValidation, "duty title must be 128 characters or less")
	}
	return nil
}

// Assignment converts a validated request into the domain command.
func (r *CreateDutyRequest) Assignment() DutyAssignment {
	return DutyAssignment{
		Rank:      r.Rank,
		Title:     r.DutyTitle,
		StartDate: r.DutyStartDate,
	}
}
