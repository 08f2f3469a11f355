package models

import (
	"strings"
	"time"

	id "astrotrack/pkg/domain"
	dErrors "astrotrack/pkg/domain-errors"
)

// MaxNameLength bounds person display names.
const MaxNameLength = 256

// Person is an entry in the personnel repository.
//
// Invariants:
//   - Name is non-blank, at most MaxNameLength bytes, and unique (case-sensitive)
//   - CreatedAt is immutable after construction
type Person struct {
	ID        id.PersonID `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func NewPerson(personID id.PersonID, name string, now time.Time) (*Person, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Person{
		ID:        personID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename changes the display name. Uniqueness is the store's concern.
func (p *Person) Rename(name string, now time.Time) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = now
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "name must be 256 characters or less")
	}
	return nil
}

// PersonSummary pairs a person with their status projection, if any.
type PersonSummary struct {
	Person *Person
	Status *AstronautStatus
}
