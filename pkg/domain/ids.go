// Package domain holds typed identifiers shared across astrotrack modules.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "astrotrack/pkg/domain-errors"
)

// PersonID identifies a person in the personnel repository.
type PersonID uuid.UUID

// DutyID identifies a single duty record in a person's history.
type DutyID uuid.UUID

func NewPersonID() PersonID { return PersonID(uuid.New()) }

func NewDutyID() DutyID { return DutyID(uuid.New()) }

func (id PersonID) String() string { return uuid.UUID(id).String() }

func (id PersonID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id DutyID) String() string { return uuid.UUID(id).String() }

func (id DutyID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs render as plain UUID strings in JSON.
func (id PersonID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *PersonID) UnmarshalText(b []byte) error {
	parsed, err := ParsePersonID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id DutyID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *DutyID) UnmarshalText(b []byte) error {
	parsed, err := ParseDutyID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParsePersonID parses a non-nil UUID string into a PersonID.
func ParsePersonID(s string) (PersonID, error) {
	u, err := parseUUID(s, "person id")
	return PersonID(u), err
}

// ParseDutyID parses a non-nil UUID string into a DutyID.
func ParseDutyID(s string) (DutyID, error) {
	u, err := parseUUID(s, "duty id")
	return DutyID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be nil")
	}
	return u, nil
}
