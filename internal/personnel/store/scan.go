package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"astrotrack/internal/personnel/models"
	id "astrotrack/pkg/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// nullTime scans DATE, TIMESTAMPTZ and their SQLite TEXT encodings.
type nullTime struct {
	Time  time.Time
	Valid bool
}

var timeLayouts = []string{
	time.RFC3339Nano,
	models.DateLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

func (n *nullTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = v.UTC(), true
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	}
	return fmt.Errorf("cannot scan %T into time", src)
}

func (n *nullTime) parse(value string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			n.Time, n.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("cannot parse time %q", value)
}

func (n nullTime) date() time.Time {
	return models.NormalizeDate(n.Time)
}

func (n nullTime) datePtr() *time.Time {
	if !n.Valid {
		return nil
	}
	d := n.date()
	return &d
}

func scanPerson(row rowScanner) (*models.Person, error) {
	var (
		person           models.Person
		personID         uuid.NullUUID
		created, updated nullTime
	)
	if err := row.Scan(&personID, &person.Name, &created, &updated); err != nil {
		return nil, err
	}
	person.ID = id.PersonID(personID.UUID)
	person.CreatedAt = created.Time
	person.UpdatedAt = updated.Time
	return &person, nil
}

func scanDuty(row rowScanner) (*models.DutyRecord, error) {
	var (
		duty                models.DutyRecord
		dutyID, personID    uuid.NullUUID
		start, end, created nullTime
	)
	if err := row.Scan(&dutyID, &personID, &duty.Rank, &duty.Title, &start, &end, &created); err != nil {
		return nil, err
	}
	duty.ID = id.DutyID(dutyID.UUID)
	duty.PersonID = id.PersonID(personID.UUID)
	duty.StartDate = start.date()
	duty.EndDate = end.datePtr()
	duty.CreatedAt = created.Time
	return &duty, nil
}

// statusRow holds astronaut_status columns, all nullable so it can sit on the
// outer side of a join.
type statusRow struct {
	personID    uuid.NullUUID
	rank        sql.NullString
	title       sql.NullString
	careerStart nullTime
	careerEnd   nullTime
	currentDuty uuid.NullUUID
	updated     nullTime
}

func (r statusRow) model() *models.AstronautStatus {
	return &models.AstronautStatus{
		PersonID:         id.PersonID(r.personID.UUID),
		CurrentRank:      r.rank.String,
		CurrentDutyTitle: r.title.String,
		CareerStartDate:  r.careerStart.date(),
		CareerEndDate:    r.careerEnd.datePtr(),
		CurrentDutyID:    id.DutyID(r.currentDuty.UUID),
		UpdatedAt:        r.updated.Time,
	}
}
