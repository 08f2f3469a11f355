package store

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/suite"

	"astrotrack/internal/personnel/models"
	id "astrotrack/pkg/domain"
	"astrotrack/pkg/platform/sentinel"
)

// personnelStore is the full surface every backend provides.
type personnelStore interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
	Create(ctx context.Context, person *models.Person) error
	Update(ctx context.Context, person *models.Person) error
	FindByName(ctx context.Context, name string) (*models.Person, error)
	FindByNameForUpdate(ctx context.Context, name string) (*models.Person, error)
	List(ctx context.Context) ([]*models.PersonSummary, error)
	FindStatus(ctx context.Context, personID id.PersonID) (*models.AstronautStatus, error)
	FindDuty(ctx context.Context, dutyID id.DutyID) (*models.DutyRecord, error)
	DutyExists(ctx context.Context, personID id.PersonID, title string, start time.Time) (bool, error)
	ListDuties(ctx context.Context, personID id.PersonID) ([]*models.DutyRecord, error)
	ApplyAssignment(ctx context.Context, plan *models.AssignmentPlan) error
}

var (
	_ personnelStore = (*InMemory)(nil)
	_ personnelStore = (*SQL)(nil)
)

// contractSuite checks behaviour every backend must share. Backends embed it
// and provide newStore.
type contractSuite struct {
	suite.Suite
	newStore func() personnelStore
	store    personnelStore
	ctx      context.Context
}

var contractNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func (s *contractSuite) SetupTest() {
	s.store = s.newStore()
	s.ctx = context.Background()
}

func (s *contractSuite) addPerson(name string) *models.Person {
	p, err := models.NewPerson(id.NewPersonID(), name, contractNow)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, p))
	return p
}

// assign plans and applies a duty the way the service does, inside one
// transaction.
func (s *contractSuite) assign(p *models.Person, rank, title, start string) (*models.AssignmentPlan, error) {
	var plan *models.AssignmentPlan
	err := s.store.RunInTx(s.ctx, func(txCtx context.Context) error {
		if _, err := s.store.FindByNameForUpdate(txCtx, p.Name); err != nil {
			return err
		}
		status, err := s.store.FindStatus(txCtx, p.ID)
		if errors.Is(err, sentinel.ErrNotFound) {
			status, err = nil, nil
		}
		if err != nil {
			return err
		}
		var open *models.DutyRecord
		if status != nil {
			if open, err = s.store.FindDuty(txCtx, status.CurrentDutyID); err != nil {
				return err
			}
		}
		plan, err = models.PlanAssignment(p.ID, status, open, models.DutyAssignment{
			Rank: rank, Title: title, StartDate: date(start),
		}, id.NewDutyID(), contractNow)
		if err != nil {
			return err
		}
		return s.store.ApplyAssignment(txCtx, plan)
	})
	return plan, err
}

func (s *contractSuite) TestPersonLifecycle() {
	p := s.addPerson("Jane Doe")

	found, err := s.store.FindByName(s.ctx, "Jane Doe")
	s.Require().NoError(err)
	s.Equal(p.ID, found.ID)
	s.Equal("Jane Doe", found.Name)
	s.WithinDuration(contractNow, found.CreatedAt, time.Millisecond)

	_, err = s.store.FindByName(s.ctx, "jane doe")
	s.ErrorIs(err, sentinel.ErrNotFound, "names are case-sensitive")

	dup, err := models.NewPerson(id.NewPersonID(), "Jane Doe", contractNow)
	s.Require().NoError(err)
	s.ErrorIs(s.store.Create(s.ctx, dup), sentinel.ErrAlreadyUsed)

	s.addPerson("John Doe")
	s.Require().NoError(p.Rename("John Doe", contractNow))
	s.ErrorIs(s.store.Update(s.ctx, p), sentinel.ErrAlreadyUsed)

	s.Require().NoError(p.Rename("Jane Smith", contractNow))
	s.Require().NoError(s.store.Update(s.ctx, p))
	_, err = s.store.FindByName(s.ctx, "Jane Smith")
	s.NoError(err)

	ghost, err := models.NewPerson(id.NewPersonID(), "Ghost", contractNow)
	s.Require().NoError(err)
	s.ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
}

func (s *contractSuite) TestAssignmentRoundTrip() {
	p := s.addPerson("Jane Doe")

	first, err := s.assign(p, "1LT", "Commander", "2020-01-01")
	s.Require().NoError(err)
	second, err := s.assign(p, "Major", "Pilot", "2026-03-01")
	s.Require().NoError(err)

	status, err := s.store.FindStatus(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.ID, status.PersonID)
	s.Equal("Major", status.CurrentRank)
	s.Equal("Pilot", status.CurrentDutyTitle)
	s.Equal(date("2020-01-01"), status.CareerStartDate)
	s.Nil(status.CareerEndDate)
	s.Equal(second.Duty.ID, status.CurrentDutyID)

	duties, err := s.store.ListDuties(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(duties, 2)
	s.Equal(second.Duty.ID, duties[0].ID)
	s.Nil(duties[0].EndDate)
	s.Equal(first.Duty.ID, duties[1].ID)
	s.Equal("1LT", duties[1].Rank)
	s.Equal(date("2020-01-01"), duties[1].StartDate)
	s.Require().NotNil(duties[1].EndDate)
	s.Equal(date("2026-02-28"), *duties[1].EndDate)

	exists, err := s.store.DutyExists(s.ctx, p.ID, "Commander", date("2020-01-01"))
	s.Require().NoError(err)
	s.True(exists)
	exists, err = s.store.DutyExists(s.ctx, p.ID, "commander", date("2020-01-01"))
	s.Require().NoError(err)
	s.False(exists)
}

func (s *contractSuite) TestRetirementRoundTrip() {
	p := s.addPerson("Sally Ride")
	_, err := s.assign(p, "Dr", "Mission Specialist", "1978-01-16")
	s.Require().NoError(err)
	_, err = s.assign(p, "Dr", "RETIRED", "2026-03-01")
	s.Require().NoError(err)

	status, err := s.store.FindStatus(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(status.CareerEndDate)
	s.Equal(date("2026-02-28"), *status.CareerEndDate)
	s.Equal(date("1978-01-16"), status.CareerStartDate)
}

func (s *contractSuite) TestApplyAssignmentRejectsSecondOpenDuty() {
	p := s.addPerson("Jane Doe")
	_, err := s.assign(p, "1LT", "Commander", "2020-01-01")
	s.Require().NoError(err)

	rogue, err := models.PlanAssignment(p.ID, nil, nil, models.DutyAssignment{
		Rank: "Major", Title: "Pilot", StartDate: date("2026-03-01"),
	}, id.NewDutyID(), contractNow)
	s.Require().NoError(err)
	s.ErrorIs(s.store.ApplyAssignment(s.ctx, rogue), sentinel.ErrConflict)

	duties, err := s.store.ListDuties(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Len(duties, 1, "failed assignment leaves no rows behind")
}

func (s *contractSuite) TestApplyAssignmentRejectsStaleClose() {
	p := s.addPerson("Jane Doe")
	first, err := s.assign(p, "1LT", "Commander", "2020-01-01")
	s.Require().NoError(err)
	_, err = s.assign(p, "Major", "Pilot", "2026-03-01")
	s.Require().NoError(err)

	// A writer that read the Commander duty before it was closed.
	stale := first.Duty
	stale.EndDate = nil
	status, err := s.store.FindStatus(s.ctx, p.ID)
	s.Require().NoError(err)
	late, err := models.PlanAssignment(p.ID, status, stale, models.DutyAssignment{
		Rank: "Colonel", Title: "Chief", StartDate: date("2026-06-01"),
	}, id.NewDutyID(), contractNow)
	s.Require().NoError(err)

	s.ErrorIs(s.store.ApplyAssignment(s.ctx, late), sentinel.ErrConflict)
}

func (s *contractSuite) TestRunInTxRollsBackOnError() {
	boom := errors.New("boom")
	err := s.store.RunInTx(s.ctx, func(txCtx context.Context) error {
		p, err := models.NewPerson(id.NewPersonID(), "Jane Doe", contractNow)
		if err != nil {
			return err
		}
		if err := s.store.Create(txCtx, p); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.store.FindByName(s.ctx, "Jane Doe")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestListJoinsStatus() {
	jane := s.addPerson("Jane Doe")
	s.addPerson("Alan Shepard")
	_, err := s.assign(jane, "1LT", "Commander", "2020-01-01")
	s.Require().NoError(err)

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Alan Shepard", list[0].Person.Name)
	s.Nil(list[0].Status)
	s.Equal("Jane Doe", list[1].Person.Name)
	s.Require().NotNil(list[1].Status)
	s.Equal("Commander", list[1].Status.CurrentDutyTitle)
}

func (s *contractSuite) TestMissingRows() {
	_, err := s.store.FindStatus(s.ctx, id.NewPersonID())
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindDuty(s.ctx, id.NewDutyID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	duties, err := s.store.ListDuties(s.ctx, id.NewPersonID())
	s.NoError(err)
	s.Empty(duties)
}
