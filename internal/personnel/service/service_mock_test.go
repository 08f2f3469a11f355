package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"astrotrack/internal/personnel/metrics"
	"astrotrack/internal/personnel/models"
	"astrotrack/internal/personnel/service/mocks"
	id "astrotrack/pkg/domain"
	dErrors "astrotrack/pkg/domain-errors"
	"astrotrack/pkg/platform/sentinel"
	"astrotrack/pkg/requestcontext"
)

// =============================================================================
// Service Collaborator Test Suite
// =============================================================================
// Failure paths that the in-memory store cannot produce: store outages,
// exhausted conflict retries, cache faults and publisher faults.

type ServiceMockSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	people    *mocks.MockPersonStore
	duties    *mocks.MockDutyStore
	tx        *mocks.MockStoreTx
	cache     *mocks.MockHistoryCache
	publisher *mocks.MockEventPublisher
	metrics   *metrics.Metrics
	service   *Service
	ctx       context.Context
	person    *models.Person
}

func TestServiceMockSuite(t *testing.T) {
	suite.Run(t, new(ServiceMockSuite))
}

func (s *ServiceMockSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.people = mocks.NewMockPersonStore(s.ctrl)
	s.duties = mocks.NewMockDutyStore(s.ctrl)
	s.tx = mocks.NewMockStoreTx(s.ctrl)
	s.cache = mocks.NewMockHistoryCache(s.ctrl)
	s.publisher = mocks.NewMockEventPublisher(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.ctx = requestcontext.WithTime(context.Background(), fixedNow)

	svc, err := New(s.people, s.duties, s.tx,
		WithMetrics(s.metrics),
		WithHistoryCache(s.cache),
		WithEventPublisher(s.publisher),
		WithMaxRetries(2),
		WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	)
	s.Require().NoError(err)
	s.service = svc

	person, err := models.NewPerson(id.NewPersonID(), "Jane Doe", fixedNow)
	s.Require().NoError(err)
	s.person = person
}

func (s *ServiceMockSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceMockSuite) passThroughTx() *gomock.Call {
	return s.tx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func (s *ServiceMockSuite) pilotRequest() *models.CreateDutyRequest {
	return &models.CreateDutyRequest{
		Name:          "Jane Doe",
		Rank:          "Major",
		DutyTitle:     "Pilot",
		DutyStartDate: day("2026-03-01"),
	}
}

func (s *ServiceMockSuite) expectFirstAssignmentReads() {
	s.people.EXPECT().FindByNameForUpdate(gomock.Any(), "Jane Doe").Return(s.person, nil)
	s.duties.EXPECT().DutyExists(gomock.Any(), s.person.ID, "Pilot", day("2026-03-01")).Return(false, nil)
	s.duties.EXPECT().FindStatus(gomock.Any(), s.person.ID).Return(nil, sentinel.ErrNotFound)
}

func (s *ServiceMockSuite) TestCreateDutyStoreUnavailable() {
	s.Run("person lookup failure", func() {
		s.passThroughTx()
		s.people.EXPECT().FindByNameForUpdate(gomock.Any(), "Jane Doe").Return(nil, errors.New("connection refused"))

		_, err := s.service.CreateDuty(s.ctx, s.pilotRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable), "got %v", err)
	})

	s.Run("write failure", func() {
		s.passThroughTx()
		s.expectFirstAssignmentReads()
		s.duties.EXPECT().ApplyAssignment(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := s.service.CreateDuty(s.ctx, s.pilotRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable), "got %v", err)
	})

	s.Run("commit failure is not retried", func() {
		s.tx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).Return(errors.New("commit failed")).Times(1)

		_, err := s.service.CreateDuty(s.ctx, s.pilotRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable), "got %v", err)
	})
}

func (s *ServiceMockSuite) TestCreateDutyConflictRetries() {
	s.Run("exhausted retries surface a concurrency conflict", func() {
		s.tx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict).Times(3)

		_, err := s.service.CreateDuty(s.ctx, s.pilotRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeConcurrencyConflict), "got %v", err)
		s.Equal(2.0, testutil.ToFloat64(s.metrics.TxRetries))
	})

	s.Run("conflict on write re-runs validation then succeeds", func() {
		s.passThroughTx().Times(2)
		s.people.EXPECT().FindByNameForUpdate(gomock.Any(), "Jane Doe").Return(s.person, nil).Times(2)
		s.duties.EXPECT().DutyExists(gomock.Any(), s.person.ID, "Pilot", day("2026-03-01")).Return(false, nil).Times(2)
		s.duties.EXPECT().FindStatus(gomock.Any(), s.person.ID).Return(nil, sentinel.ErrNotFound).Times(2)
		gomock.InOrder(
			s.duties.EXPECT().ApplyAssignment(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict),
			s.duties.EXPECT().ApplyAssignment(gomock.Any(), gomock.Any()).Return(nil),
		)
		s.cache.EXPECT().Invalidate(gomock.Any(), "Jane Doe").Return(nil)
		s.publisher.EXPECT().PublishDutyAssigned(gomock.Any(), gomock.Any()).Return(nil)

		dutyID, err := s.service.CreateDuty(s.ctx, s.pilotRequest())
		s.NoError(err)
		s.False(dutyID.IsNil())
	})
}

func (s *ServiceMockSuite) TestCreateDutyInconsistentStatus() {
	s.passThroughTx()
	s.people.EXPECT().FindByNameForUpdate(gomock.Any(), "Jane Doe").Return(s.person, nil)
	s.duties.EXPECT().DutyExists(gomock.Any(), s.person.ID, "Pilot", day("2026-03-01")).Return(false, nil)
	missing := id.NewDutyID()
	s.duties.EXPECT().FindStatus(gomock.Any(), s.person.ID).Return(&models.AstronautStatus{
		PersonID:      s.person.ID,
		CurrentDutyID: missing,
	}, nil)
	s.duties.EXPECT().FindDuty(gomock.Any(), missing).Return(nil, sentinel.ErrNotFound)

	_, err := s.service.CreateDuty(s.ctx, s.pilotRequest())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal), "got %v", err)
}

func (s *ServiceMockSuite) TestCreateDutySideEffects() {
	s.Run("publishes the committed assignment", func() {
		s.passThroughTx()
		s.expectFirstAssignmentReads()
		s.duties.EXPECT().ApplyAssignment(gomock.Any(), gomock.Any()).Return(nil)
		s.cache.EXPECT().Invalidate(gomock.Any(), "Jane Doe").Return(nil)

		var published models.DutyAssigned
		s.publisher.EXPECT().PublishDutyAssigned(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, evt models.DutyAssigned) error {
				published = evt
				return nil
			})

		dutyID, err := s.service.CreateDuty(s.ctx, s.pilotRequest())
		s.Require().NoError(err)
		s.Equal(dutyID, published.DutyID)
		s.Equal(s.person.ID, published.PersonID)
		s.Equal("2026-03-01", published.StartDate)
		s.Nil(published.ClosedDutyID)
		s.False(published.Retired)
		s.Equal(fixedNow, published.OccurredAt)
	})

	s.Run("publisher and cache failures do not fail the request", func() {
		s.passThroughTx()
		s.expectFirstAssignmentReads()
		s.duties.EXPECT().ApplyAssignment(gomock.Any(), gomock.Any()).Return(nil)
		s.cache.EXPECT().Invalidate(gomock.Any(), "Jane Doe").Return(errors.New("redis down"))
		s.publisher.EXPECT().PublishDutyAssigned(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := s.service.CreateDuty(s.ctx, s.pilotRequest())
		s.NoError(err)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.EventPublishFailures))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.HistoryCacheErrors))
	})

	s.Run("rejected assignment publishes nothing", func() {
		s.passThroughTx()
		s.people.EXPECT().FindByNameForUpdate(gomock.Any(), "Jane Doe").Return(s.person, nil)
		s.duties.EXPECT().DutyExists(gomock.Any(), s.person.ID, "Pilot", day("2026-03-01")).Return(true, nil)

		_, err := s.service.CreateDuty(s.ctx, s.pilotRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicateDuty))
	})
}

func (s *ServiceMockSuite) TestGetDutyHistoryCache() {
	cached := &models.DutyHistory{Person: s.person}

	s.Run("hit skips the store", func() {
		s.cache.EXPECT().Get(gomock.Any(), "Jane Doe").Return(cached, nil)

		h, err := s.service.GetDutyHistory(s.ctx, "Jane Doe")
		s.NoError(err)
		s.Same(cached, h)
	})

	s.Run("miss reads through and fills the cache", func() {
		s.cache.EXPECT().Get(gomock.Any(), "Jane Doe").Return(nil, sentinel.ErrNotFound)
		s.people.EXPECT().FindByName(gomock.Any(), "Jane Doe").Return(s.person, nil)
		s.duties.EXPECT().FindStatus(gomock.Any(), s.person.ID).Return(nil, sentinel.ErrNotFound)
		s.duties.EXPECT().ListDuties(gomock.Any(), s.person.ID).Return(nil, nil)
		s.cache.EXPECT().Set(gomock.Any(), "Jane Doe", gomock.Any()).Return(nil)

		h, err := s.service.GetDutyHistory(s.ctx, "Jane Doe")
		s.NoError(err)
		s.Equal(s.person, h.Person)
		s.Nil(h.Status)
	})

	s.Run("cache fault falls back to the store", func() {
		s.cache.EXPECT().Get(gomock.Any(), "Jane Doe").Return(nil, errors.New("timeout"))
		s.people.EXPECT().FindByName(gomock.Any(), "Jane Doe").Return(s.person, nil)
		s.duties.EXPECT().FindStatus(gomock.Any(), s.person.ID).Return(nil, sentinel.ErrNotFound)
		s.duties.EXPECT().ListDuties(gomock.Any(), s.person.ID).Return(nil, nil)
		s.cache.EXPECT().Set(gomock.Any(), "Jane Doe", gomock.Any()).Return(errors.New("timeout"))

		_, err := s.service.GetDutyHistory(s.ctx, "Jane Doe")
		s.NoError(err)
	})

	s.Run("unknown person is not cached", func() {
		s.cache.EXPECT().Get(gomock.Any(), "Nobody").Return(nil, sentinel.ErrNotFound)
		s.people.EXPECT().FindByName(gomock.Any(), "Nobody").Return(nil, sentinel.ErrNotFound)

		h, err := s.service.GetDutyHistory(s.ctx, "Nobody")
		s.Nil(h)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("store failure on history read", func() {
		s.cache.EXPECT().Get(gomock.Any(), "Jane Doe").Return(nil, sentinel.ErrNotFound)
		s.people.EXPECT().FindByName(gomock.Any(), "Jane Doe").Return(s.person, nil)
		s.duties.EXPECT().FindStatus(gomock.Any(), s.person.ID).Return(nil, sentinel.ErrNotFound)
		s.duties.EXPECT().ListDuties(gomock.Any(), s.person.ID).Return(nil, errors.New("connection reset"))

		h, err := s.service.GetDutyHistory(s.ctx, "Jane Doe")
		s.Nil(h)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *ServiceMockSuite) TestPeople() {
	s.Run("create rejects a taken name", func() {
		s.passThroughTx()
		s.people.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)

		_, err := s.service.CreatePerson(s.ctx, "Jane Doe")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("create rejects a blank name without touching the store", func() {
		_, err := s.service.CreatePerson(s.ctx, "  ")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rename invalidates both cache keys", func() {
		s.passThroughTx()
		s.people.EXPECT().FindByNameForUpdate(gomock.Any(), "Jane Doe").Return(s.person, nil)
		s.people.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *models.Person) error {
				s.Equal("Jane Smith", p.Name)
				return nil
			})
		s.cache.EXPECT().Invalidate(gomock.Any(), "Jane Doe", "Jane Smith").Return(nil)

		renamed, err := s.service.RenamePerson(s.ctx, "Jane Doe", "Jane Smith")
		s.Require().NoError(err)
		s.Equal("Jane Smith", renamed.Name)
	})

	s.Run("rename onto a taken name", func() {
		other, err := models.NewPerson(id.NewPersonID(), "John Doe", fixedNow)
		s.Require().NoError(err)
		s.passThroughTx()
		s.people.EXPECT().FindByNameForUpdate(gomock.Any(), "John Doe").Return(other, nil)
		s.people.EXPECT().Update(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)

		_, err = s.service.RenamePerson(s.ctx, "John Doe", "Jane Smith")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("list surfaces store failures", func() {
		s.people.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := s.service.ListPeople(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
