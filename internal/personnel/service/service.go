package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks PersonStore,DutyStore,StoreTx,HistoryCache,EventPublisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"

	"astrotrack/internal/personnel/metrics"
	"astrotrack/internal/personnel/models"
	id "astrotrack/pkg/domain"
)

var tracer = otel.Tracer("astrotrack/internal/personnel/service")

// PersonStore persists people. Stores return sentinel errors:
// ErrNotFound for unknown names, ErrAlreadyUsed for a taken name.
type PersonStore interface {
	Create(ctx context.Context, person *models.Person) error
	Update(ctx context.Context, person *models.Person) error
	FindByName(ctx context.Context, name string) (*models.Person, error)
	// FindByNameForUpdate locks the person for the rest of the enclosing
	// transaction, serializing writers for the same person.
	FindByNameForUpdate(ctx context.Context, name string) (*models.Person, error)
	List(ctx context.Context) ([]*models.PersonSummary, error)
}

// DutyStore persists the duty ledger and the status projection.
type DutyStore interface {
	FindStatus(ctx context.Context, personID id.PersonID) (*models.AstronautStatus, error)
	FindDuty(ctx context.Context, dutyID id.DutyID) (*models.DutyRecord, error)
	DutyExists(ctx context.Context, personID id.PersonID, title string, start time.Time) (bool, error)
	ListDuties(ctx context.Context, personID id.PersonID) ([]*models.DutyRecord, error)
	// ApplyAssignment writes a plan: closes plan.Closed, inserts plan.Duty and
	// upserts plan.Status. Unique-key races surface as sentinel.ErrConflict.
	ApplyAssignment(ctx context.Context, plan *models.AssignmentPlan) error
}

// StoreTx provides a transactional boundary for store mutations.
// Implementations may wrap a database transaction or, in-memory, a coarse lock.
// Stores called with txCtx participate in the transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// HistoryCache is an optional read-through cache for duty histories keyed by
// person name. Get returns sentinel.ErrNotFound on a miss.
type HistoryCache interface {
	Get(ctx context.Context, name string) (*models.DutyHistory, error)
	Set(ctx context.Context, name string, history *models.DutyHistory) error
	Invalidate(ctx context.Context, names ...string) error
}

// EventPublisher receives committed duty assignments.
type EventPublisher interface {
	PublishDutyAssigned(ctx context.Context, evt models.DutyAssigned) error
}

const defaultMaxRetries = 3

// Service runs the duty assignment lifecycle and the personnel queries.
type Service struct {
	people     PersonStore
	duties     DutyStore
	tx         StoreTx
	cache      HistoryCache
	publisher  EventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

type Option func(s *Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithHistoryCache(c HistoryCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithMaxRetries bounds how many times a conflicting transaction is re-run.
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxRetries = uint64(n)
		}
	}
}

// WithBackOff overrides the delay policy between conflict retries.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(s *Service) {
		if fn != nil {
			s.newBackOff = fn
		}
	}
}

func New(people PersonStore, duties DutyStore, tx StoreTx, opts ...Option) (*Service, error) {
	if people == nil {
		return nil, errors.New("person store is required")
	}
	if duties == nil {
		return nil, errors.New("duty store is required")
	}
	if tx == nil {
		return nil, errors.New("transaction runner is required")
	}

	s := &Service{
		people:     people,
		duties:     duties,
		tx:         tx,
		logger:     slog.Default(),
		maxRetries: defaultMaxRetries,
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	return b
}
