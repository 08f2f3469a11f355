package store

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"astrotrack/internal/personnel/models"
	id "astrotrack/pkg/domain"
	dErrors "astrotrack/pkg/domain-errors"
	"astrotrack/pkg/platform/sentinel"
)

// defaultTxTimeout is the maximum duration for a transaction that arrives
// without its own deadline.
const defaultTxTimeout = 5 * time.Second

// InMemory is a process-local personnel store. Transactions are serialized by
// a single writer slot and work on a copy of the state that replaces the
// committed state only when fn succeeds.
type InMemory struct {
	sem     chan struct{}
	mu      sync.RWMutex
	state   *memState
	timeout time.Duration
}

type memState struct {
	people   map[id.PersonID]*models.Person
	names    map[string]id.PersonID
	statuses map[id.PersonID]*models.AstronautStatus
	duties   map[id.DutyID]*models.DutyRecord
	byPerson map[id.PersonID][]id.DutyID
}

type memTxKey struct{}

func NewInMemory() *InMemory {
	return &InMemory{
		sem: make(chan struct{}, 1),
		state: &memState{
			people:   make(map[id.PersonID]*models.Person),
			names:    make(map[string]id.PersonID),
			statuses: make(map[id.PersonID]*models.AstronautStatus),
			duties:   make(map[id.DutyID]*models.DutyRecord),
			byPerson: make(map[id.PersonID][]id.DutyID),
		},
		timeout: defaultTxTimeout,
	}
}

// WithTimeout sets the default transaction timeout.
func (s *InMemory) WithTimeout(d time.Duration) *InMemory {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// RunInTx runs fn against a private copy of the state. Nested calls join the
// outer transaction.
func (s *InMemory) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(memTxKey{}).(*memState); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "transaction aborted: waiting for lock")
	}
	defer func() { <-s.sem }()

	s.mu.RLock()
	work := s.state.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, memTxKey{}, work)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted before commit")
	}

	s.mu.Lock()
	s.state = work
	s.mu.Unlock()
	return nil
}

func (st *memState) clone() *memState {
	return &memState{
		people:   maps.Clone(st.people),
		names:    maps.Clone(st.names),
		statuses: maps.Clone(st.statuses),
		duties:   maps.Clone(st.duties),
		byPerson: maps.Clone(st.byPerson),
	}
}

// read runs fn on the transaction's working state, or on the committed state.
// Stored records are never mutated in place, so sharing pointers between
// states is safe; callers always receive copies.
func (s *InMemory) read(ctx context.Context, fn func(st *memState) error) error {
	if work, ok := ctx.Value(memTxKey{}).(*memState); ok {
		return fn(work)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// write runs fn inside the caller's transaction, or in one of its own.
func (s *InMemory) write(ctx context.Context, fn func(st *memState) error) error {
	return s.RunInTx(ctx, func(txCtx context.Context) error {
		return fn(txCtx.Value(memTxKey{}).(*memState))
	})
}

func (s *InMemory) Create(ctx context.Context, person *models.Person) error {
	return s.write(ctx, func(st *memState) error {
		if _, taken := st.names[person.Name]; taken {
			return sentinel.ErrAlreadyUsed
		}
		if _, exists := st.people[person.ID]; exists {
			return sentinel.ErrAlreadyUsed
		}
		p := *person
		st.people[p.ID] = &p
		st.names[p.Name] = p.ID
		return nil
	})
}

func (s *InMemory) Update(ctx context.Context, person *models.Person) error {
	return s.write(ctx, func(st *memState) error {
		existing, ok := st.people[person.ID]
		if !ok {
			return sentinel.ErrNotFound
		}
		if owner, taken := st.names[person.Name]; taken && owner != person.ID {
			return sentinel.ErrAlreadyUsed
		}
		delete(st.names, existing.Name)
		p := *person
		st.people[p.ID] = &p
		st.names[p.Name] = p.ID
		return nil
	})
}

func (s *InMemory) FindByName(ctx context.Context, name string) (*models.Person, error) {
	var found *models.Person
	err := s.read(ctx, func(st *memState) error {
		personID, ok := st.names[name]
		if !ok {
			return sentinel.ErrNotFound
		}
		p := *st.people[personID]
		found = &p
		return nil
	})
	return found, err
}

// FindByNameForUpdate is FindByName; the transaction already holds the only
// writer slot.
func (s *InMemory) FindByNameForUpdate(ctx context.Context, name string) (*models.Person, error) {
	return s.FindByName(ctx, name)
}

func (s *InMemory) List(ctx context.Context) ([]*models.PersonSummary, error) {
	var out []*models.PersonSummary
	err := s.read(ctx, func(st *memState) error {
		out = make([]*models.PersonSummary, 0, len(st.people))
		for _, person := range st.people {
			p := *person
			summary := &models.PersonSummary{Person: &p}
			if status, ok := st.statuses[p.ID]; ok {
				summary.Status = copyStatus(status)
			}
			out = append(out, summary)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Person.Name, out[j].Person.Name) < 0
	})
	return out, err
}

func (s *InMemory) FindStatus(ctx context.Context, personID id.PersonID) (*models.AstronautStatus, error) {
	var found *models.AstronautStatus
	err := s.read(ctx, func(st *memState) error {
		status, ok := st.statuses[personID]
		if !ok {
			return sentinel.ErrNotFound
		}
		found = copyStatus(status)
		return nil
	})
	return found, err
}

func (s *InMemory) FindDuty(ctx context.Context, dutyID id.DutyID) (*models.DutyRecord, error) {
	var found *models.DutyRecord
	err := s.read(ctx, func(st *memState) error {
		duty, ok := st.duties[dutyID]
		if !ok {
			return sentinel.ErrNotFound
		}
		found = copyDuty(duty)
		return nil
	})
	return found, err
}

func (s *InMemory) DutyExists(ctx context.Context, personID id.PersonID, title string, start time.Time) (bool, error) {
	start = models.NormalizeDate(start)
	var exists bool
	err := s.read(ctx, func(st *memState) error {
		exists = st.hasDuty(personID, title, start)
		return nil
	})
	return exists, err
}

func (s *InMemory) ListDuties(ctx context.Context, personID id.PersonID) ([]*models.DutyRecord, error) {
	var out []*models.DutyRecord
	err := s.read(ctx, func(st *memState) error {
		ids := st.byPerson[personID]
		out = make([]*models.DutyRecord, 0, len(ids))
		for _, dutyID := range ids {
			out = append(out, copyDuty(st.duties[dutyID]))
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, err
}

// ApplyAssignment enforces the same uniqueness rules as the SQL schema: one
// open duty per person and unique (title, start date).
func (s *InMemory) ApplyAssignment(ctx context.Context, plan *models.AssignmentPlan) error {
	return s.write(ctx, func(st *memState) error {
		personID := plan.Duty.PersonID
		if _, ok := st.people[personID]; !ok {
			return sentinel.ErrNotFound
		}
		if st.hasDuty(personID, plan.Duty.Title, plan.Duty.StartDate) {
			return sentinel.ErrConflict
		}
		for _, dutyID := range st.byPerson[personID] {
			d := st.duties[dutyID]
			if d.IsOpen() && (plan.Closed == nil || d.ID != plan.Closed.ID) {
				return sentinel.ErrConflict
			}
		}

		if plan.Closed != nil {
			current, ok := st.duties[plan.Closed.ID]
			if !ok {
				return sentinel.ErrNotFound
			}
			if !current.IsOpen() {
				return sentinel.ErrConflict
			}
			st.duties[plan.Closed.ID] = copyDuty(plan.Closed)
		}

		st.duties[plan.Duty.ID] = copyDuty(plan.Duty)
		st.byPerson[personID] = append(slices.Clone(st.byPerson[personID]), plan.Duty.ID)
		st.statuses[personID] = copyStatus(plan.Status)
		return nil
	})
}

func (st *memState) hasDuty(personID id.PersonID, title string, start time.Time) bool {
	for _, dutyID := range st.byPerson[personID] {
		d := st.duties[dutyID]
		if d.Title == title && d.StartDate.Equal(start) {
			return true
		}
	}
	return false
}

func copyStatus(in *models.AstronautStatus) *models.AstronautStatus {
	out := *in
	if in.CareerEndDate != nil {
		end := *in.CareerEndDate
		out.CareerEndDate = &end
	}
	return &out
}

func copyDuty(in *models.DutyRecord) *models.DutyRecord {
	out := *in
	if in.EndDate != nil {
		end := *in.EndDate
		out.EndDate = &end
	}
	return &out
}
