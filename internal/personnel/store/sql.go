package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"astrotrack/internal/personnel/models"
	"astrotrack/internal/platform/database"
	id "astrotrack/pkg/domain"
	dErrors "astrotrack/pkg/domain-errors"
	"astrotrack/pkg/platform/sentinel"
	txcontext "astrotrack/pkg/platform/tx"
)

//go:embed migrations
var migrationFS embed.FS

// Migrate applies the personnel schema for driver.
func Migrate(ctx context.Context, db *sql.DB, driver database.Driver) error {
	return database.Migrate(ctx, db, driver, migrationFS, "migrations/"+string(driver))
}

// SQL persists people, duty records and status projections in Postgres or
// SQLite. The store is pure I/O; assignment rules live in models.
type SQL struct {
	db      *sql.DB
	driver  database.Driver
	timeout time.Duration
}

func NewSQL(db *sql.DB, driver database.Driver) *SQL {
	return &SQL{db: db, driver: driver, timeout: defaultTxTimeout}
}

func NewPostgres(db *sql.DB) *SQL {
	return NewSQL(db, database.DriverPostgres)
}

func NewSQLite(db *sql.DB) *SQL {
	return NewSQL(db, database.DriverSQLite)
}

// WithTimeout sets the default transaction timeout.
func (s *SQL) WithTimeout(d time.Duration) *SQL {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// RunInTx runs fn inside a database transaction carried by txCtx. Nested calls
// join the outer transaction.
func (s *SQL) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := txcontext.From(ctx); ok {
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.classify(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return s.classify(err)
	}
	return nil
}

func (s *SQL) q(query string) string {
	return database.Rebind(s.driver, query)
}

func (s *SQL) exec(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFrom(ctx, s.db)
}

// lockClause is empty on SQLite, where the single connection already
// serializes transactions.
func (s *SQL) lockClause() string {
	if s.driver == database.DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

func (s *SQL) timestamp(t time.Time) any {
	if s.driver == database.DriverPostgres {
		return t.UTC()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func dateArg(t time.Time) string {
	return models.NormalizeDate(t).Format(models.DateLayout)
}

func nullableDateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return dateArg(*t)
}

const personColumns = `id, name, created_at, updated_at`

func (s *SQL) Create(ctx context.Context, person *models.Person) error {
	_, err := s.exec(ctx).ExecContext(ctx,
		s.q(`INSERT INTO people (`+personColumns+`) VALUES (?, ?, ?, ?)`),
		person.ID.String(), person.Name, s.timestamp(person.CreatedAt), s.timestamp(person.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", s.classify(err))
	}
	return nil
}

func (s *SQL) Update(ctx context.Context, person *models.Person) error {
	res, err := s.exec(ctx).ExecContext(ctx,
		s.q(`UPDATE people SET name = ?, updated_at = ? WHERE id = ?`),
		person.Name, s.timestamp(person.UpdatedAt), person.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update person: %w", s.classify(err))
	}
	return requireRow(res)
}

func (s *SQL) FindByName(ctx context.Context, name string) (*models.Person, error) {
	return s.findPerson(ctx, name, "")
}

func (s *SQL) FindByNameForUpdate(ctx context.Context, name string) (*models.Person, error) {
	return s.findPerson(ctx, name, s.lockClause())
}

func (s *SQL) findPerson(ctx context.Context, name, lock string) (*models.Person, error) {
	row := s.exec(ctx).QueryRowContext(ctx,
		s.q(`SELECT `+personColumns+` FROM people WHERE name = ?`+lock), name)
	person, err := scanPerson(row)
	if err != nil {
		return nil, s.classify(err)
	}
	return person, nil
}

func (s *SQL) List(ctx context.Context) ([]*models.PersonSummary, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, s.q(`
		SELECT p.id, p.name, p.created_at, p.updated_at,
		       a.person_id, a.current_rank, a.current_duty_title, a.career_start_date,
		       a.career_end_date, a.current_duty_id, a.updated_at
		FROM people p
		LEFT JOIN astronaut_status a ON a.person_id = p.id
		ORDER BY p.name`))
	if err != nil {
		return nil, fmt.Errorf("list people: %w", s.classify(err))
	}
	defer func() { _ = rows.Close() }()

	var out []*models.PersonSummary
	for rows.Next() {
		var (
			person    models.Person
			personID  uuid.NullUUID
			created   nullTime
			updated   nullTime
			statusFor uuid.NullUUID
			status    statusRow
		)
		if err := rows.Scan(
			&personID, &person.Name, &created, &updated,
			&statusFor, &status.rank, &status.title, &status.careerStart,
			&status.careerEnd, &status.currentDuty, &status.updated,
		); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		person.ID = id.PersonID(personID.UUID)
		person.CreatedAt = created.Time
		person.UpdatedAt = updated.Time

		summary := &models.PersonSummary{Person: &person}
		if statusFor.Valid {
			status.personID = statusFor
			summary.Status = status.model()
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list people: %w", s.classify(err))
	}
	return out, nil
}

const statusColumns = `person_id, current_rank, current_duty_title, career_start_date, career_end_date, current_duty_id, updated_at`

func (s *SQL) FindStatus(ctx context.Context, personID id.PersonID) (*models.AstronautStatus, error) {
	row := s.exec(ctx).QueryRowContext(ctx,
		s.q(`SELECT `+statusColumns+` FROM astronaut_status WHERE person_id = ?`), personID.String())
	var status statusRow
	if err := row.Scan(
		&status.personID, &status.rank, &status.title, &status.careerStart,
		&status.careerEnd, &status.currentDuty, &status.updated,
	); err != nil {
		return nil, s.classify(err)
	}
	return status.model(), nil
}

const dutyColumns = `id, person_id, rank, title, start_date, end_date, created_at`

func (s *SQL) FindDuty(ctx context.Context, dutyID id.DutyID) (*models.DutyRecord, error) {
	row := s.exec(ctx).QueryRowContext(ctx,
		s.q(`SELECT `+dutyColumns+` FROM duty_records WHERE id = ?`), dutyID.String())
	duty, err := scanDuty(row)
	if err != nil {
		return nil, s.classify(err)
	}
	return duty, nil
}

func (s *SQL) DutyExists(ctx context.Context, personID id.PersonID, title string, start time.Time) (bool, error) {
	var found int
	err := s.exec(ctx).QueryRowContext(ctx,
		s.q(`SELECT 1 FROM duty_records WHERE person_id = ? AND title = ? AND start_date = ?`),
		personID.String(), title, dateArg(start),
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check duty: %w", s.classify(err))
	}
	return true, nil
}

func (s *SQL) ListDuties(ctx context.Context, personID id.PersonID) ([]*models.DutyRecord, error) {
	rows, err := s.exec(ctx).QueryContext(ctx,
		s.q(`SELECT `+dutyColumns+` FROM duty_records WHERE person_id = ? ORDER BY start_date DESC`),
		personID.String())
	if err != nil {
		return nil, fmt.Errorf("list duties: %w", s.classify(err))
	}
	defer func() { _ = rows.Close() }()

	var out []*models.DutyRecord
	for rows.Next() {
		duty, err := scanDuty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan duty: %w", err)
		}
		out = append(out, duty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list duties: %w", s.classify(err))
	}
	return out, nil
}

// ApplyAssignment closes the prior duty before inserting the new one so the
// one-open-duty index never sees two open rows. The status upsert never
// rewrites career_start_date.
func (s *SQL) ApplyAssignment(ctx context.Context, plan *models.AssignmentPlan) error {
	return s.RunInTx(ctx, func(txCtx context.Context) error {
		ex := s.exec(txCtx)

		if plan.Closed != nil {
			res, err := ex.ExecContext(txCtx,
				s.q(`UPDATE duty_records SET end_date = ? WHERE id = ? AND end_date IS NULL`),
				nullableDateArg(plan.Closed.EndDate), plan.Closed.ID.String(),
			)
			if err != nil {
				return fmt.Errorf("close duty: %w", s.classify(err))
			}
			if err := requireRow(res); err != nil {
				return fmt.Errorf("close duty: %w", sentinel.ErrConflict)
			}
		}

		d := plan.Duty
		if _, err := ex.ExecContext(txCtx,
			s.q(`INSERT INTO duty_records (`+dutyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
			d.ID.String(), d.PersonID.String(), d.Rank, d.Title,
			dateArg(d.StartDate), nullableDateArg(d.EndDate), s.timestamp(d.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert duty: %w", s.classify(err))
		}

		st := plan.Status
		if _, err := ex.ExecContext(txCtx, s.q(`
			INSERT INTO astronaut_status (`+statusColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (person_id) DO UPDATE SET
				current_rank = excluded.current_rank,
				current_duty_title = excluded.current_duty_title,
				career_end_date = excluded.career_end_date,
				current_duty_id = excluded.current_duty_id,
				updated_at = excluded.updated_at`),
			st.PersonID.String(), st.CurrentRank, st.CurrentDutyTitle,
			dateArg(st.CareerStartDate), nullableDateArg(st.CareerEndDate),
			st.CurrentDutyID.String(), s.timestamp(st.UpdatedAt),
		); err != nil {
			return fmt.Errorf("upsert astronaut status: %w", s.classify(err))
		}
		return nil
	})
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
