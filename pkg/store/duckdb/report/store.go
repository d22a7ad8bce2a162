package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkt-tools/pulse-report/pkg/models/store"
	"github.com/mkt-tools/pulse-report/pkg/store/duckdb"
)

// ErrRunNotFound is returned when no archived run matches the query.
var ErrRunNotFound = errors.New("report run not found")

// Store archives finished report runs and serves them back for the API
// and the CLI export path.
type Store interface {
	Add(ctx context.Context, run store.ReportRun) error
	Get(ctx context.Context, id string) (*store.ReportRun, error)
	ListByBusiness(ctx context.Context, business string, limit int) ([]store.ReportRun, error)
	Latest(ctx context.Context, business string) (*store.ReportRun, error)
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

func (s *reportStore) Add(ctx context.Context, run store.ReportRun) error {
	plan, err := json.Marshal(run.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	query := `
		INSERT INTO report_runs (id, business, cohort, trend, plan, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	tx := duckdb.GetTransaction(ctx)
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, run.ID, run.Business, run.Cohort, run.Trend, string(plan), string(run.Report), run.CreatedAt)
	} else {
		_, err = s.db.ExecContext(ctx, query, run.ID, run.Business, run.Cohort, run.Trend, string(plan), string(run.Report), run.CreatedAt)
	}
	if err != nil {
		return fmt.Errorf("insert report run: %w", err)
	}
	return nil
}

func (s *reportStore) Get(ctx context.Context, id string) (*store.ReportRun, error) {
	query := `
		SELECT id, business, cohort, trend, plan, report, created_at
		FROM report_runs
		WHERE id = ?`

	run, err := scanRun(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("query report run: %w", err)
	}
	return run, nil
}

func (s *reportStore) ListByBusiness(ctx context.Context, business string, limit int) ([]store.ReportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, business, cohort, trend, plan, report, created_at
		FROM report_runs
		WHERE business = ?
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, business, limit)
	if err != nil {
		return nil, fmt.Errorf("query report runs: %w", err)
	}
	defer rows.Close()

	var runs []store.ReportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report runs: %w", err)
	}
	return runs, nil
}

func (s *reportStore) Latest(ctx context.Context, business string) (*store.ReportRun, error) {
	query := `
		SELECT id, business, cohort, trend, plan, report, created_at
		FROM report_runs
		WHERE business = ?
		ORDER BY created_at DESC
		LIMIT 1`

	run, err := scanRun(s.db.QueryRowContext(ctx, query, business))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: business %s", ErrRunNotFound, business)
		}
		return nil, fmt.Errorf("query latest report run: %w", err)
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*store.ReportRun, error) {
	var (
		run    store.ReportRun
		plan   string
		report string
	)
	if err := row.Scan(&run.ID, &run.Business, &run.Cohort, &run.Trend, &plan, &report, &run.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(plan), &run.Plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	run.Report = json.RawMessage(report)
	return &run, nil
}
