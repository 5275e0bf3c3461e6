package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/rozgarmap/district-stats/internal/domain"
)

// PostgresStore is the database-backed Store. All name/state matching uses
// ILIKE so the case-insensitivity contract holds in one place.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres opens a connection pool against the given DSN and ensures the
// districts schema exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	s := &PostgresStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS districts (
			code               TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			state              TEXT NOT NULL,
			total_workers      BIGINT NOT NULL DEFAULT 0,
			total_wages        DOUBLE PRECISION NOT NULL DEFAULT 0,
			households         BIGINT NOT NULL DEFAULT 0,
			employment_days    INTEGER NOT NULL DEFAULT 0,
			work_completed     BIGINT NOT NULL DEFAULT 0,
			budget_utilization DOUBLE PRECISION NOT NULL DEFAULT 0,
			last_updated       TIMESTAMPTZ NOT NULL,
			monthly_data       JSONB NOT NULL DEFAULT '[]'
		);
		CREATE INDEX IF NOT EXISTS districts_name_idx ON districts (lower(name));
		CREATE INDEX IF NOT EXISTS districts_state_idx ON districts (lower(state));
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const districtColumns = `code, name, state, total_workers, total_wages, households,
	employment_days, work_completed, budget_utilization, last_updated, monthly_data`

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*domain.District, error) {
	return s.queryOne(ctx,
		`SELECT `+districtColumns+` FROM districts WHERE name ILIKE $1 LIMIT 1`, name)
}

func (s *PostgresStore) FindByNameInState(ctx context.Context, name, state string) (*domain.District, error) {
	return s.queryOne(ctx,
		`SELECT `+districtColumns+` FROM districts
		 WHERE $1 ILIKE '%' || name || '%' AND state ILIKE '%' || $2 || '%'
		 LIMIT 1`, name, state)
}

func (s *PostgresStore) FindExactInState(ctx context.Context, name, state string) (*domain.District, error) {
	return s.queryOne(ctx,
		`SELECT `+districtColumns+` FROM districts
		 WHERE name ILIKE $1 AND state ILIKE '%' || $2 || '%'
		 LIMIT 1`, name, state)
}

func (s *PostgresStore) ListByState(ctx context.Context, state string, limit int) ([]domain.District, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+districtColumns+` FROM districts
		 WHERE state ILIKE '%' || $1 || '%'
		 ORDER BY name LIMIT $2`, state, limit)
	if err != nil {
		return nil, fmt.Errorf("list by state: %w", err)
	}
	defer rows.Close()

	var out []domain.District
	for rows.Next() {
		d, err := scanDistrict(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListNames(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT name FROM districts ORDER BY name`)
}

func (s *PostgresStore) ListNamesByState(ctx context.Context, state string) ([]string, error) {
	return s.queryStrings(ctx,
		`SELECT name FROM districts WHERE state ILIKE $1 ORDER BY name`, state)
}

func (s *PostgresStore) ListStates(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT DISTINCT state FROM districts ORDER BY state`)
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM districts`).Scan(&n)
	return n, err
}

// ReplaceAll swaps the table contents inside a single transaction, so readers
// never observe a half-synced catalog.
func (s *PostgresStore) ReplaceAll(ctx context.Context, records []domain.District) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sync transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM districts`); err != nil {
		return fmt.Errorf("clear districts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO districts (`+districtColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		d := &records[i]
		monthly, err := json.Marshal(d.MonthlyData)
		if err != nil {
			return fmt.Errorf("marshal monthly data for %s: %w", d.Code, err)
		}
		if _, err := stmt.ExecContext(ctx,
			d.Code, d.Name, d.State, d.TotalWorkers, d.TotalWages, d.Households,
			d.EmploymentDays, d.WorkCompleted, d.BudgetUtilization, d.LastUpdated, monthly,
		); err != nil {
			return fmt.Errorf("insert district %s: %w", d.Code, err)
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDistrict(row rowScanner) (*domain.District, error) {
	var d domain.District
	var monthly []byte
	err := row.Scan(
		&d.Code, &d.Name, &d.State, &d.TotalWorkers, &d.TotalWages, &d.Households,
		&d.EmploymentDays, &d.WorkCompleted, &d.BudgetUtilization, &d.LastUpdated, &monthly,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(monthly, &d.MonthlyData); err != nil {
		return nil, fmt.Errorf("unmarshal monthly data for %s: %w", d.Code, err)
	}
	return &d, nil
}

func (s *PostgresStore) queryOne(ctx context.Context, query string, args ...any) (*domain.District, error) {
	d, err := scanDistrict(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

func (s *PostgresStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
