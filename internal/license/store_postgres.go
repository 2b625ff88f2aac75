package license

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tradegate/internal/platform/postgres"
	"tradegate/pkg/platform/sentinel"
	txcontext "tradegate/pkg/platform/tx"
)

// PostgresStore persists licenses in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, l *License) (int64, error) {
	query := `
		INSERT INTO licenses (exporter_id, license_number, issue_date, expiry_date, signature_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING license_id
	`
	var id int64
	err := s.execer(ctx).QueryRowContext(ctx, query,
		l.ExporterID, l.Number, DateOf(l.IssueDate), DateOf(l.ExpiryDate), l.SignatureRef,
	).Scan(&id)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return 0, sentinel.ErrDuplicate
		}
		return 0, fmt.Errorf("insert license: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) FindByNumber(ctx context.Context, number string) (*License, error) {
	query := selectLicense + ` WHERE license_number = $1`
	return scanOne(s.execer(ctx).QueryRowContext(ctx, query, number))
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*License, error) {
	query := selectLicense + ` WHERE license_id = $1`
	return scanOne(s.execer(ctx).QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) ExpiringBetween(ctx context.Context, from, to time.Time) ([]*License, error) {
	query := selectLicense + ` WHERE expiry_date BETWEEN $1 AND $2 ORDER BY expiry_date`
	return s.queryMany(ctx, query, DateOf(from), DateOf(to))
}

func (s *PostgresStore) List(ctx context.Context) ([]*License, error) {
	return s.queryMany(ctx, selectLicense+` ORDER BY license_id`)
}

const selectLicense = `
	SELECT license_id, exporter_id, license_number, issue_date, expiry_date, signature_ref
	FROM licenses`

func (s *PostgresStore) queryMany(ctx context.Context, query string, args ...any) ([]*License, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query licenses: %w", err)
	}
	defer rows.Close()

	var out []*License
	for rows.Next() {
		l, err := scanLicense(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanOne(row *sql.Row) (*License, error) {
	l, err := scanLicense(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func scanLicense(scan func(dest ...any) error) (*License, error) {
	var l License
	if err := scan(&l.ID, &l.ExporterID, &l.Number, &l.IssueDate, &l.ExpiryDate, &l.SignatureRef); err != nil {
		return nil, err
	}
	// DATE columns come back at midnight in the session zone; normalize so
	// comparisons and round-trips stay byte identical.
	l.IssueDate = DateOf(l.IssueDate)
	l.ExpiryDate = DateOf(l.ExpiryDate)
	return &l, nil
}
