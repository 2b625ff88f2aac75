package exporter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tradegate/internal/platform/postgres"
	"tradegate/pkg/platform/sentinel"
	txcontext "tradegate/pkg/platform/tx"
)

// PostgresStore persists exporters in PostgreSQL.
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

func (s *PostgresStore) Create(ctx context.Context, e *Exporter) (int64, error) {
	query := `
		INSERT INTO exporters (firm_name, iec_number, contact_person, country)
		VALUES ($1, $2, $3, $4)
		RETURNING exporter_id
	`
	var id int64
	err := s.execer(ctx).QueryRowContext(ctx, query, e.FirmName, e.IEC, e.ContactPerson, e.Country).Scan(&id)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return 0, sentinel.ErrDuplicate
		}
		return 0, fmt.Errorf("insert exporter: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) FindByIEC(ctx context.Context, iec string) (*Exporter, error) {
	query := `
		SELECT exporter_id, firm_name, iec_number, contact_person, country
		FROM exporters
		WHERE iec_number = $1
	`
	return s.scanOne(s.execer(ctx).QueryRowContext(ctx, query, iec))
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Exporter, error) {
	query := `
		SELECT exporter_id, firm_name, iec_number, contact_person, country
		FROM exporters
		WHERE exporter_id = $1
	`
	return s.scanOne(s.execer(ctx).QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) List(ctx context.Context) ([]*Exporter, error) {
	query := `
		SELECT exporter_id, firm_name, iec_number, contact_person, country
		FROM exporters
		ORDER BY exporter_id
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list exporters: %w", err)
	}
	defer rows.Close()

	var out []*Exporter
	for rows.Next() {
		var e Exporter
		if err := rows.Scan(&e.ID, &e.FirmName, &e.IEC, &e.ContactPerson, &e.Country); err != nil {
			return nil, fmt.Errorf("scan exporter: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) scanOne(row *sql.Row) (*Exporter, error) {
	var e Exporter
	err := row.Scan(&e.ID, &e.FirmName, &e.IEC, &e.ContactPerson, &e.Country)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan exporter: %w", err)
	}
	return &e, nil
}
