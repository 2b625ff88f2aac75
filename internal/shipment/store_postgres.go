package shipment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tradegate/internal/platform/postgres"
	"tradegate/pkg/platform/sentinel"
	txcontext "tradegate/pkg/platform/tx"
)

// PostgresStore persists shipments in PostgreSQL.
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

func (s *PostgresStore) Insert(ctx context.Context, shp *Shipment) (int64, error) {
	query := `
		INSERT INTO shipments (license_id, product_name, origin, destination, quantity, total_cost, export_date, has_insurance, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING shipment_id
	`
	var exportDate sql.NullTime
	if !shp.ExportDate.IsZero() {
		exportDate = sql.NullTime{Time: shp.ExportDate, Valid: true}
	}
	var id int64
	err := s.execer(ctx).QueryRowContext(ctx, query,
		shp.LicenseID, shp.ProductName, shp.Origin, shp.Destination,
		shp.Quantity, shp.TotalCost, exportDate, shp.HasInsurance, string(shp.Status),
	).Scan(&id)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return 0, sentinel.ErrNotFound
		}
		return 0, fmt.Errorf("insert shipment: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id int64, status Status) error {
	query := `UPDATE shipments SET status = $1 WHERE shipment_id = $2`
	res, err := s.execer(ctx).ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Shipment, error) {
	query := selectShipment + ` WHERE shipment_id = $1`
	shp, err := scanShipment(s.execer(ctx).QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return shp, nil
}

func (s *PostgresStore) ListByLicense(ctx context.Context, licenseID int64) ([]*Shipment, error) {
	query := selectShipment + ` WHERE license_id = $1 ORDER BY shipment_id`
	return s.queryMany(ctx, query, licenseID)
}

func (s *PostgresStore) List(ctx context.Context) ([]*Shipment, error) {
	return s.queryMany(ctx, selectShipment+` ORDER BY shipment_id`)
}

const selectShipment = `
	SELECT shipment_id, license_id, product_name, origin, destination, quantity, total_cost, export_date, has_insurance, status
	FROM shipments`

func (s *PostgresStore) queryMany(ctx context.Context, query string, args ...any) ([]*Shipment, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shipments: %w", err)
	}
	defer rows.Close()

	var out []*Shipment
	for rows.Next() {
		shp, err := scanShipment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, shp)
	}
	return out, rows.Err()
}

func scanShipment(scan func(dest ...any) error) (*Shipment, error) {
	var (
		shp        Shipment
		exportDate sql.NullTime
		status     string
	)
	err := scan(&shp.ID, &shp.LicenseID, &shp.ProductName, &shp.Origin, &shp.Destination,
		&shp.Quantity, &shp.TotalCost, &exportDate, &shp.HasInsurance, &status)
	if err != nil {
		return nil, err
	}
	if exportDate.Valid {
		shp.ExportDate = exportDate.Time
	}
	shp.Status = Status(status)
	return &shp, nil
}
