package invoice

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

// PostgresStore persists invoices in PostgreSQL.
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

func (s *PostgresStore) Create(ctx context.Context, inv *Invoice) (int64, error) {
	query := `
		INSERT INTO invoices (shipment_id, amount, payment_status)
		VALUES ($1, $2, $3)
		RETURNING invoice_id
	`
	var id int64
	err := s.execer(ctx).QueryRowContext(ctx, query,
		inv.ShipmentID, inv.Amount, string(inv.PaymentStatus),
	).Scan(&id)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return 0, sentinel.ErrDuplicate
		}
		if postgres.IsForeignKeyViolation(err) {
			return 0, sentinel.ErrNotFound
		}
		return 0, fmt.Errorf("insert invoice: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) MarkPaid(ctx context.Context, id int64, paidOn time.Time) error {
	query := `UPDATE invoices SET payment_status = $1, payment_date = $2 WHERE invoice_id = $3`
	res, err := s.execer(ctx).ExecContext(ctx, query, string(PaymentPaid), paidOn, id)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Invoice, error) {
	query := selectInvoice + ` WHERE invoice_id = $1`
	return scanOne(s.execer(ctx).QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) FindByShipment(ctx context.Context, shipmentID int64) (*Invoice, error) {
	query := selectInvoice + ` WHERE shipment_id = $1`
	return scanOne(s.execer(ctx).QueryRowContext(ctx, query, shipmentID))
}

func (s *PostgresStore) List(ctx context.Context) ([]*Invoice, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, selectInvoice+` ORDER BY invoice_id`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var out []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

const selectInvoice = `
	SELECT invoice_id, shipment_id, amount, payment_date, payment_status
	FROM invoices`

func scanOne(row *sql.Row) (*Invoice, error) {
	inv, err := scanInvoice(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func scanInvoice(scan func(dest ...any) error) (*Invoice, error) {
	var (
		inv      Invoice
		paidOn   sql.NullTime
		statusID string
	)
	if err := scan(&inv.ID, &inv.ShipmentID, &inv.Amount, &paidOn, &statusID); err != nil {
		return nil, err
	}
	if paidOn.Valid {
		inv.PaymentDate = paidOn.Time
	}
	inv.PaymentStatus = PaymentStatus(statusID)
	return &inv, nil
}
