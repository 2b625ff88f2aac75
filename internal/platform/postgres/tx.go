package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dErrors "tradegate/pkg/domain-errors"
	txcontext "tradegate/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// TxRunner executes a function inside a single SQL transaction. The
// transaction is carried through context so stores can pick it up via their
// execer. Any error from fn rolls the whole transaction back, so callers get
// all-or-nothing semantics.
type TxRunner struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTxRunner builds a runner over the given pool. A zero timeout falls back
// to the package default.
func NewTxRunner(db *sql.DB, timeout time.Duration) *TxRunner {
	return &TxRunner{db: db, timeout: timeout}
}

// RunInTx begins a transaction, runs fn with the transaction in context, and
// commits only when fn returns nil. A context deadline is applied when the
// caller did not set one.
func (t *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify(err, "commit transaction")
	}
	return nil
}

func classify(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, op+" timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, op+" failed")
}
