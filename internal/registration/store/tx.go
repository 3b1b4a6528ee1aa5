package store

import (
	"context"
	"database/sql"
	"time"

	dErrors "partnerhub/pkg/domain-errors"
	"partnerhub/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// PostgresTx runs registration write phases inside a single database
// transaction. The transaction rides the context so PostgresStore
// methods called from fn execute against it; any error from fn rolls
// everything back.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPostgresTx constructs a transaction runner over db.
func NewPostgresTx(db *sql.DB) *PostgresTx {
	return &PostgresTx{db: db}
}

func (t *PostgresTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
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

	sqlTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}

	return sqlTx.Commit()
}
