package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TxConn adapts a pgx.Tx to PgxIface. Begin opens a savepoint and Close is a
// no-op; the owner of the transaction commits or rolls it back.
type TxConn struct {
	tx pgx.Tx
}

func NewTxConn(tx pgx.Tx) *TxConn {
	return &TxConn{tx: tx}
}

func (c *TxConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.tx.Query(ctx, sql, args...)
}

func (c *TxConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.tx.QueryRow(ctx, sql, args...)
}

func (c *TxConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.tx.Exec(ctx, sql, args...)
}

func (c *TxConn) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.tx.Begin(ctx)
}

func (c *TxConn) Ping(ctx context.Context) error {
	return c.tx.Conn().Ping(ctx)
}

func (c *TxConn) Close() {}
