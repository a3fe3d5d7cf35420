package repository

import (
	"context"
	"fmt"

	"hostal-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const roomLockQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

type pgxTransactor struct {
	db  database.PgxIface
	log *zap.Logger
	raw *zap.Logger
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn TxFunc) error {
	return t.run(ctx, uuid.Nil, fn)
}

func (t *pgxTransactor) WithinRoomLock(ctx context.Context, roomID uuid.UUID, fn TxFunc) error {
	return t.run(ctx, roomID, fn)
}

func (t *pgxTransactor) run(ctx context.Context, roomID uuid.UUID, fn TxFunc) (err error) {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}
		// the caller may already be gone; the rollback must still reach the server
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			t.log.Warn("Rollback failed", zap.Error(rbErr))
		}
	}()

	conn := database.NewTxConn(tx)
	if roomID != uuid.Nil {
		if err = lockRoom(ctx, conn, roomID); err != nil {
			t.log.Error("Failed to acquire room lock",
				zap.Error(err),
				zap.String("room_id", roomID.String()),
			)
			return err
		}
	}

	repo := newRepositories(conn, t.raw)
	repo.Tx = &nestedTransactor{conn: conn, repo: repo}

	if err = fn(ctx, repo); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", mapPgError(err))
	}
	return nil
}

func lockRoom(ctx context.Context, db database.PgxIface, roomID uuid.UUID) error {
	if _, err := db.Exec(ctx, roomLockQuery, roomID.String()); err != nil {
		return fmt.Errorf("lock room %s: %w", roomID.String(), err)
	}
	return nil
}

// nestedTransactor joins the transaction that is already open.
type nestedTransactor struct {
	conn database.PgxIface
	repo *Repository
}

func (n *nestedTransactor) WithinTx(ctx context.Context, fn TxFunc) error {
	return fn(ctx, n.repo)
}

func (n *nestedTransactor) WithinRoomLock(ctx context.Context, roomID uuid.UUID, fn TxFunc) error {
	if err := lockRoom(ctx, n.conn, roomID); err != nil {
		return err
	}
	return fn(ctx, n.repo)
}
