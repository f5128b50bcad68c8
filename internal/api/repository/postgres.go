package repository

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/minglehq/mingle/internal/common"
)

type ctxKey string

const txCtxKey = ctxKey("TX")

func contextGetTX(ctx context.Context) *TX {
	tx, ok := ctx.Value(txCtxKey).(*TX)
	if !ok {
		return nil
	}
	return tx
}

type DB struct {
	*sqlx.DB
}

func OpenDB(cfg *common.Config) (*DB, error) {
	idle, err := time.ParseDuration(cfg.DB.MaxIdleConnTime)
	if err != nil {
		return nil, fmt.Errorf("parsing max idle connection time: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DB.MaxOpenConn)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConn)
	db.SetConnMaxIdleTime(idle)
	return &DB{db}, nil
}

type TX struct {
	*sqlx.Tx
}

// execer returns the in-flight transaction when the context carries one,
// the pool otherwise.
func (db *DB) execer(ctx context.Context) sqlx.ExtContext {
	if tx := contextGetTX(ctx); tx != nil {
		return tx
	}
	return db
}

func (db *DB) BeginTx(ctx context.Context) (*TX, error) {
	txx, err := db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &TX{txx}, nil
}

// RunInTX runs fn inside a transaction carried through the context, the
// repositories pick it up via contextGetTX so callers compose freely.
func (db *DB) RunInTX(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err = fn(context.WithValue(ctx, txCtxKey, tx)); err != nil {
		return err
	}
	return tx.Commit()
}
