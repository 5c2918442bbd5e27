//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-secdata/internal/db"
)

// WithTx runs fn in a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including on panic.
func WithTx(ctx context.Context, database db.DB, fn func(pgx.Tx) error) error {
	return pgx.BeginTxFunc(ctx, database, pgx.TxOptions{}, fn)
}

// withReadTx runs fn in a read-only transaction.
func withReadTx(ctx context.Context, database db.DB, fn func(pgx.Tx) error) error {
	return pgx.BeginTxFunc(ctx, database, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}
