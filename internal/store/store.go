//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store implements the record store shared by every entity kind:
// create, update, query and bulk delete against a natural key, with
// existence guards and the counterparty linkage policy.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-secdata/internal/db"
	"github.com/pgEdge/pgedge-secdata/internal/logging"
	"github.com/pgEdge/pgedge-secdata/internal/model"
	"github.com/pgEdge/pgedge-secdata/internal/validation"
)

// Companion is an extra write that runs inside a create transaction after
// the primary row is inserted. A non-nil error aborts the create.
type Companion func(ctx context.Context, tx pgx.Tx) error

// Store reads and writes one table, scanning rows into T. T must carry a
// db tag for every column of the table.
type Store[T any] struct {
	db    db.DB
	table model.Table
}

// New returns a store for table on database.
func New[T any](database db.DB, table model.Table) *Store[T] {
	return &Store[T]{db: database, table: table}
}

// Table returns the table this store manages.
func (s *Store[T]) Table() model.Table {
	return s.table
}

// Create inserts a new row. It fails with a RecordError if the key is taken.
func (s *Store[T]) Create(ctx context.Context, fields []model.Field) error {
	return s.CreateWith(ctx, fields)
}

// CreateWith inserts a new row and runs the companions in the same
// transaction. Nothing is committed unless every step succeeds.
func (s *Store[T]) CreateWith(ctx context.Context, fields []model.Field, companions ...Companion) error {
	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.CreateTx(ctx, tx, fields); err != nil {
			return err
		}
		for _, c := range companions {
			if err := c(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	return s.finish("create", keyString(s.table, fields), err)
}

// CreateTx inserts a new row using q, which is normally an open
// transaction owned by the caller. Outcomes are returned, not logged.
func (s *Store[T]) CreateTx(ctx context.Context, q db.Querier, fields []model.Field) error {
	key := keyString(s.table, fields)
	keyArgs, err := keyValues(s.table, fields)
	if err != nil {
		return s.storageErr("create", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, existsSQL(s.table), keyArgs...).Scan(&exists); err != nil {
		return s.storageErr("create", err)
	}
	if exists {
		return &RecordError{Entity: s.table.Kind, Key: key, Reason: ReasonAlreadyExists}
	}

	sql, args, err := insertSQL(s.table, fields)
	if err != nil {
		return s.storageErr("create", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		// A concurrent writer may have won the race for the key.
		if isUniqueViolation(err) {
			return &RecordError{Entity: s.table.Kind, Key: key, Reason: ReasonAlreadyExists}
		}
		return s.storageErr("create", err)
	}
	return nil
}

// Update overwrites the supplied non-key fields of an existing row. Fields
// that are not supplied keep their values. It fails with a RecordError if
// the key is absent.
func (s *Store[T]) Update(ctx context.Context, fields []model.Field) error {
	key := keyString(s.table, fields)
	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		keyArgs, err := keyValues(s.table, fields)
		if err != nil {
			return err
		}

		var id int64
		err = tx.QueryRow(ctx, lockSQL(s.table), keyArgs...).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return &RecordError{Entity: s.table.Kind, Key: key, Reason: ReasonNotFound}
		}
		if err != nil {
			return err
		}

		sql, args, err := updateSQL(s.table, fields, id)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	return s.finish("update", key, err)
}

// Query returns the rows matching the key fields exactly, oldest first.
func (s *Store[T]) Query(ctx context.Context, key []model.Field) ([]T, error) {
	keyArgs, err := keyValues(s.table, key)
	if err != nil {
		return nil, s.storageErr("query", err)
	}
	return s.collect(ctx, "query", selectSQL(s.table, true), keyArgs...)
}

// Get returns the first row matching the key, or nil when there is none.
func (s *Store[T]) Get(ctx context.Context, key []model.Field) (*T, error) {
	rows, err := s.Query(ctx, key)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// List returns every row, oldest first.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	return s.collect(ctx, "list", selectSQL(s.table, false))
}

func (s *Store[T]) collect(ctx context.Context, op, sql string, args ...any) ([]T, error) {
	var out []T
	err := withReadTx(ctx, s.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
		return err
	})
	if err != nil {
		serr := s.storageErr(op, err)
		logging.Error().Err(err).Str("entity", string(s.table.Kind)).Str("op", op).Msg("Query failed")
		return nil, serr
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// DeleteAll removes every row and returns how many were removed.
func (s *Store[T]) DeleteAll(ctx context.Context) (int64, error) {
	var n int64
	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		n, err = s.DeleteAllTx(ctx, tx)
		return err
	})
	if err != nil {
		return 0, s.finish("delete_all", "*", err)
	}
	return n, nil
}

// DeleteAllTx removes every row using q.
func (s *Store[T]) DeleteAllTx(ctx context.Context, q db.Querier) (int64, error) {
	tag, err := q.Exec(ctx, "DELETE FROM "+ident(s.table.Name))
	if err != nil {
		return 0, s.storageErr("delete_all", err)
	}
	logging.Debug().
		Str("entity", string(s.table.Kind)).
		Int64("rows", tag.RowsAffected()).
		Msg("Deleted all rows")
	return tag.RowsAffected(), nil
}

// Count returns the number of rows.
func (s *Store[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := withReadTx(ctx, s.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, "SELECT count(*) FROM "+ident(s.table.Name)).Scan(&n)
	})
	if err != nil {
		return 0, s.storageErr("count", err)
	}
	return n, nil
}

func (s *Store[T]) storageErr(op string, err error) error {
	var serr *StorageError
	if errors.As(err, &serr) {
		return err
	}
	return &StorageError{Op: op, Entity: s.table.Kind, Err: err}
}

// finish logs the outcome of a mutation. Existence-guard outcomes are
// expected and logged as warnings; anything else is a storage failure.
func (s *Store[T]) finish(op, key string, err error) error {
	if err == nil {
		logging.Info().
			Str("entity", string(s.table.Kind)).
			Str("op", op).
			Str("key", key).
			Msg("Record written")
		return nil
	}

	var rerr *RecordError
	if errors.As(err, &rerr) {
		logging.Warn().
			Str("entity", string(rerr.Entity)).
			Str("op", op).
			Str("key", rerr.Key).
			Str("reason", string(rerr.Reason)).
			Msg("Existence guard rejected write")
		return err
	}

	logging.Error().
		Err(err).
		Str("entity", string(s.table.Kind)).
		Str("op", op).
		Str("key", key).
		Msg("Storage operation failed")
	return s.storageErr(op, err)
}

// SQL construction. Identifiers come from the static table definitions
// and are quoted; values are always bound as parameters.

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func keyValues(t model.Table, fields []model.Field) ([]any, error) {
	args := make([]any, 0, len(t.Key))
	for _, k := range t.Key {
		v, ok := model.Lookup(fields, k)
		if !ok {
			return nil, fmt.Errorf("missing key field %s", k)
		}
		args = append(args, v)
	}
	return args, nil
}

func keyString(t model.Table, fields []model.Field) string {
	parts := make([]string, 0, len(t.Key))
	for _, k := range t.Key {
		v, _ := model.Lookup(fields, k)
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, "/")
}

func keyWhere(t model.Table, start int) string {
	conds := make([]string, len(t.Key))
	for i, k := range t.Key {
		conds[i] = fmt.Sprintf("%s = $%d", ident(k), start+i)
	}
	return strings.Join(conds, " AND ")
}

func existsSQL(t model.Table) string {
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)", ident(t.Name), keyWhere(t, 1))
}

func lockSQL(t model.Table) string {
	return fmt.Sprintf("SELECT id FROM %s WHERE %s FOR UPDATE", ident(t.Name), keyWhere(t, 1))
}

func selectExpr(c model.Column) string {
	col := ident(c.Name)
	switch c.Type {
	case model.Numeric:
		return fmt.Sprintf("%s::float8 AS %s", col, col)
	case model.Date:
		return fmt.Sprintf("COALESCE(to_char(%s, 'YYYY-MM-DD'), '') AS %s", col, col)
	case model.Timestamp:
		return fmt.Sprintf("COALESCE(to_char(%s, 'YYYY-MM-DD HH24:MI:SS'), '') AS %s", col, col)
	}
	// NULL text reads back as "".
	return fmt.Sprintf("COALESCE(%s, '') AS %s", col, col)
}

func selectSQL(t model.Table, byKey bool) string {
	exprs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		exprs[i] = selectExpr(c)
	}
	sql := fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), ident(t.Name))
	if byKey {
		sql += " WHERE " + keyWhere(t, 1)
	}
	return sql + " ORDER BY created_at, id"
}

// encode converts a supplied value into the Go type bound for its column.
func encode(c model.Column, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	switch c.Type {
	case model.Numeric:
		f, err := validation.ParseNumber(s)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		return f, nil
	case model.Date:
		d, err := validation.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		return d, nil
	}
	return s, nil
}

func insertSQL(t model.Table, fields []model.Field) (string, []any, error) {
	cols := make([]string, 0, len(fields))
	params := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		c, ok := t.Column(f.Column)
		if !ok {
			return "", nil, fmt.Errorf("unknown column %s for %s", f.Column, t.Name)
		}
		v, err := encode(c, f.Value)
		if err != nil {
			return "", nil, err
		}
		args = append(args, v)
		cols = append(cols, ident(c.Name))
		params = append(params, fmt.Sprintf("$%d", len(args)))
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident(t.Name), strings.Join(cols, ", "), strings.Join(params, ", "))
	return sql, args, nil
}

func updateSQL(t model.Table, fields []model.Field, id int64) (string, []any, error) {
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		if t.IsKey(f.Column) {
			continue
		}
		c, ok := t.Column(f.Column)
		if !ok {
			return "", nil, fmt.Errorf("unknown column %s for %s", f.Column, t.Name)
		}
		v, err := encode(c, f.Value)
		if err != nil {
			return "", nil, err
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", ident(c.Name), len(args)))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		ident(t.Name), strings.Join(sets, ", "), len(args))
	return sql, args, nil
}
