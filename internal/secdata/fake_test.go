package secdata

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errUnexpectedCall = errors.New("unexpected storage call")

// execCall is one statement executed through a fake connection.
type execCall struct {
	sql  string
	args []any
}

// fakeConn records storage calls. Existence checks report a row for every
// table named in exists; every other statement succeeds without rows.
type fakeConn struct {
	mu        sync.Mutex
	exists    map[string]bool
	execs     []execCall
	calls     int
	commits   int
	rollbacks int
	closed    bool
	failBegin bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{exists: map[string]bool{}}
}

func (f *fakeConn) touch() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeConn) Begin(ctx context.Context) (pgx.Tx, error) {
	return f.BeginTx(ctx, pgx.TxOptions{})
}

func (f *fakeConn) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	f.touch()
	if f.failBegin {
		return nil, errUnexpectedCall
	}
	return &fakeTx{conn: f}, nil
}

func (f *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeConn) Query(context.Context, string, ...any) (pgx.Rows, error) {
	f.touch()
	return nil, errUnexpectedCall
}

func (f *fakeConn) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.touch()
	for table, ok := range f.exists {
		if ok && strings.Contains(sql, `"`+table+`"`) {
			return fakeRow{exists: true}
		}
	}
	return fakeRow{}
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeConn) statements() []execCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]execCall(nil), f.execs...)
}

// fakeTx forwards statements to its connection. Methods the store does not
// use are left to the embedded nil interface.
type fakeTx struct {
	pgx.Tx
	conn *fakeConn
	done bool
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) {
	return &fakeTx{conn: t.conn}, nil
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.conn.mu.Lock()
	t.conn.commits++
	t.conn.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.conn.mu.Lock()
	t.conn.rollbacks++
	t.conn.mu.Unlock()
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.conn.Exec(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.conn.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.conn.QueryRow(ctx, sql, args...)
}

// fakeRow answers existence checks and row locks.
type fakeRow struct {
	exists bool
}

func (r fakeRow) Scan(dest ...any) error {
	switch d := dest[0].(type) {
	case *bool:
		*d = r.exists
		return nil
	case *int64:
		if !r.exists {
			return pgx.ErrNoRows
		}
		*d = 1
		return nil
	}
	return errUnexpectedCall
}

// fakeConnector hands out fake connections and remembers them.
type fakeConnector struct {
	conns []*fakeConn
	modes []Mode
	err   error
}

func (c *fakeConnector) connect(_ context.Context, mode Mode) (Conn, error) {
	if c.err != nil {
		return nil, c.err
	}
	conn := newFakeConn()
	c.conns = append(c.conns, conn)
	c.modes = append(c.modes, mode)
	return conn, nil
}

func (c *fakeConnector) last() *fakeConn {
	return c.conns[len(c.conns)-1]
}
