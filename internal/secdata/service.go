//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package secdata is the entry point for security reference data
// operations. A Service validates inputs, stamps timestamps, routes each
// call to the record store of its entity kind and guards destructive
// operations by datastore mode.
package secdata

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-secdata/internal/config"
	"github.com/pgEdge/pgedge-secdata/internal/db"
	"github.com/pgEdge/pgedge-secdata/internal/logging"
	"github.com/pgEdge/pgedge-secdata/internal/model"
	"github.com/pgEdge/pgedge-secdata/internal/store"
	"github.com/pgEdge/pgedge-secdata/internal/validation"
)

// Conn is a datastore connection owned by the Service. *pgxpool.Pool
// satisfies it.
type Conn interface {
	db.DB
	Close()
}

// Connector opens the datastore connection for a mode.
type Connector func(ctx context.Context, mode Mode) (Conn, error)

// ConfigConnector returns a Connector that opens a pool using the
// datastore section configured for each mode.
func ConfigConnector(cfg *config.Config) Connector {
	return func(ctx context.Context, mode Mode) (Conn, error) {
		ds, err := cfg.Datastore(mode.String())
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrUnknownMode, mode, err)
		}
		pool, err := db.Connect(ctx, ds.ConnString(), int32(ds.MaxConns))
		if err != nil {
			return nil, err
		}
		return pool, nil
	}
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the clock used to stamp record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service is safe for concurrent use. Operations share a read lock so
// that Initialize and Close wait for calls in flight.
type Service struct {
	connect   Connector
	validator *validation.Validator
	now       func() time.Time

	mu     sync.RWMutex
	mode   Mode
	conn   Conn
	stores *stores
}

// stores holds one record store per entity kind, bound to one connection.
type stores struct {
	securityBase       *store.Store[model.SecurityBase]
	futures            *store.Store[model.Futures]
	fixedDeposits      *store.Store[model.FixedDeposit]
	fxForwards         *store.Store[model.FxForward]
	counterparties     *store.Store[model.Counterparty]
	securityAttributes *store.Store[model.SecurityAttribute]
	linkage            *store.Linkage
}

// tableStore is the kind-independent part of a record store.
type tableStore interface {
	Table() model.Table
	Count(ctx context.Context) (int64, error)
	DeleteAllTx(ctx context.Context, q db.Querier) (int64, error)
}

func newStores(conn db.DB) *stores {
	st := &stores{
		securityBase:       store.New[model.SecurityBase](conn, model.SecurityBaseTable),
		futures:            store.New[model.Futures](conn, model.FuturesTable),
		fixedDeposits:      store.New[model.FixedDeposit](conn, model.FixedDepositTable),
		fxForwards:         store.New[model.FxForward](conn, model.FxForwardTable),
		counterparties:     store.New[model.Counterparty](conn, model.CounterpartyTable),
		securityAttributes: store.New[model.SecurityAttribute](conn, model.SecurityAttributeTable),
	}
	st.linkage = store.NewLinkage(st.counterparties)
	return st
}

func (st *stores) all() []tableStore {
	return []tableStore{
		st.securityBase,
		st.futures,
		st.fixedDeposits,
		st.fxForwards,
		st.counterparties,
		st.securityAttributes,
	}
}

// New returns an uninitialized Service.
func New(connect Connector, opts ...Option) *Service {
	s := &Service{
		connect:   connect,
		validator: validation.New(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize binds the Service to the datastore of mode, replacing any
// previous binding.
func (s *Service) Initialize(ctx context.Context, mode Mode) error {
	if mode == ModeUninitialized {
		return fmt.Errorf("cannot initialize to mode %s", mode)
	}

	conn, err := s.connect(ctx, mode)
	if err != nil {
		return fmt.Errorf("failed to connect %s datastore: %w", mode, err)
	}

	s.mu.Lock()
	prev := s.conn
	s.conn = conn
	s.mode = mode
	s.stores = newStores(conn)
	s.mu.Unlock()

	if prev != nil {
		prev.Close()
	}

	logging.Info().Str("mode", mode.String()).Msg("Datastore initialized")
	return nil
}

// Mode returns the current datastore mode.
func (s *Service) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Close releases the datastore connection. The Service must be
// initialized again before further use.
func (s *Service) Close() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.stores = nil
	s.mode = ModeUninitialized
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// bound runs fn with the current stores under the read lock.
func (s *Service) bound(fn func(st *stores, conn Conn, mode Mode) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return ErrNotInitialized
	}
	return fn(s.stores, s.conn, s.mode)
}

func (s *Service) validate(operation string, input any) error {
	err := s.validator.Validate(operation, input)
	if err == nil {
		return nil
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		logging.Warn().
			Str("operation", operation).
			Interface("fields", verr.Fields).
			Msg("Input rejected")
	}
	return err
}

// stamp returns the current time truncated to the second.
func (s *Service) stamp() model.Field {
	return model.Field{Column: "timestamp", Value: s.now().Truncate(time.Second)}
}

// ClearAll deletes every row of every entity kind in one transaction. It
// is refused under production mode.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.bound(func(st *stores, conn Conn, mode Mode) error {
		if !mode.AllowsClear() {
			logging.Warn().Str("mode", mode.String()).Msg("Refusing to clear security data")
			return ErrClearForbiddenInProduction
		}

		var total int64
		err := store.WithTx(ctx, conn, func(tx pgx.Tx) error {
			for _, ts := range st.all() {
				n, err := ts.DeleteAllTx(ctx, tx)
				if err != nil {
					return err
				}
				total += n
			}
			return nil
		})
		if err != nil {
			logging.Error().Err(err).Str("mode", mode.String()).Msg("Failed to clear security data")
			return err
		}

		logging.Info().
			Str("mode", mode.String()).
			Int64("rows", total).
			Msg("Cleared security data")
		return nil
	})
}

// Status describes the bound datastore.
type Status struct {
	Mode        string               `json:"mode"`
	SchemaReady bool                 `json:"schema_ready"`
	Counts      map[model.Kind]int64 `json:"counts"`
	Metadata    map[string]string    `json:"metadata,omitempty"`
}

// Status reports the mode, whether the schema exists, the row count of
// every entity kind and the datastore metadata when present.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	var status *Status
	err := s.bound(func(st *stores, conn Conn, mode Mode) error {
		status = &Status{Mode: mode.String(), Counts: make(map[model.Kind]int64)}

		ready, err := db.SchemaExists(ctx, conn)
		if err != nil {
			return fmt.Errorf("failed to check schema: %w", err)
		}
		status.SchemaReady = ready
		if ready {
			for _, ts := range st.all() {
				n, err := ts.Count(ctx)
				if err != nil {
					return err
				}
				status.Counts[ts.Table().Kind] = n
			}
		}

		exists, err := db.MetadataExists(ctx, conn)
		if err != nil {
			return fmt.Errorf("failed to check metadata: %w", err)
		}
		if exists {
			status.Metadata, err = db.GetAllMetadata(ctx, conn)
			if err != nil {
				return fmt.Errorf("failed to read metadata: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// CreateSchema creates the reference data tables and records the mode in
// the metadata table. A datastore already recorded for another mode is
// refused unless dropExisting is set. With dropExisting the tables are
// dropped first, which is refused under production mode.
func (s *Service) CreateSchema(ctx context.Context, dropExisting bool) error {
	return s.bound(func(_ *stores, conn Conn, mode Mode) error {
		if !dropExisting {
			if err := checkRecordedMode(ctx, conn, mode); err != nil {
				return err
			}
		} else {
			if !mode.AllowsClear() {
				return ErrClearForbiddenInProduction
			}
			if err := db.DropSchema(ctx, conn); err != nil {
				return err
			}
		}
		if err := db.CreateSchema(ctx, conn); err != nil {
			return err
		}
		if err := db.SaveMetadata(ctx, conn, mode.String()); err != nil {
			return err
		}
		logging.Info().Str("mode", mode.String()).Msg("Schema ready")
		return nil
	})
}

// DropSchema drops the reference data and metadata tables. It is refused
// under production mode.
func (s *Service) DropSchema(ctx context.Context) error {
	return s.bound(func(_ *stores, conn Conn, mode Mode) error {
		if !mode.AllowsClear() {
			logging.Warn().Str("mode", mode.String()).Msg("Refusing to drop schema")
			return ErrClearForbiddenInProduction
		}
		if err := db.DropSchema(ctx, conn); err != nil {
			return err
		}
		if err := db.DropMetadata(ctx, conn); err != nil {
			return fmt.Errorf("failed to drop metadata: %w", err)
		}
		logging.Info().Str("mode", mode.String()).Msg("Schema dropped")
		return nil
	})
}

// checkRecordedMode fails when the metadata names a mode other than mode.
func checkRecordedMode(ctx context.Context, conn Conn, mode Mode) error {
	exists, err := db.MetadataExists(ctx, conn)
	if err != nil {
		return fmt.Errorf("failed to check metadata: %w", err)
	}
	if !exists {
		return nil
	}
	recorded, err := db.GetMetadataValue(ctx, conn, "mode")
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	if recorded != mode.String() {
		logging.Warn().
			Str("recorded_mode", recorded).
			Str("mode", mode.String()).
			Msg("Datastore belongs to another mode")
		return fmt.Errorf("%w: datastore was initialized for %s mode; use --drop-existing to reinitialize",
			ErrModeMismatch, recorded)
	}
	return nil
}
