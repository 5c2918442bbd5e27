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
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-secdata/internal/logging"
	"github.com/pgEdge/pgedge-secdata/internal/model"
)

// Linkage makes sure a counterparty row exists for every fixed deposit and
// FX forward, creating it in the same transaction as the record that
// references it.
type Linkage struct {
	counterparties *Store[model.Counterparty]
}

// NewLinkage returns a Linkage writing to the counterparty store.
func NewLinkage(counterparties *Store[model.Counterparty]) *Linkage {
	return &Linkage{counterparties: counterparties}
}

// Ensure returns a Companion that creates the (name, partyType)
// counterparty. The insert runs under a savepoint so that an existing row
// can be tolerated without aborting the enclosing transaction; any other
// failure aborts it.
func (l *Linkage) Ensure(name string, partyType model.PartyType) Companion {
	fields := []model.Field{
		{Column: "geneva_counter_party", Value: name},
		{Column: "geneva_party_type", Value: string(partyType)},
	}

	return func(ctx context.Context, tx pgx.Tx) error {
		err := pgx.BeginFunc(ctx, tx, func(sp pgx.Tx) error {
			return l.counterparties.CreateTx(ctx, sp, fields)
		})
		if errors.Is(err, ErrAlreadyExists) {
			logging.Warn().
				Str("geneva_counter_party", name).
				Str("geneva_party_type", string(partyType)).
				Msg("Counterparty already exists, keeping existing row")
			return nil
		}
		if err != nil {
			return err
		}

		logging.Info().
			Str("geneva_counter_party", name).
			Str("geneva_party_type", string(partyType)).
			Msg("Counterparty created")
		return nil
	}
}
