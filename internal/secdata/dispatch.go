//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package secdata

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-secdata/internal/model"
)

// Op names a per-entity operation.
type Op string

// Per-entity operations.
const (
	OpGet    Op = "get"
	OpAdd    Op = "add"
	OpUpdate Op = "update"
)

// Decoder fills an operation input, typically from a JSON body.
type Decoder func(input any) error

// Execute decodes the input of op for kind and runs it. A get returns the
// record, or nil when the key is absent; add and update return nil.
func (s *Service) Execute(ctx context.Context, op Op, kind model.Kind, decode Decoder) (any, error) {
	switch kind {
	case model.KindSecurityBase:
		return run(ctx, op, decode, s.GetSecurityBase, s.AddSecurityBase, s.UpdateSecurityBase)
	case model.KindFutures:
		return run(ctx, op, decode, s.GetFutures, s.AddFutures, s.UpdateFutures)
	case model.KindFixedDeposit:
		return run(ctx, op, decode, s.GetFixedDeposit, s.AddFixedDeposit, s.UpdateFixedDeposit)
	case model.KindFxForward:
		return run(ctx, op, decode, s.GetFxForward, s.AddFxForward, s.UpdateFxForward)
	case model.KindCounterparty:
		// Counterparties are listed, never fetched by key.
		return run[struct{}, model.Counterparty](ctx, op, decode, nil, s.AddCounterparty, s.UpdateCounterparty)
	case model.KindSecurityAttribute:
		return run(ctx, op, decode, s.GetSecurityAttribute, s.AddSecurityAttribute, s.UpdateSecurityAttribute)
	}
	return nil, fmt.Errorf("%w: unknown entity kind %q", ErrUnsupported, kind)
}

func run[K, R, A, U any](
	ctx context.Context,
	op Op,
	decode Decoder,
	get func(context.Context, K) (*R, error),
	add func(context.Context, A) error,
	upd func(context.Context, U) error,
) (any, error) {
	switch op {
	case OpGet:
		if get == nil {
			break
		}
		var key K
		if err := decode(&key); err != nil {
			return nil, err
		}
		rec, err := get(ctx, key)
		if err != nil || rec == nil {
			return nil, err
		}
		return rec, nil
	case OpAdd:
		var in A
		if err := decode(&in); err != nil {
			return nil, err
		}
		return nil, add(ctx, in)
	case OpUpdate:
		var in U
		if err := decode(&in); err != nil {
			return nil, err
		}
		return nil, upd(ctx, in)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, op)
}
