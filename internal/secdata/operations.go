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

	"github.com/pgEdge/pgedge-secdata/internal/model"
	"github.com/pgEdge/pgedge-secdata/internal/store"
)

// Per-entity operations. Each checks the binding, then validates, then
// touches storage. Gets return nil without error when the key is absent.

// GetSecurityBase returns the security_base row for a geneva_id.
func (s *Service) GetSecurityBase(ctx context.Context, key model.SecurityBaseKey) (*model.SecurityBase, error) {
	return get(ctx, s, "get_security_basic_info", key, func(st *stores) *store.Store[model.SecurityBase] {
		return st.securityBase
	})
}

// AddSecurityBase creates a security_base row stamped with the current time.
func (s *Service) AddSecurityBase(ctx context.Context, in model.SecurityBaseAdd) error {
	return s.bound(func(st *stores, _ Conn, _ Mode) error {
		if err := s.validate("add_security_basic_info", in); err != nil {
			return err
		}
		return st.securityBase.Create(ctx, append(model.Fields(in), s.stamp()))
	})
}

// UpdateSecurityBase overwrites the supplied fields of a security_base row.
func (s *Service) UpdateSecurityBase(ctx context.Context, in model.SecurityBaseUpdate) error {
	return update(ctx, s, "update_security_basic_info", in, func(st *stores) *store.Store[model.SecurityBase] {
		return st.securityBase
	})
}

// GetFutures returns the futures row for a ticker.
func (s *Service) GetFutures(ctx context.Context, key model.FuturesKey) (*model.Futures, error) {
	return get(ctx, s, "get_futures_info", key, func(st *stores) *store.Store[model.Futures] {
		return st.futures
	})
}

// AddFutures creates a futures row stamped with the current time.
func (s *Service) AddFutures(ctx context.Context, in model.FuturesInput) error {
	return s.bound(func(st *stores, _ Conn, _ Mode) error {
		if err := s.validate("add_futures_info", in); err != nil {
			return err
		}
		return st.futures.Create(ctx, append(model.Fields(in), s.stamp()))
	})
}

// UpdateFutures overwrites the supplied fields of a futures row.
func (s *Service) UpdateFutures(ctx context.Context, in model.FuturesInput) error {
	return update(ctx, s, "update_futures_info", in, func(st *stores) *store.Store[model.Futures] {
		return st.futures
	})
}

// GetFixedDeposit returns the fixed_deposits row for a geneva_id.
func (s *Service) GetFixedDeposit(ctx context.Context, key model.FixedDepositKey) (*model.FixedDeposit, error) {
	return get(ctx, s, "get_fixed_deposit_info", key, func(st *stores) *store.Store[model.FixedDeposit] {
		return st.fixedDeposits
	})
}

// AddFixedDeposit creates a fixed_deposits row together with its
// "Fixed Deposit" counterparty when that does not exist yet.
func (s *Service) AddFixedDeposit(ctx context.Context, in model.FixedDepositAdd) error {
	return s.bound(func(st *stores, _ Conn, _ Mode) error {
		if err := s.validate("add_fixed_deposit_info", in); err != nil {
			return err
		}
		link := st.linkage.Ensure(*in.GenevaCounterParty, model.PartyFixedDeposit)
		return st.fixedDeposits.CreateWith(ctx, model.Fields(in), link)
	})
}

// UpdateFixedDeposit overwrites the supplied fields of a fixed_deposits row.
func (s *Service) UpdateFixedDeposit(ctx context.Context, in model.FixedDepositUpdate) error {
	return update(ctx, s, "update_fixed_deposit_info", in, func(st *stores) *store.Store[model.FixedDeposit] {
		return st.fixedDeposits
	})
}

// GetFxForward returns the fx_forwards row for a factset_id.
func (s *Service) GetFxForward(ctx context.Context, key model.FxForwardKey) (*model.FxForward, error) {
	return get(ctx, s, "get_fx_forward_info", key, func(st *stores) *store.Store[model.FxForward] {
		return st.fxForwards
	})
}

// AddFxForward creates an fx_forwards row together with its "FX Forward"
// counterparty when that does not exist yet.
func (s *Service) AddFxForward(ctx context.Context, in model.FxForwardAdd) error {
	return s.bound(func(st *stores, _ Conn, _ Mode) error {
		if err := s.validate("add_fx_forward_info", in); err != nil {
			return err
		}
		link := st.linkage.Ensure(*in.GenevaCounterParty, model.PartyFxForward)
		return st.fxForwards.CreateWith(ctx, model.Fields(in), link)
	})
}

// UpdateFxForward overwrites the supplied fields of an fx_forwards row.
func (s *Service) UpdateFxForward(ctx context.Context, in model.FxForwardUpdate) error {
	return update(ctx, s, "update_fx_forward_info", in, func(st *stores) *store.Store[model.FxForward] {
		return st.fxForwards
	})
}

// GetAllCounterparties returns every counterparty row, oldest first.
func (s *Service) GetAllCounterparties(ctx context.Context) ([]model.Counterparty, error) {
	var out []model.Counterparty
	err := s.bound(func(st *stores, _ Conn, _ Mode) error {
		var err error
		out, err = st.counterparties.List(ctx)
		return err
	})
	return out, err
}

// AddCounterparty creates an otc_counter_parties row.
func (s *Service) AddCounterparty(ctx context.Context, in model.CounterpartyAdd) error {
	return s.bound(func(st *stores, _ Conn, _ Mode) error {
		if err := s.validate("add_counter_party", in); err != nil {
			return err
		}
		return st.counterparties.Create(ctx, model.Fields(in))
	})
}

// UpdateCounterparty overwrites the supplied fields of an
// otc_counter_parties row.
func (s *Service) UpdateCounterparty(ctx context.Context, in model.CounterpartyUpdate) error {
	return update(ctx, s, "update_counter_party_info", in, func(st *stores) *store.Store[model.Counterparty] {
		return st.counterparties
	})
}

// GetSecurityAttribute returns the security_attributes row for an
// identifier type and identifier.
func (s *Service) GetSecurityAttribute(ctx context.Context, key model.SecurityAttributeKey) (*model.SecurityAttribute, error) {
	return get(ctx, s, "get_security_attribute", key, func(st *stores) *store.Store[model.SecurityAttribute] {
		return st.securityAttributes
	})
}

// AddSecurityAttribute creates a security_attributes row.
func (s *Service) AddSecurityAttribute(ctx context.Context, in model.SecurityAttributeInput) error {
	return s.bound(func(st *stores, _ Conn, _ Mode) error {
		if err := s.validate("add_security_attribute", in); err != nil {
			return err
		}
		return st.securityAttributes.Create(ctx, model.Fields(in))
	})
}

// UpdateSecurityAttribute overwrites the supplied fields of a
// security_attributes row.
func (s *Service) UpdateSecurityAttribute(ctx context.Context, in model.SecurityAttributeInput) error {
	return update(ctx, s, "update_security_attribute", in, func(st *stores) *store.Store[model.SecurityAttribute] {
		return st.securityAttributes
	})
}

func get[T any](ctx context.Context, s *Service, operation string, key any, pick func(*stores) *store.Store[T]) (*T, error) {
	var out *T
	err := s.bound(func(st *stores, _ Conn, _ Mode) error {
		if err := s.validate(operation, key); err != nil {
			return err
		}
		var err error
		out, err = pick(st).Get(ctx, model.Fields(key))
		return err
	})
	return out, err
}

func update[T any](ctx context.Context, s *Service, operation string, in any, pick func(*stores) *store.Store[T]) error {
	return s.bound(func(st *stores, _ Conn, _ Mode) error {
		if err := s.validate(operation, in); err != nil {
			return err
		}
		return pick(st).Update(ctx, model.Fields(in))
	})
}
