//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package model declares the security reference data entities: their
// tables, natural keys, stored records and operation inputs.
package model

import "slices"

// Kind identifies an entity kind.
type Kind string

// Entity kinds.
const (
	KindSecurityBase      Kind = "security_base"
	KindFutures           Kind = "futures"
	KindFixedDeposit      Kind = "fixed_deposit"
	KindFxForward         Kind = "fx_forward"
	KindCounterparty      Kind = "counterparty"
	KindSecurityAttribute Kind = "security_attribute"
)

// Kinds lists every entity kind in table creation order.
var Kinds = []Kind{
	KindSecurityBase,
	KindFutures,
	KindFixedDeposit,
	KindFxForward,
	KindCounterparty,
	KindSecurityAttribute,
}

// ColumnType describes how a column is stored and read back.
type ColumnType int

const (
	// Text columns are stored and returned as strings.
	Text ColumnType = iota
	// Numeric columns accept numeric text and are returned as floats.
	Numeric
	// Date columns accept and return YYYY-MM-DD.
	Date
	// Timestamp columns are set by the service and returned as
	// YYYY-MM-DD HH:MM:SS.
	Timestamp
)

func (c ColumnType) String() string {
	switch c {
	case Text:
		return "text"
	case Numeric:
		return "numeric"
	case Date:
		return "date"
	case Timestamp:
		return "timestamp"
	}
	return "unknown"
}

// Column is one user-visible column of a table.
type Column struct {
	Name string
	Type ColumnType
}

// Table describes the storage of one entity kind.
type Table struct {
	Kind Kind
	Name string
	// Key holds the natural key columns; together they are unique.
	Key     []string
	Columns []Column
}

// Column returns the column with the given name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// IsKey reports whether the named column is part of the natural key.
func (t Table) IsKey(name string) bool {
	return slices.Contains(t.Key, name)
}

func text(names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Type: Text}
	}
	return cols
}

func concat(groups ...[]Column) []Column {
	var cols []Column
	for _, g := range groups {
		cols = append(cols, g...)
	}
	return cols
}

// SecurityBaseTable stores basic security identifiers.
var SecurityBaseTable = Table{
	Kind: KindSecurityBase,
	Name: "security_base",
	Key:  []string{"geneva_id"},
	Columns: concat(
		text("geneva_id", "geneva_asset_type", "geneva_investment_type",
			"ticker", "isin", "bloomberg_id", "sedol", "currency",
			"is_private", "description", "exchange_name"),
		[]Column{{Name: "timestamp", Type: Timestamp}},
	),
}

// FuturesTable stores futures contracts.
var FuturesTable = Table{
	Kind: KindFutures,
	Name: "futures",
	Key:  []string{"ticker"},
	Columns: []Column{
		{Name: "ticker", Type: Text},
		{Name: "underlying_id", Type: Text},
		{Name: "contract_size", Type: Numeric},
		{Name: "value_of_1pt", Type: Numeric},
		{Name: "timestamp", Type: Timestamp},
	},
}

// FixedDepositTable stores fixed deposits.
var FixedDepositTable = Table{
	Kind: KindFixedDeposit,
	Name: "fixed_deposits",
	Key:  []string{"geneva_id"},
	Columns: []Column{
		{Name: "geneva_id", Type: Text},
		{Name: "factset_id", Type: Text},
		{Name: "geneva_counter_party", Type: Text},
		{Name: "starting_date", Type: Date},
		{Name: "maturity_date", Type: Date},
		{Name: "interest_rate", Type: Numeric},
	},
}

// FxForwardTable stores FX forwards.
var FxForwardTable = Table{
	Kind: KindFxForward,
	Name: "fx_forwards",
	Key:  []string{"factset_id"},
	Columns: []Column{
		{Name: "factset_id", Type: Text},
		{Name: "geneva_fx_forward_name", Type: Text},
		{Name: "geneva_counter_party", Type: Text},
		{Name: "starting_date", Type: Date},
		{Name: "maturity_date", Type: Date},
		{Name: "base_currency", Type: Text},
		{Name: "base_currency_quantity", Type: Numeric},
		{Name: "term_currency", Type: Text},
		{Name: "term_currency_quantity", Type: Numeric},
		{Name: "forward_rate", Type: Numeric},
	},
}

// CounterpartyTable stores OTC counterparties, one row per party type.
var CounterpartyTable = Table{
	Kind:    KindCounterparty,
	Name:    "otc_counter_parties",
	Key:     []string{"geneva_counter_party", "geneva_party_type"},
	Columns: text("geneva_counter_party", "geneva_party_type", "geneva_party_name", "bloomberg_ticker"),
}

// SecurityAttributeTable stores classification and rating attributes.
var SecurityAttributeTable = Table{
	Kind: KindSecurityAttribute,
	Name: "security_attributes",
	Key:  []string{"security_id_type", "security_id"},
	Columns: concat(
		text("security_id_type", "security_id",
			"gics_sector", "gics_industry_group", "industry_sector", "industry_group",
			"bics_sector_level_1", "bics_industry_group_level_2",
			"bics_industry_name_level_3", "bics_sub_industry_name_level_4",
			"parent_symbol", "parent_symbol_chinese_name", "parent_symbol_industry_group",
			"cast_parent_company_name", "country_of_risk", "country_of_issuance",
			"sfc_region", "s_p_issuer_rating", "moody_s_issuer_rating",
			"fitch_s_issuer_rating", "bond_or_equity_ticker", "s_p_rating",
			"moody_s_rating", "fitch_rating", "payment_rank", "payment_rank_mbs",
			"bond_classification", "local_government_lgfv"),
		[]Column{{Name: "first_year_default_probability", Type: Numeric}},
		text("contingent_capital", "co_co_bond_trigger", "capit_type_conti_conv_tri_lvl"),
		[]Column{{Name: "tier_1_common_equity_ratio", Type: Numeric}},
		text("bail_in_capital_indicator", "tlac_mrel_designation",
			"classif_on_chi_state_owned_enterp", "private_placement_indicator"),
		[]Column{{Name: "trading_volume_90_days", Type: Numeric}},
	),
}

// TableFor returns the table of an entity kind.
func TableFor(kind Kind) (Table, bool) {
	switch kind {
	case KindSecurityBase:
		return SecurityBaseTable, true
	case KindFutures:
		return FuturesTable, true
	case KindFixedDeposit:
		return FixedDepositTable, true
	case KindFxForward:
		return FxForwardTable, true
	case KindCounterparty:
		return CounterpartyTable, true
	case KindSecurityAttribute:
		return SecurityAttributeTable, true
	}
	return Table{}, false
}
