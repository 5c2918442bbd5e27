//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-secdata/internal/logging"
)

// Tables lists the reference data tables in creation order.
var Tables = []string{
	"security_base",
	"futures",
	"fixed_deposits",
	"fx_forwards",
	"otc_counter_parties",
	"security_attributes",
}

// Schema SQL for the security reference data tables. Every table carries a
// surrogate id, audit columns and a unique index on its natural key.
const createSchemaSQL = `
-- Security Base: basic equity and security identifiers
CREATE TABLE IF NOT EXISTS security_base (
    id                     BIGSERIAL PRIMARY KEY,
    geneva_id              VARCHAR(100) NOT NULL,
    geneva_asset_type      VARCHAR(100),
    geneva_investment_type VARCHAR(100),
    ticker                 VARCHAR(50),
    isin                   VARCHAR(50),
    bloomberg_id           VARCHAR(50),
    sedol                  VARCHAR(50),
    currency               VARCHAR(5),
    is_private             VARCHAR(5),
    description            VARCHAR(200),
    exchange_name          VARCHAR(100),
    timestamp              TIMESTAMP,
    created_at             TIMESTAMP NOT NULL DEFAULT now(),
    updated_at             TIMESTAMP NOT NULL DEFAULT now(),
    created_by             INTEGER,
    updated_by             INTEGER
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_security_base_key
    ON security_base (geneva_id);

-- Futures: listed futures contracts
CREATE TABLE IF NOT EXISTS futures (
    id            BIGSERIAL PRIMARY KEY,
    ticker        VARCHAR(50) NOT NULL,
    underlying_id VARCHAR(100),
    contract_size NUMERIC,
    value_of_1pt  NUMERIC,
    timestamp     TIMESTAMP,
    created_at    TIMESTAMP NOT NULL DEFAULT now(),
    updated_at    TIMESTAMP NOT NULL DEFAULT now(),
    created_by    INTEGER,
    updated_by    INTEGER
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_futures_key
    ON futures (ticker);

-- Fixed Deposits: OTC deposits placed with a counterparty
CREATE TABLE IF NOT EXISTS fixed_deposits (
    id                   BIGSERIAL PRIMARY KEY,
    geneva_id            VARCHAR(50) NOT NULL,
    factset_id           VARCHAR(100),
    geneva_counter_party VARCHAR(100),
    starting_date        DATE,
    maturity_date        DATE,
    interest_rate        NUMERIC,
    created_at           TIMESTAMP NOT NULL DEFAULT now(),
    updated_at           TIMESTAMP NOT NULL DEFAULT now(),
    created_by           INTEGER,
    updated_by           INTEGER
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_fixed_deposits_key
    ON fixed_deposits (geneva_id);

-- FX Forwards: OTC currency forwards traded with a counterparty
CREATE TABLE IF NOT EXISTS fx_forwards (
    id                     BIGSERIAL PRIMARY KEY,
    factset_id             VARCHAR(100) NOT NULL,
    geneva_fx_forward_name VARCHAR(100),
    geneva_counter_party   VARCHAR(100),
    starting_date          DATE,
    maturity_date          DATE,
    base_currency          VARCHAR(5),
    base_currency_quantity NUMERIC,
    term_currency          VARCHAR(5),
    term_currency_quantity NUMERIC,
    forward_rate           NUMERIC,
    created_at             TIMESTAMP NOT NULL DEFAULT now(),
    updated_at             TIMESTAMP NOT NULL DEFAULT now(),
    created_by             INTEGER,
    updated_by             INTEGER
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_fx_forwards_key
    ON fx_forwards (factset_id);

-- OTC Counter Parties: one row per (counterparty, party type)
CREATE TABLE IF NOT EXISTS otc_counter_parties (
    id                   BIGSERIAL PRIMARY KEY,
    geneva_counter_party VARCHAR(100) NOT NULL,
    geneva_party_type    VARCHAR(100) NOT NULL,
    geneva_party_name    VARCHAR(100),
    bloomberg_ticker     VARCHAR(50),
    created_at           TIMESTAMP NOT NULL DEFAULT now(),
    updated_at           TIMESTAMP NOT NULL DEFAULT now(),
    created_by           INTEGER,
    updated_by           INTEGER
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_otc_counter_parties_key
    ON otc_counter_parties (geneva_counter_party, geneva_party_type);

-- Security Attributes: classification and rating attributes
CREATE TABLE IF NOT EXISTS security_attributes (
    id                                BIGSERIAL PRIMARY KEY,
    security_id_type                  VARCHAR(100) NOT NULL,
    security_id                       VARCHAR(100) NOT NULL,
    gics_sector                       VARCHAR(100),
    gics_industry_group               VARCHAR(100),
    industry_sector                   VARCHAR(100),
    industry_group                    VARCHAR(100),
    bics_sector_level_1               VARCHAR(100),
    bics_industry_group_level_2       VARCHAR(100),
    bics_industry_name_level_3        VARCHAR(100),
    bics_sub_industry_name_level_4    VARCHAR(100),
    parent_symbol                     VARCHAR(100),
    parent_symbol_chinese_name        VARCHAR(100),
    parent_symbol_industry_group      VARCHAR(100),
    cast_parent_company_name          VARCHAR(100),
    country_of_risk                   VARCHAR(100),
    country_of_issuance               VARCHAR(100),
    sfc_region                        VARCHAR(100),
    s_p_issuer_rating                 VARCHAR(100),
    moody_s_issuer_rating             VARCHAR(100),
    fitch_s_issuer_rating             VARCHAR(100),
    bond_or_equity_ticker             VARCHAR(100),
    s_p_rating                        VARCHAR(100),
    moody_s_rating                    VARCHAR(100),
    fitch_rating                      VARCHAR(100),
    payment_rank                      VARCHAR(100),
    payment_rank_mbs                  VARCHAR(100),
    bond_classification               VARCHAR(100),
    local_government_lgfv             VARCHAR(100),
    first_year_default_probability    NUMERIC,
    contingent_capital                VARCHAR(100),
    co_co_bond_trigger                VARCHAR(100),
    capit_type_conti_conv_tri_lvl     VARCHAR(100),
    tier_1_common_equity_ratio        NUMERIC,
    bail_in_capital_indicator         VARCHAR(100),
    tlac_mrel_designation             VARCHAR(100),
    classif_on_chi_state_owned_enterp VARCHAR(100),
    private_placement_indicator       VARCHAR(100),
    trading_volume_90_days            NUMERIC,
    created_at                        TIMESTAMP NOT NULL DEFAULT now(),
    updated_at                        TIMESTAMP NOT NULL DEFAULT now(),
    created_by                        INTEGER,
    updated_by                        INTEGER
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_security_attributes_key
    ON security_attributes (security_id_type, security_id);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS security_attributes CASCADE;
DROP TABLE IF EXISTS otc_counter_parties CASCADE;
DROP TABLE IF EXISTS fx_forwards CASCADE;
DROP TABLE IF EXISTS fixed_deposits CASCADE;
DROP TABLE IF EXISTS futures CASCADE;
DROP TABLE IF EXISTS security_base CASCADE;
`

// CreateSchema creates the security reference data tables.
func CreateSchema(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	logging.Debug().Int("tables", len(Tables)).Msg("Created schema")
	return nil
}

// DropSchema drops the security reference data tables.
func DropSchema(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, dropSchemaSQL); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	logging.Debug().Int("tables", len(Tables)).Msg("Dropped schema")
	return nil
}

// SchemaExists reports whether every reference data table is present.
func SchemaExists(ctx context.Context, db Querier) (bool, error) {
	var count int
	err := db.QueryRow(ctx, `
        SELECT count(*) FROM information_schema.tables
        WHERE table_schema = current_schema() AND table_name = ANY($1)
    `, Tables).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == len(Tables), nil
}
