//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package model

// Operation inputs. Every field is a *string so that an absent field (nil)
// can be told apart from one supplied as "". The validate tags hold the
// rules for each operation: adds require every mandatory field, updates
// require only the key, and any supplied field must still satisfy its
// length, allowed-value and format rules.

// SecurityBaseKey looks up a security_base row.
type SecurityBaseKey struct {
	GenevaID *string `json:"geneva_id" validate:"required,min=1,max=100"`
}

// SecurityBaseAdd creates a security_base row.
type SecurityBaseAdd struct {
	GenevaID             *string `json:"geneva_id" validate:"required,min=1,max=100"`
	GenevaAssetType      *string `json:"geneva_asset_type" validate:"required,min=1,max=100"`
	GenevaInvestmentType *string `json:"geneva_investment_type" validate:"required,min=1,max=100"`
	Ticker               *string `json:"ticker" validate:"required,min=1,max=50"`
	ISIN                 *string `json:"isin" validate:"required,min=1,max=50"`
	BloombergID          *string `json:"bloomberg_id" validate:"required,min=1,max=50"`
	Sedol                *string `json:"sedol" validate:"required,min=1,max=50"`
	Currency             *string `json:"currency" validate:"required,min=1,max=5"`
	IsPrivate            *string `json:"is_private" validate:"required,oneof=N Y NA"`
	Description          *string `json:"description" validate:"required,min=1,max=200"`
	ExchangeName         *string `json:"exchange_name" validate:"required,min=1,max=100"`
}

// SecurityBaseUpdate partially updates a security_base row.
type SecurityBaseUpdate struct {
	GenevaID             *string `json:"geneva_id" validate:"required,min=1,max=100"`
	GenevaAssetType      *string `json:"geneva_asset_type" validate:"omitempty,min=1,max=100"`
	GenevaInvestmentType *string `json:"geneva_investment_type" validate:"omitempty,min=1,max=100"`
	Ticker               *string `json:"ticker" validate:"omitempty,min=1,max=50"`
	ISIN                 *string `json:"isin" validate:"omitempty,min=1,max=50"`
	BloombergID          *string `json:"bloomberg_id" validate:"omitempty,min=1,max=50"`
	Sedol                *string `json:"sedol" validate:"omitempty,min=1,max=50"`
	Currency             *string `json:"currency" validate:"omitempty,min=1,max=5"`
	IsPrivate            *string `json:"is_private" validate:"omitempty,oneof=N Y NA"`
	Description          *string `json:"description" validate:"omitempty,min=1,max=200"`
	ExchangeName         *string `json:"exchange_name" validate:"omitempty,min=1,max=100"`
}

// FuturesKey looks up a futures row.
type FuturesKey struct {
	Ticker *string `json:"ticker" validate:"required,min=1,max=50"`
}

// FuturesInput creates or partially updates a futures row. Only the
// ticker is mandatory in both cases.
type FuturesInput struct {
	Ticker       *string `json:"ticker" validate:"required,min=1,max=50"`
	UnderlyingID *string `json:"underlying_id" validate:"omitempty,min=1,max=100"`
	ContractSize *string `json:"contract_size" validate:"omitempty,numeric_format"`
	ValueOf1pt   *string `json:"value_of_1pt" validate:"omitempty,numeric_format"`
}

// FixedDepositKey looks up a fixed_deposits row.
type FixedDepositKey struct {
	GenevaID *string `json:"geneva_id" validate:"required,min=1,max=50"`
}

// FixedDepositAdd creates a fixed_deposits row.
type FixedDepositAdd struct {
	GenevaID           *string `json:"geneva_id" validate:"required,min=1,max=50"`
	FactsetID          *string `json:"factset_id" validate:"required,min=1,max=100"`
	GenevaCounterParty *string `json:"geneva_counter_party" validate:"required,min=1,max=100"`
	StartingDate       *string `json:"starting_date" validate:"required,date_format"`
	MaturityDate       *string `json:"maturity_date" validate:"required,date_format"`
	InterestRate       *string `json:"interest_rate" validate:"required,numeric_format"`
}

// FixedDepositUpdate partially updates a fixed_deposits row.
type FixedDepositUpdate struct {
	GenevaID           *string `json:"geneva_id" validate:"required,min=1,max=50"`
	FactsetID          *string `json:"factset_id" validate:"omitempty,min=1,max=100"`
	GenevaCounterParty *string `json:"geneva_counter_party" validate:"omitempty,min=1,max=100"`
	StartingDate       *string `json:"starting_date" validate:"omitempty,date_format"`
	MaturityDate       *string `json:"maturity_date" validate:"omitempty,date_format"`
	InterestRate       *string `json:"interest_rate" validate:"omitempty,numeric_format"`
}

// FxForwardKey looks up an fx_forwards row.
type FxForwardKey struct {
	FactsetID *string `json:"factset_id" validate:"required,min=1,max=100"`
}

// FxForwardAdd creates an fx_forwards row.
type FxForwardAdd struct {
	FactsetID            *string `json:"factset_id" validate:"required,min=1,max=100"`
	GenevaFxForwardName  *string `json:"geneva_fx_forward_name" validate:"required,min=1,max=100"`
	GenevaCounterParty   *string `json:"geneva_counter_party" validate:"required,min=1,max=100"`
	StartingDate         *string `json:"starting_date" validate:"required,date_format"`
	MaturityDate         *string `json:"maturity_date" validate:"required,date_format"`
	BaseCurrency         *string `json:"base_currency" validate:"required,min=1,max=5"`
	BaseCurrencyQuantity *string `json:"base_currency_quantity" validate:"required,numeric_format"`
	TermCurrency         *string `json:"term_currency" validate:"required,min=1,max=5"`
	TermCurrencyQuantity *string `json:"term_currency_quantity" validate:"required,numeric_format"`
	ForwardRate          *string `json:"forward_rate" validate:"required,numeric_format"`
}

// FxForwardUpdate partially updates an fx_forwards row.
type FxForwardUpdate struct {
	FactsetID            *string `json:"factset_id" validate:"required,min=1,max=100"`
	GenevaFxForwardName  *string `json:"geneva_fx_forward_name" validate:"omitempty,min=1,max=100"`
	GenevaCounterParty   *string `json:"geneva_counter_party" validate:"omitempty,min=1,max=100"`
	StartingDate         *string `json:"starting_date" validate:"omitempty,date_format"`
	MaturityDate         *string `json:"maturity_date" validate:"omitempty,date_format"`
	BaseCurrency         *string `json:"base_currency" validate:"omitempty,min=1,max=5"`
	BaseCurrencyQuantity *string `json:"base_currency_quantity" validate:"omitempty,numeric_format"`
	TermCurrency         *string `json:"term_currency" validate:"omitempty,min=1,max=5"`
	TermCurrencyQuantity *string `json:"term_currency_quantity" validate:"omitempty,numeric_format"`
	ForwardRate          *string `json:"forward_rate" validate:"omitempty,numeric_format"`
}

// CounterpartyAdd creates an otc_counter_parties row. The party name and
// Bloomberg ticker may be supplied empty.
type CounterpartyAdd struct {
	GenevaCounterParty *string `json:"geneva_counter_party" validate:"required,min=1,max=100"`
	GenevaPartyType    *string `json:"geneva_party_type" validate:"required,party_type"`
	GenevaPartyName    *string `json:"geneva_party_name" validate:"omitempty,max=100"`
	BloombergTicker    *string `json:"bloomberg_ticker" validate:"omitempty,max=50"`
}

// CounterpartyUpdate partially updates an otc_counter_parties row.
type CounterpartyUpdate struct {
	GenevaCounterParty *string `json:"geneva_counter_party" validate:"required,min=1,max=100"`
	GenevaPartyType    *string `json:"geneva_party_type" validate:"required,party_type"`
	GenevaPartyName    *string `json:"geneva_party_name" validate:"omitempty,min=1,max=100"`
	BloombergTicker    *string `json:"bloomberg_ticker" validate:"omitempty,max=50"`
}

// SecurityAttributeKey looks up a security_attributes row.
type SecurityAttributeKey struct {
	SecurityIDType *string `json:"security_id_type" validate:"required,min=1,max=100"`
	SecurityID     *string `json:"security_id" validate:"required,min=1,max=100"`
}

// SecurityAttributeInput creates or partially updates a security_attributes
// row. Attribute values may be supplied empty.
type SecurityAttributeInput struct {
	SecurityIDType               *string `json:"security_id_type" validate:"required,security_id_type"`
	SecurityID                   *string `json:"security_id" validate:"required,min=1,max=100"`
	GicsSector                   *string `json:"gics_sector" validate:"omitempty,max=100"`
	GicsIndustryGroup            *string `json:"gics_industry_group" validate:"omitempty,max=100"`
	IndustrySector               *string `json:"industry_sector" validate:"omitempty,max=100"`
	IndustryGroup                *string `json:"industry_group" validate:"omitempty,max=100"`
	BicsSectorLevel1             *string `json:"bics_sector_level_1" validate:"omitempty,max=100"`
	BicsIndustryGroupLevel2      *string `json:"bics_industry_group_level_2" validate:"omitempty,max=100"`
	BicsIndustryNameLevel3       *string `json:"bics_industry_name_level_3" validate:"omitempty,max=100"`
	BicsSubIndustryNameLevel4    *string `json:"bics_sub_industry_name_level_4" validate:"omitempty,max=100"`
	ParentSymbol                 *string `json:"parent_symbol" validate:"omitempty,max=100"`
	ParentSymbolChineseName      *string `json:"parent_symbol_chinese_name" validate:"omitempty,max=100"`
	ParentSymbolIndustryGroup    *string `json:"parent_symbol_industry_group" validate:"omitempty,max=100"`
	CastParentCompanyName        *string `json:"cast_parent_company_name" validate:"omitempty,max=100"`
	CountryOfRisk                *string `json:"country_of_risk" validate:"omitempty,max=100"`
	CountryOfIssuance            *string `json:"country_of_issuance" validate:"omitempty,max=100"`
	SfcRegion                    *string `json:"sfc_region" validate:"omitempty,max=100"`
	SPIssuerRating               *string `json:"s_p_issuer_rating" validate:"omitempty,max=100"`
	MoodySIssuerRating           *string `json:"moody_s_issuer_rating" validate:"omitempty,max=100"`
	FitchSIssuerRating           *string `json:"fitch_s_issuer_rating" validate:"omitempty,max=100"`
	BondOrEquityTicker           *string `json:"bond_or_equity_ticker" validate:"omitempty,max=100"`
	SPRating                     *string `json:"s_p_rating" validate:"omitempty,max=100"`
	MoodySRating                 *string `json:"moody_s_rating" validate:"omitempty,max=100"`
	FitchRating                  *string `json:"fitch_rating" validate:"omitempty,max=100"`
	PaymentRank                  *string `json:"payment_rank" validate:"omitempty,max=100"`
	PaymentRankMbs               *string `json:"payment_rank_mbs" validate:"omitempty,max=100"`
	BondClassification           *string `json:"bond_classification" validate:"omitempty,max=100"`
	LocalGovernmentLgfv          *string `json:"local_government_lgfv" validate:"omitempty,max=100"`
	FirstYearDefaultProbability  *string `json:"first_year_default_probability" validate:"omitempty,numeric_format"`
	ContingentCapital            *string `json:"contingent_capital" validate:"omitempty,max=100"`
	CoCoBondTrigger              *string `json:"co_co_bond_trigger" validate:"omitempty,max=100"`
	CapitTypeContiConvTriLvl     *string `json:"capit_type_conti_conv_tri_lvl" validate:"omitempty,max=100"`
	Tier1CommonEquityRatio       *string `json:"tier_1_common_equity_ratio" validate:"omitempty,numeric_format"`
	BailInCapitalIndicator       *string `json:"bail_in_capital_indicator" validate:"omitempty,max=100"`
	TlacMrelDesignation          *string `json:"tlac_mrel_designation" validate:"omitempty,max=100"`
	ClassifOnChiStateOwnedEnterp *string `json:"classif_on_chi_state_owned_enterp" validate:"omitempty,max=100"`
	PrivatePlacementIndicator    *string `json:"private_placement_indicator" validate:"omitempty,oneof=Y N ''"`
	TradingVolume90Days          *string `json:"trading_volume_90_days" validate:"omitempty,numeric_format"`
}
