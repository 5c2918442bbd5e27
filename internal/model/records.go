//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package model

// PartyType tags a counterparty row with the kind of business it backs.
type PartyType string

// Counterparty party types.
const (
	PartyFixedDeposit PartyType = "Fixed Deposit"
	PartyRepo         PartyType = "Repo"
	PartyFxForward    PartyType = "FX Forward"
)

// Valid reports whether p is a known party type.
func (p PartyType) Valid() bool {
	switch p {
	case PartyFixedDeposit, PartyRepo, PartyFxForward:
		return true
	}
	return false
}

// IDType names the identifier scheme of a security attribute row.
type IDType string

// Security identifier types.
const (
	IDTicker    IDType = "Ticker"
	IDISIN      IDType = "ISIN"
	IDBloomberg IDType = "Bloomberg Id"
)

// Valid reports whether t is a known identifier type.
func (t IDType) Valid() bool {
	switch t {
	case IDTicker, IDISIN, IDBloomberg:
		return true
	}
	return false
}

// Stored records. Dates read back as YYYY-MM-DD and timestamps as
// YYYY-MM-DD HH:MM:SS; unset text columns read back as "".

// SecurityBase is a stored security_base row.
type SecurityBase struct {
	GenevaID             string `db:"geneva_id" json:"geneva_id"`
	GenevaAssetType      string `db:"geneva_asset_type" json:"geneva_asset_type"`
	GenevaInvestmentType string `db:"geneva_investment_type" json:"geneva_investment_type"`
	Ticker               string `db:"ticker" json:"ticker"`
	ISIN                 string `db:"isin" json:"isin"`
	BloombergID          string `db:"bloomberg_id" json:"bloomberg_id"`
	Sedol                string `db:"sedol" json:"sedol"`
	Currency             string `db:"currency" json:"currency"`
	IsPrivate            string `db:"is_private" json:"is_private"`
	Description          string `db:"description" json:"description"`
	ExchangeName         string `db:"exchange_name" json:"exchange_name"`
	Timestamp            string `db:"timestamp" json:"timestamp"`
}

// Futures is a stored futures row.
type Futures struct {
	Ticker       string   `db:"ticker" json:"ticker"`
	UnderlyingID string   `db:"underlying_id" json:"underlying_id"`
	ContractSize *float64 `db:"contract_size" json:"contract_size"`
	ValueOf1pt   *float64 `db:"value_of_1pt" json:"value_of_1pt"`
	Timestamp    string   `db:"timestamp" json:"timestamp"`
}

// FixedDeposit is a stored fixed_deposits row.
type FixedDeposit struct {
	GenevaID           string  `db:"geneva_id" json:"geneva_id"`
	FactsetID          string  `db:"factset_id" json:"factset_id"`
	GenevaCounterParty string  `db:"geneva_counter_party" json:"geneva_counter_party"`
	StartingDate       string  `db:"starting_date" json:"starting_date"`
	MaturityDate       string  `db:"maturity_date" json:"maturity_date"`
	InterestRate       float64 `db:"interest_rate" json:"interest_rate"`
}

// FxForward is a stored fx_forwards row.
type FxForward struct {
	FactsetID            string  `db:"factset_id" json:"factset_id"`
	GenevaFxForwardName  string  `db:"geneva_fx_forward_name" json:"geneva_fx_forward_name"`
	GenevaCounterParty   string  `db:"geneva_counter_party" json:"geneva_counter_party"`
	StartingDate         string  `db:"starting_date" json:"starting_date"`
	MaturityDate         string  `db:"maturity_date" json:"maturity_date"`
	BaseCurrency         string  `db:"base_currency" json:"base_currency"`
	BaseCurrencyQuantity float64 `db:"base_currency_quantity" json:"base_currency_quantity"`
	TermCurrency         string  `db:"term_currency" json:"term_currency"`
	TermCurrencyQuantity float64 `db:"term_currency_quantity" json:"term_currency_quantity"`
	ForwardRate          float64 `db:"forward_rate" json:"forward_rate"`
}

// Counterparty is a stored otc_counter_parties row.
type Counterparty struct {
	GenevaCounterParty string `db:"geneva_counter_party" json:"geneva_counter_party"`
	GenevaPartyType    string `db:"geneva_party_type" json:"geneva_party_type"`
	GenevaPartyName    string `db:"geneva_party_name" json:"geneva_party_name"`
	BloombergTicker    string `db:"bloomberg_ticker" json:"bloomberg_ticker"`
}

// SecurityAttribute is a stored security_attributes row.
type SecurityAttribute struct {
	SecurityIDType               string   `db:"security_id_type" json:"security_id_type"`
	SecurityID                   string   `db:"security_id" json:"security_id"`
	GicsSector                   string   `db:"gics_sector" json:"gics_sector"`
	GicsIndustryGroup            string   `db:"gics_industry_group" json:"gics_industry_group"`
	IndustrySector               string   `db:"industry_sector" json:"industry_sector"`
	IndustryGroup                string   `db:"industry_group" json:"industry_group"`
	BicsSectorLevel1             string   `db:"bics_sector_level_1" json:"bics_sector_level_1"`
	BicsIndustryGroupLevel2      string   `db:"bics_industry_group_level_2" json:"bics_industry_group_level_2"`
	BicsIndustryNameLevel3       string   `db:"bics_industry_name_level_3" json:"bics_industry_name_level_3"`
	BicsSubIndustryNameLevel4    string   `db:"bics_sub_industry_name_level_4" json:"bics_sub_industry_name_level_4"`
	ParentSymbol                 string   `db:"parent_symbol" json:"parent_symbol"`
	ParentSymbolChineseName      string   `db:"parent_symbol_chinese_name" json:"parent_symbol_chinese_name"`
	ParentSymbolIndustryGroup    string   `db:"parent_symbol_industry_group" json:"parent_symbol_industry_group"`
	CastParentCompanyName        string   `db:"cast_parent_company_name" json:"cast_parent_company_name"`
	CountryOfRisk                string   `db:"country_of_risk" json:"country_of_risk"`
	CountryOfIssuance            string   `db:"country_of_issuance" json:"country_of_issuance"`
	SfcRegion                    string   `db:"sfc_region" json:"sfc_region"`
	SPIssuerRating               string   `db:"s_p_issuer_rating" json:"s_p_issuer_rating"`
	MoodySIssuerRating           string   `db:"moody_s_issuer_rating" json:"moody_s_issuer_rating"`
	FitchSIssuerRating           string   `db:"fitch_s_issuer_rating" json:"fitch_s_issuer_rating"`
	BondOrEquityTicker           string   `db:"bond_or_equity_ticker" json:"bond_or_equity_ticker"`
	SPRating                     string   `db:"s_p_rating" json:"s_p_rating"`
	MoodySRating                 string   `db:"moody_s_rating" json:"moody_s_rating"`
	FitchRating                  string   `db:"fitch_rating" json:"fitch_rating"`
	PaymentRank                  string   `db:"payment_rank" json:"payment_rank"`
	PaymentRankMbs               string   `db:"payment_rank_mbs" json:"payment_rank_mbs"`
	BondClassification           string   `db:"bond_classification" json:"bond_classification"`
	LocalGovernmentLgfv          string   `db:"local_government_lgfv" json:"local_government_lgfv"`
	FirstYearDefaultProbability  *float64 `db:"first_year_default_probability" json:"first_year_default_probability"`
	ContingentCapital            string   `db:"contingent_capital" json:"contingent_capital"`
	CoCoBondTrigger              string   `db:"co_co_bond_trigger" json:"co_co_bond_trigger"`
	CapitTypeContiConvTriLvl     string   `db:"capit_type_conti_conv_tri_lvl" json:"capit_type_conti_conv_tri_lvl"`
	Tier1CommonEquityRatio       *float64 `db:"tier_1_common_equity_ratio" json:"tier_1_common_equity_ratio"`
	BailInCapitalIndicator       string   `db:"bail_in_capital_indicator" json:"bail_in_capital_indicator"`
	TlacMrelDesignation          string   `db:"tlac_mrel_designation" json:"tlac_mrel_designation"`
	ClassifOnChiStateOwnedEnterp string   `db:"classif_on_chi_state_owned_enterp" json:"classif_on_chi_state_owned_enterp"`
	PrivatePlacementIndicator    string   `db:"private_placement_indicator" json:"private_placement_indicator"`
	TradingVolume90Days          *float64 `db:"trading_volume_90_days" json:"trading_volume_90_days"`
}
