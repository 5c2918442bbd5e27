//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-secdata/internal/logging"
	"github.com/pgEdge/pgedge-secdata/internal/model"
	"github.com/pgEdge/pgedge-secdata/internal/store"
)

// Target receives generated records. *secdata.Service satisfies it.
type Target interface {
	AddCounterparty(ctx context.Context, in model.CounterpartyAdd) error
	AddSecurityBase(ctx context.Context, in model.SecurityBaseAdd) error
	AddFutures(ctx context.Context, in model.FuturesInput) error
	AddFixedDeposit(ctx context.Context, in model.FixedDepositAdd) error
	AddFxForward(ctx context.Context, in model.FxForwardAdd) error
	AddSecurityAttribute(ctx context.Context, in model.SecurityAttributeInput) error
}

// Result counts the records a seeding run added and the ones skipped
// because their key already existed.
type Result struct {
	Added   map[model.Kind]int
	Skipped map[model.Kind]int
}

func newResult() *Result {
	return &Result{
		Added:   make(map[model.Kind]int),
		Skipped: make(map[model.Kind]int),
	}
}

var (
	exchanges     = []string{"HK", "US", "LN", "JP", "SP", "CH"}
	exchangeNames = map[string]string{
		"HK": "Hong Kong Stock Exchange",
		"US": "New York Stock Exchange",
		"LN": "London Stock Exchange",
		"JP": "Tokyo Stock Exchange",
		"SP": "Singapore Exchange",
		"CH": "Shanghai Stock Exchange",
	}
	assetTypes      = []string{"Equity", "Fixed Income", "Fund", "Derivative"}
	investmentTypes = []string{"Common Stock", "Corporate Bond", "Government Bond", "ETF", "REIT"}
	gicsSectors     = []string{"Financials", "Information Technology", "Energy", "Utilities", "Real Estate", "Health Care"}
	ratings         = []string{"AAA", "AA+", "AA", "A", "BBB+", "BBB", "BB", "B"}
	idTypes         = []model.IDType{model.IDTicker, model.IDISIN, model.IDBloomberg}

	seedWindowStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	seedWindowEnd   = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Seeder generates rule-conforming records of every kind.
type Seeder struct {
	faker *Faker
}

// NewSeeder creates a Seeder drawing from f.
func NewSeeder(f *Faker) *Seeder {
	return &Seeder{faker: f}
}

// security is the identity shared by the records generated for one index.
type security struct {
	genevaID    string
	ticker      string
	isin        string
	bloombergID string
}

// Seed adds count records of every kind to target. Records whose key
// already exists are skipped; any other failure stops the run.
func (s *Seeder) Seed(ctx context.Context, target Target, count int) (*Result, error) {
	res := newResult()
	parties := make([]string, 0, count)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		repo := s.counterparty(i)
		if err := res.record(model.KindCounterparty, target.AddCounterparty(ctx, repo)); err != nil {
			return res, err
		}
		parties = append(parties, *repo.GenevaCounterParty)

		sec := s.newSecurity(i)
		steps := []struct {
			kind model.Kind
			add  func() error
		}{
			{model.KindSecurityBase, func() error { return target.AddSecurityBase(ctx, s.securityBase(sec)) }},
			{model.KindFutures, func() error { return target.AddFutures(ctx, s.futures(sec)) }},
			{model.KindFixedDeposit, func() error {
				return target.AddFixedDeposit(ctx, s.fixedDeposit(i, Choose(s.faker, parties)))
			}},
			{model.KindFxForward, func() error { return target.AddFxForward(ctx, s.fxForward(i, Choose(s.faker, parties))) }},
			{model.KindSecurityAttribute, func() error { return target.AddSecurityAttribute(ctx, s.securityAttribute(sec)) }},
		}
		for _, step := range steps {
			if err := res.record(step.kind, step.add()); err != nil {
				return res, err
			}
		}
	}

	logging.Info().
		Interface("added", res.Added).
		Interface("skipped", res.Skipped).
		Msg("Seeding complete")
	return res, nil
}

func (r *Result) record(kind model.Kind, err error) error {
	switch {
	case err == nil:
		r.Added[kind]++
	case errors.Is(err, store.ErrAlreadyExists):
		r.Skipped[kind]++
	default:
		return fmt.Errorf("failed to seed %s: %w", kind, err)
	}
	return nil
}

func (s *Seeder) newSecurity(i int) security {
	code := fmt.Sprintf("%s%d", s.faker.Letters(3), i)
	exchange := Choose(s.faker, exchanges)
	return security{
		genevaID:    code + " " + exchange,
		ticker:      code + " " + exchange + " Equity",
		isin:        s.faker.Letters(2) + s.faker.Digits(9) + fmt.Sprint(i%10),
		bloombergID: "BBG" + s.faker.Letters(3) + fmt.Sprintf("%06d", i),
	}
}

// counterparty generates a repo counterparty. Fixed deposit and FX
// forward counterparties are created by linkage.
func (s *Seeder) counterparty(i int) model.CounterpartyAdd {
	name := Truncate(s.faker.Company(), 80)
	return model.CounterpartyAdd{
		GenevaCounterParty: model.Str(fmt.Sprintf("%s %d", name, i)),
		GenevaPartyType:    model.Str(string(model.PartyRepo)),
		GenevaPartyName:    model.Str(name),
		BloombergTicker:    model.Str(s.faker.Letters(4) + " " + Choose(s.faker, exchanges)),
	}
}

// securityBase generates the base record of sec.
func (s *Seeder) securityBase(sec security) model.SecurityBaseAdd {
	company := s.faker.Company()
	exchange := sec.genevaID[len(sec.genevaID)-2:]
	return model.SecurityBaseAdd{
		GenevaID:             model.Str(sec.genevaID),
		GenevaAssetType:      model.Str(Choose(s.faker, assetTypes)),
		GenevaInvestmentType: model.Str(Choose(s.faker, investmentTypes)),
		Ticker:               model.Str(sec.ticker),
		ISIN:                 model.Str(sec.isin),
		BloombergID:          model.Str(sec.bloombergID),
		Sedol:                model.Str(s.faker.Digits(7)),
		Currency:             model.Str(s.faker.Currency()),
		IsPrivate:            model.Str(ChooseWeighted(s.faker, []string{"N", "Y", "NA"}, []int{8, 1, 1})),
		Description:          model.Str(Truncate(company+" "+s.faker.Word(), 200)),
		ExchangeName:         model.Str(exchangeNames[exchange]),
	}
}

// futures generates a futures record on sec. Contract details are left
// out for some records.
func (s *Seeder) futures(sec security) model.FuturesInput {
	in := model.FuturesInput{
		Ticker:       model.Str(sec.ticker),
		UnderlyingID: model.Str(sec.genevaID),
	}
	if s.faker.Int(1, 4) > 1 {
		in.ContractSize = model.Str(fmt.Sprint(Choose(s.faker, []int{10, 50, 100, 1000})))
		in.ValueOf1pt = model.Str(s.faker.Number(1, 100, 2))
	}
	return in
}

func (s *Seeder) term() (string, string) {
	start := s.faker.DateRange(seedWindowStart, seedWindowEnd)
	maturity := start.AddDate(0, s.faker.Int(1, 24), 0)
	return Date(start), Date(maturity)
}

// fixedDeposit generates a fixed deposit placed with counterparty.
func (s *Seeder) fixedDeposit(i int, counterparty string) model.FixedDepositAdd {
	start, maturity := s.term()
	return model.FixedDepositAdd{
		GenevaID:           model.Str(fmt.Sprintf("FD%s%d", s.faker.Digits(4), i)),
		FactsetID:          model.Str(fmt.Sprintf("FDS-%s-%d", s.faker.Letters(4), i)),
		GenevaCounterParty: model.Str(counterparty),
		StartingDate:       model.Str(start),
		MaturityDate:       model.Str(maturity),
		InterestRate:       model.Str(s.faker.Number(0.25, 6, 4)),
	}
}

// fxForward generates an FX forward traded with counterparty.
func (s *Seeder) fxForward(i int, counterparty string) model.FxForwardAdd {
	start, maturity := s.term()
	base := s.faker.Currency()
	term := s.faker.Currency()
	rate := s.faker.Float64(0.1, 10)
	quantity := float64(s.faker.Int(1, 500)) * 10000
	return model.FxForwardAdd{
		FactsetID:            model.Str(fmt.Sprintf("FXF-%s-%d", s.faker.Letters(4), i)),
		GenevaFxForwardName:  model.Str(fmt.Sprintf("%s/%s %s", base, term, maturity)),
		GenevaCounterParty:   model.Str(counterparty),
		StartingDate:         model.Str(start),
		MaturityDate:         model.Str(maturity),
		BaseCurrency:         model.Str(base),
		BaseCurrencyQuantity: model.Str(fmt.Sprintf("%.2f", quantity)),
		TermCurrency:         model.Str(term),
		TermCurrencyQuantity: model.Str(fmt.Sprintf("%.2f", quantity*rate)),
		ForwardRate:          model.Str(fmt.Sprintf("%.6f", rate)),
	}
}

// securityAttribute generates the attributes of sec under a random
// identifier type.
func (s *Seeder) securityAttribute(sec security) model.SecurityAttributeInput {
	idType := Choose(s.faker, idTypes)
	id := sec.ticker
	switch idType {
	case model.IDISIN:
		id = sec.isin
	case model.IDBloomberg:
		id = sec.bloombergID
	}

	in := model.SecurityAttributeInput{
		SecurityIDType:              model.Str(string(idType)),
		SecurityID:                  model.Str(id),
		GicsSector:                  model.Str(Choose(s.faker, gicsSectors)),
		CountryOfRisk:               model.Str(Truncate(s.faker.Country(), 100)),
		CountryOfIssuance:           model.Str(Truncate(s.faker.Country(), 100)),
		SPIssuerRating:              model.Str(Choose(s.faker, ratings)),
		FitchRating:                 model.Str(Choose(s.faker, ratings)),
		PrivatePlacementIndicator:   model.Str(Choose(s.faker, []string{"Y", "N"})),
		FirstYearDefaultProbability: model.Str(s.faker.Number(0, 0.05, 6)),
		TradingVolume90Days:         model.Str(fmt.Sprint(s.faker.Int(1000, 50000000))),
	}
	if s.faker.Bool() {
		in.ParentSymbol = model.Str(sec.genevaID)
	}
	return in
}
