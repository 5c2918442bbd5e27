//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the security data service.
// Run with: go test -tags=integration ./internal/secdata/...
// Requires PostgreSQL to be available.
// Set PGEDGE_TEST_CONN environment variable to override connection string.

package secdata_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-secdata/internal/datagen"
	"github.com/pgEdge/pgedge-secdata/internal/db"
	"github.com/pgEdge/pgedge-secdata/internal/model"
	"github.com/pgEdge/pgedge-secdata/internal/secdata"
	"github.com/pgEdge/pgedge-secdata/internal/store"
	"github.com/pgEdge/pgedge-secdata/internal/testutil"
	"github.com/pgEdge/pgedge-secdata/internal/validation"
)

// newService returns a service whose every mode is bound to one
// throwaway database.
func newService(t *testing.T, mode secdata.Mode) (*secdata.Service, context.Context) {
	t.Helper()
	_, connStr := testutil.NewSchemaDB(t, "secdata")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	svc := secdata.New(func(ctx context.Context, _ secdata.Mode) (secdata.Conn, error) {
		return db.Connect(ctx, connStr, 4)
	})
	t.Cleanup(svc.Close)

	if err := svc.Initialize(ctx, mode); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return svc, ctx
}

func tencent() model.SecurityBaseAdd {
	return model.SecurityBaseAdd{
		GenevaID:             model.Str("700 HK"),
		GenevaAssetType:      model.Str("Equity"),
		GenevaInvestmentType: model.Str("Common Stock"),
		Ticker:               model.Str("700 HK"),
		ISIN:                 model.Str("KYG875721634"),
		BloombergID:          model.Str("BBG000BJ35N5"),
		Sedol:                model.Str("BMMV2K8"),
		Currency:             model.Str("HKD"),
		IsPrivate:            model.Str("N"),
		Description:          model.Str("Tencent"),
		ExchangeName:         model.Str("HK"),
	}
}

func fxForward(id string) model.FxForwardAdd {
	return model.FxForwardAdd{
		FactsetID:            model.Str(id),
		GenevaFxForwardName:  model.Str(id),
		GenevaCounterParty:   model.Str("IB"),
		StartingDate:         model.Str("2021-01-08"),
		MaturityDate:         model.Str("2021-07-08"),
		BaseCurrency:         model.Str("USD"),
		BaseCurrencyQuantity: model.Str("1000000"),
		TermCurrency:         model.Str("HKD"),
		TermCurrencyQuantity: model.Str("7760000"),
		ForwardRate:          model.Str("7.76"),
	}
}

func TestUniquenessAndPartialMerge(t *testing.T) {
	svc, ctx := newService(t, secdata.ModeTest)

	if err := svc.AddSecurityBase(ctx, tencent()); err != nil {
		t.Fatalf("AddSecurityBase failed: %v", err)
	}

	dup := tencent()
	dup.Description = model.Str("Someone else")
	if err := svc.AddSecurityBase(ctx, dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}

	err := svc.UpdateSecurityBase(ctx, model.SecurityBaseUpdate{
		GenevaID:  model.Str("700 HK"),
		IsPrivate: model.Str("Y"),
	})
	if err != nil {
		t.Fatalf("UpdateSecurityBase failed: %v", err)
	}

	got, err := svc.GetSecurityBase(ctx, model.SecurityBaseKey{GenevaID: model.Str("700 HK")})
	if err != nil || got == nil {
		t.Fatalf("GetSecurityBase failed: %v", err)
	}
	if got.IsPrivate != "Y" {
		t.Errorf("is_private = %q, want Y", got.IsPrivate)
	}
	if got.Description != "Tencent" || got.Ticker != "700 HK" || got.ISIN != "KYG875721634" {
		t.Errorf("Unsupplied fields changed: %+v", got)
	}
	if _, err := time.Parse("2006-01-02 15:04:05", got.Timestamp); err != nil {
		t.Errorf("timestamp %q not stamped: %v", got.Timestamp, err)
	}

	err = svc.UpdateSecurityBase(ctx, model.SecurityBaseUpdate{
		GenevaID:  model.Str("701 HK"),
		IsPrivate: model.Str("Y"),
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	missing, err := svc.GetSecurityBase(ctx, model.SecurityBaseKey{GenevaID: model.Str("701 HK")})
	if err != nil || missing != nil {
		t.Errorf("Update of missing key must not create it: %+v, %v", missing, err)
	}
}

func TestDuplicateAddLeavesRowUnchanged(t *testing.T) {
	svc, ctx := newService(t, secdata.ModeTest)

	deposit := model.FixedDepositAdd{
		GenevaID:           model.Str("IB FD 0.651 07/08/2021"),
		FactsetID:          model.Str("IB_FD_0_pt_651_07082021"),
		GenevaCounterParty: model.Str("IB"),
		StartingDate:       model.Str("2021-01-08"),
		MaturityDate:       model.Str("2021-07-08"),
		InterestRate:       model.Str("0.651"),
	}
	if err := svc.AddFixedDeposit(ctx, deposit); err != nil {
		t.Fatalf("AddFixedDeposit failed: %v", err)
	}
	dupDeposit := deposit
	dupDeposit.InterestRate = model.Str("9.99")
	if err := svc.AddFixedDeposit(ctx, dupDeposit); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists for fixed deposit, got %v", err)
	}
	fd, err := svc.GetFixedDeposit(ctx, model.FixedDepositKey{GenevaID: deposit.GenevaID})
	if err != nil || fd == nil {
		t.Fatalf("GetFixedDeposit failed: %v", err)
	}
	if fd.InterestRate != 0.651 {
		t.Errorf("interest_rate = %v, want 0.651", fd.InterestRate)
	}

	fwd := fxForward("USDHKD_20210708_IB")
	if err := svc.AddFxForward(ctx, fwd); err != nil {
		t.Fatalf("AddFxForward failed: %v", err)
	}
	before, err := svc.GetAllCounterparties(ctx)
	if err != nil {
		t.Fatalf("GetAllCounterparties failed: %v", err)
	}
	dupFwd := fxForward("USDHKD_20210708_IB")
	dupFwd.GenevaCounterParty = model.Str("HSBC")
	dupFwd.ForwardRate = model.Str("8.00")
	if err := svc.AddFxForward(ctx, dupFwd); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists for fx forward, got %v", err)
	}
	after, err := svc.GetAllCounterparties(ctx)
	if err != nil {
		t.Fatalf("GetAllCounterparties failed: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("Duplicate fx forward wrote a counterparty: before %+v, after %+v", before, after)
	}
	for _, cp := range after {
		if cp.GenevaCounterParty == "HSBC" {
			t.Errorf("Unexpected counterparty %+v", cp)
		}
	}
	ff, err := svc.GetFxForward(ctx, model.FxForwardKey{FactsetID: fwd.FactsetID})
	if err != nil || ff == nil {
		t.Fatalf("GetFxForward failed: %v", err)
	}
	if ff.GenevaCounterParty != "IB" || ff.ForwardRate != 7.76 {
		t.Errorf("fx forward changed by duplicate add: %+v", ff)
	}

	attr := model.SecurityAttributeInput{
		SecurityIDType: model.Str("ISIN"),
		SecurityID:     model.Str("KYG875721634"),
		GicsSector:     model.Str("Communication Services"),
	}
	if err := svc.AddSecurityAttribute(ctx, attr); err != nil {
		t.Fatalf("AddSecurityAttribute failed: %v", err)
	}
	dupAttr := attr
	dupAttr.GicsSector = model.Str("Energy")
	if err := svc.AddSecurityAttribute(ctx, dupAttr); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists for security attribute, got %v", err)
	}
	sa, err := svc.GetSecurityAttribute(ctx, model.SecurityAttributeKey{
		SecurityIDType: attr.SecurityIDType,
		SecurityID:     attr.SecurityID,
	})
	if err != nil || sa == nil {
		t.Fatalf("GetSecurityAttribute failed: %v", err)
	}
	if sa.GicsSector != "Communication Services" {
		t.Errorf("gics_sector = %q, want Communication Services", sa.GicsSector)
	}
}

func TestIdempotentLinkage(t *testing.T) {
	svc, ctx := newService(t, secdata.ModeTest)

	all, err := svc.GetAllCounterparties(ctx)
	if err != nil {
		t.Fatalf("GetAllCounterparties failed: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("Expected empty list, got %#v", all)
	}

	for _, id := range []string{"USDHKD_20210708_IB", "EURUSD_20210708_IB"} {
		if err := svc.AddFxForward(ctx, fxForward(id)); err != nil {
			t.Fatalf("AddFxForward(%s) failed: %v", id, err)
		}
	}

	all, err = svc.GetAllCounterparties(ctx)
	if err != nil {
		t.Fatalf("GetAllCounterparties failed: %v", err)
	}
	if len(all) != 1 || all[0].GenevaCounterParty != "IB" || all[0].GenevaPartyType != string(model.PartyFxForward) {
		t.Errorf("Expected one IB/FX Forward counterparty, got %+v", all)
	}

	// An explicit add of the linked pair now collides.
	err = svc.AddCounterparty(ctx, model.CounterpartyAdd{
		GenevaCounterParty: model.Str("IB"),
		GenevaPartyType:    model.Str("FX Forward"),
	})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	// The linked row can be completed by update.
	err = svc.UpdateCounterparty(ctx, model.CounterpartyUpdate{
		GenevaCounterParty: model.Str("IB"),
		GenevaPartyType:    model.Str("FX Forward"),
		GenevaPartyName:    model.Str("Interactive Brokers"),
	})
	if err != nil {
		t.Fatalf("UpdateCounterparty failed: %v", err)
	}
	all, _ = svc.GetAllCounterparties(ctx)
	if len(all) != 1 || all[0].GenevaPartyName != "Interactive Brokers" {
		t.Errorf("Counterparty not updated: %+v", all)
	}
}

func TestProductionGuard(t *testing.T) {
	svc, ctx := newService(t, secdata.ModeProduction)

	if err := svc.AddFutures(ctx, model.FuturesInput{Ticker: model.Str("TYM1 Comdty")}); err != nil {
		t.Fatalf("AddFutures failed: %v", err)
	}
	if err := svc.AddFxForward(ctx, fxForward("USDHKD_20210708_IB")); err != nil {
		t.Fatalf("AddFxForward failed: %v", err)
	}

	if err := svc.ClearAll(ctx); !errors.Is(err, secdata.ErrClearForbiddenInProduction) {
		t.Fatalf("Expected ErrClearForbiddenInProduction, got %v", err)
	}
	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Counts[model.KindFutures] != 1 || status.Counts[model.KindFxForward] != 1 || status.Counts[model.KindCounterparty] != 1 {
		t.Errorf("Rows deleted despite guard: %v", status.Counts)
	}

	if err := svc.Initialize(ctx, secdata.ModeUAT); err != nil {
		t.Fatalf("Initialize uat failed: %v", err)
	}
	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	status, err = svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Mode != "uat" {
		t.Errorf("Status mode = %s", status.Mode)
	}
	for kind, n := range status.Counts {
		if n != 0 {
			t.Errorf("%s has %d rows after clear", kind, n)
		}
	}
}

func TestValidationBoundary(t *testing.T) {
	svc, ctx := newService(t, secdata.ModeTest)

	in := tencent()
	in.IsPrivate = model.Str("maybe")
	if err := svc.AddSecurityBase(ctx, in); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	in = tencent()
	in.Description = model.Str("")
	if err := svc.AddSecurityBase(ctx, in); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}

	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Counts[model.KindSecurityBase] != 0 {
		t.Errorf("Rejected input was stored")
	}
}

func TestLookupMissAndRoundTrip(t *testing.T) {
	svc, ctx := newService(t, secdata.ModeTest)

	got, err := svc.GetFutures(ctx, model.FuturesKey{Ticker: model.Str("nonexistent ticker")})
	if err != nil || got != nil {
		t.Fatalf("Expected empty result, got %+v, %v", got, err)
	}

	err = svc.AddFutures(ctx, model.FuturesInput{
		Ticker:       model.Str("TYM1 Comdty"),
		ContractSize: model.Str("100000"),
		ValueOf1pt:   model.Str("2000"),
	})
	if err != nil {
		t.Fatalf("AddFutures failed: %v", err)
	}
	got, err = svc.GetFutures(ctx, model.FuturesKey{Ticker: model.Str("TYM1 Comdty")})
	if err != nil || got == nil {
		t.Fatalf("GetFutures failed: %v", err)
	}
	if got.ContractSize == nil || *got.ContractSize != 100000.0 {
		t.Errorf("contract_size = %v", got.ContractSize)
	}

	err = svc.AddFixedDeposit(ctx, model.FixedDepositAdd{
		GenevaID:           model.Str("IB Fixed Deposit 0.651 07/08/2021"),
		FactsetID:          model.Str("IB_Fixed_Deposit_0_pt_651_07082021"),
		GenevaCounterParty: model.Str("IB"),
		StartingDate:       model.Str("2021-01-08"),
		MaturityDate:       model.Str("2021-07-08"),
		InterestRate:       model.Str("0.75"),
	})
	if err != nil {
		t.Fatalf("AddFixedDeposit failed: %v", err)
	}
	fd, err := svc.GetFixedDeposit(ctx, model.FixedDepositKey{GenevaID: model.Str("IB Fixed Deposit 0.651 07/08/2021")})
	if err != nil || fd == nil {
		t.Fatalf("GetFixedDeposit failed: %v", err)
	}
	if fd.StartingDate != "2021-01-08" || fd.MaturityDate != "2021-07-08" || fd.InterestRate != 0.75 {
		t.Errorf("Unexpected fixed deposit: %+v", fd)
	}

	attr := model.SecurityAttributeInput{
		SecurityIDType:              model.Str("Ticker"),
		SecurityID:                  model.Str("700 HK"),
		GicsSector:                  model.Str("Communication Services"),
		FirstYearDefaultProbability: model.Str("0.0012"),
		PrivatePlacementIndicator:   model.Str(""),
	}
	if err := svc.AddSecurityAttribute(ctx, attr); err != nil {
		t.Fatalf("AddSecurityAttribute failed: %v", err)
	}
	err = svc.UpdateSecurityAttribute(ctx, model.SecurityAttributeInput{
		SecurityIDType: model.Str("Ticker"),
		SecurityID:     model.Str("700 HK"),
		SfcRegion:      model.Str("Hong Kong"),
	})
	if err != nil {
		t.Fatalf("UpdateSecurityAttribute failed: %v", err)
	}
	sa, err := svc.GetSecurityAttribute(ctx, model.SecurityAttributeKey{
		SecurityIDType: model.Str("Ticker"),
		SecurityID:     model.Str("700 HK"),
	})
	if err != nil || sa == nil {
		t.Fatalf("GetSecurityAttribute failed: %v", err)
	}
	if sa.GicsSector != "Communication Services" || sa.SfcRegion != "Hong Kong" {
		t.Errorf("Unexpected attributes: %+v", sa)
	}
	if sa.FirstYearDefaultProbability == nil || *sa.FirstYearDefaultProbability != 0.0012 {
		t.Errorf("first_year_default_probability = %v", sa.FirstYearDefaultProbability)
	}
	if sa.Tier1CommonEquityRatio != nil {
		t.Errorf("Unset numeric attribute should be nil")
	}
}

func TestSchemaModeGuard(t *testing.T) {
	svc, ctx := newService(t, secdata.ModeUAT)

	if err := svc.CreateSchema(ctx, false); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !status.SchemaReady || status.Metadata["mode"] != "uat" {
		t.Errorf("Unexpected status after create: %+v", status)
	}

	// Recreating under the same mode is a no-op.
	if err := svc.CreateSchema(ctx, false); err != nil {
		t.Fatalf("CreateSchema rerun failed: %v", err)
	}

	if err := svc.Initialize(ctx, secdata.ModeTest); err != nil {
		t.Fatalf("Initialize test failed: %v", err)
	}
	if err := svc.CreateSchema(ctx, false); !errors.Is(err, secdata.ErrModeMismatch) {
		t.Fatalf("Expected ErrModeMismatch, got %v", err)
	}
	if err := svc.CreateSchema(ctx, true); err != nil {
		t.Fatalf("CreateSchema with drop failed: %v", err)
	}

	if err := svc.DropSchema(ctx); err != nil {
		t.Fatalf("DropSchema failed: %v", err)
	}
	status, err = svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.SchemaReady || len(status.Counts) != 0 {
		t.Errorf("Schema still reported after drop: %+v", status)
	}
}

func TestSeedThroughService(t *testing.T) {
	svc, ctx := newService(t, secdata.ModeTest)

	seeder := datagen.NewSeeder(datagen.NewFakerWithSeed(2025))
	res, err := seeder.Seed(ctx, svc, 5)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	for _, kind := range model.Kinds {
		if res.Added[kind] != 5 {
			t.Errorf("added %s = %d, want 5", kind, res.Added[kind])
		}
	}

	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	// Five repo counterparties plus the ones linked by fixed deposits and
	// FX forwards.
	if n := status.Counts[model.KindCounterparty]; n < 6 || n > 15 {
		t.Errorf("counterparty count = %d, want between 6 and 15", n)
	}

	// A second run with the same seed finds every key taken.
	res, err = datagen.NewSeeder(datagen.NewFakerWithSeed(2025)).Seed(ctx, svc, 5)
	if err != nil {
		t.Fatalf("Reseed failed: %v", err)
	}
	if res.Skipped[model.KindSecurityBase] != 5 {
		t.Errorf("reseed skipped %d security_base rows, want 5", res.Skipped[model.KindSecurityBase])
	}
}
