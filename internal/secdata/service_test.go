package secdata

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-secdata/internal/model"
	"github.com/pgEdge/pgedge-secdata/internal/store"
	"github.com/pgEdge/pgedge-secdata/internal/validation"
)

func newTestService(t *testing.T, mode Mode, opts ...Option) (*Service, *fakeConnector) {
	t.Helper()
	fc := &fakeConnector{}
	svc := New(fc.connect, opts...)
	if mode != ModeUninitialized {
		if err := svc.Initialize(context.Background(), mode); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
	}
	return svc, fc
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

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		want Mode
	}{
		{"production", ModeProduction},
		{"PRODUCTION", ModeProduction},
		{"uat", ModeUAT},
		{" uat ", ModeUAT},
		{"test", ModeTest},
		{"dev", ModeTest},
		{"", ModeTest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMode(tt.name); got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if ModeProduction.AllowsClear() || ModeUninitialized.AllowsClear() {
		t.Error("Production and uninitialized modes must not allow clearing")
	}
	if !ModeTest.AllowsClear() || !ModeUAT.AllowsClear() {
		t.Error("Test and UAT modes must allow clearing")
	}
}

func TestOperationsRequireInitialize(t *testing.T) {
	svc, _ := newTestService(t, ModeUninitialized)
	ctx := context.Background()

	ops := map[string]func() error{
		"clear": func() error { return svc.ClearAll(ctx) },
		"get_security_base": func() error {
			_, err := svc.GetSecurityBase(ctx, model.SecurityBaseKey{GenevaID: model.Str("700 HK")})
			return err
		},
		"add_security_base": func() error { return svc.AddSecurityBase(ctx, tencent()) },
		"update_futures": func() error {
			return svc.UpdateFutures(ctx, model.FuturesInput{Ticker: model.Str("TYM1 Comdty")})
		},
		"counterparties": func() error {
			_, err := svc.GetAllCounterparties(ctx)
			return err
		},
		"add_fx_forward": func() error { return svc.AddFxForward(ctx, model.FxForwardAdd{}) },
		"status": func() error {
			_, err := svc.Status(ctx)
			return err
		},
		"execute": func() error {
			_, err := svc.Execute(ctx, OpGet, model.KindFutures, func(any) error { return nil })
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("Expected ErrNotInitialized, got %v", err)
			}
		})
	}

	if svc.Mode() != ModeUninitialized {
		t.Errorf("Expected uninitialized mode, got %v", svc.Mode())
	}
}

func TestInitializeFailure(t *testing.T) {
	fc := &fakeConnector{err: errors.New("connection refused")}
	svc := New(fc.connect)

	if err := svc.Initialize(context.Background(), ModeUAT); err == nil {
		t.Fatal("Expected Initialize to fail")
	}
	if svc.Mode() != ModeUninitialized {
		t.Errorf("Failed Initialize must leave the service unbound, mode = %v", svc.Mode())
	}
	if err := svc.Initialize(context.Background(), ModeUninitialized); err == nil {
		t.Error("Expected error initializing to the uninitialized mode")
	}
}

func TestReinitializeClosesPrevious(t *testing.T) {
	svc, fc := newTestService(t, ModeTest)
	first := fc.last()

	if err := svc.Initialize(context.Background(), ModeUAT); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !first.closed {
		t.Error("Previous connection should be closed")
	}
	if svc.Mode() != ModeUAT {
		t.Errorf("Expected UAT mode, got %v", svc.Mode())
	}
	if fc.modes[1] != ModeUAT {
		t.Errorf("Connector asked for %v", fc.modes[1])
	}

	svc.Close()
	if !fc.last().closed {
		t.Error("Close should close the connection")
	}
	if err := svc.ClearAll(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized after Close, got %v", err)
	}
}

func TestClearForbiddenInProduction(t *testing.T) {
	svc, fc := newTestService(t, ModeProduction)
	conn := fc.last()

	err := svc.ClearAll(context.Background())
	if !errors.Is(err, ErrClearForbiddenInProduction) {
		t.Fatalf("Expected ErrClearForbiddenInProduction, got %v", err)
	}
	if conn.calls != 0 {
		t.Errorf("Refused clear must not touch storage, saw %d calls", conn.calls)
	}

	if err := svc.DropSchema(context.Background()); !errors.Is(err, ErrClearForbiddenInProduction) {
		t.Errorf("Expected drop to be refused, got %v", err)
	}
	if err := svc.CreateSchema(context.Background(), true); !errors.Is(err, ErrClearForbiddenInProduction) {
		t.Errorf("Expected drop-and-create to be refused, got %v", err)
	}
}

func TestClearAllDeletesEveryTable(t *testing.T) {
	svc, fc := newTestService(t, ModeUAT)
	conn := fc.last()

	if err := svc.ClearAll(context.Background()); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	stmts := conn.statements()
	if len(stmts) != len(model.Kinds) {
		t.Fatalf("Expected %d deletes, got %d", len(model.Kinds), len(stmts))
	}
	for i, kind := range model.Kinds {
		table, _ := model.TableFor(kind)
		want := `DELETE FROM "` + table.Name + `"`
		if stmts[i].sql != want {
			t.Errorf("Statement %d = %q, want %q", i, stmts[i].sql, want)
		}
	}
	if conn.commits != 1 {
		t.Errorf("Expected a single commit, got %d", conn.commits)
	}
}

func TestValidationRunsBeforeStorage(t *testing.T) {
	svc, fc := newTestService(t, ModeTest)
	conn := fc.last()

	in := tencent()
	in.IsPrivate = model.Str("maybe")
	err := svc.AddSecurityBase(context.Background(), in)
	if !errors.Is(err, validation.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}

	in = tencent()
	in.Description = model.Str("")
	if err := svc.AddSecurityBase(context.Background(), in); !errors.Is(err, validation.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput for empty description, got %v", err)
	}

	// A missing key is a validation failure, not a lookup.
	err = svc.UpdateFixedDeposit(context.Background(), model.FixedDepositUpdate{InterestRate: model.Str("1")})
	if !errors.Is(err, validation.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput for missing key, got %v", err)
	}

	if conn.calls != 0 {
		t.Errorf("Rejected input must not touch storage, saw %d calls", conn.calls)
	}
}

func TestAddStampsTimestamp(t *testing.T) {
	now := time.Date(2021, 6, 1, 9, 30, 15, 987654321, time.UTC)
	svc, fc := newTestService(t, ModeTest, WithClock(func() time.Time { return now }))
	conn := fc.last()

	if err := svc.AddFutures(context.Background(), model.FuturesInput{
		Ticker:       model.Str("TYM1 Comdty"),
		ContractSize: model.Str("200000"),
	}); err != nil {
		t.Fatalf("AddFutures failed: %v", err)
	}

	stmts := conn.statements()
	if len(stmts) != 1 {
		t.Fatalf("Expected one insert, got %d", len(stmts))
	}
	if !strings.Contains(stmts[0].sql, `"timestamp"`) {
		t.Errorf("Insert does not set timestamp: %s", stmts[0].sql)
	}
	last := stmts[0].args[len(stmts[0].args)-1]
	if want := now.Truncate(time.Second); last != want {
		t.Errorf("timestamp = %v, want %v", last, want)
	}

	// Updates never touch the timestamp.
	if err := svc.UpdateFutures(context.Background(), model.FuturesInput{Ticker: model.Str("TYM1 Comdty")}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from fake lookup, got %v", err)
	}
}

func TestAddFixedDepositLinksCounterparty(t *testing.T) {
	svc, fc := newTestService(t, ModeTest)
	conn := fc.last()

	in := model.FixedDepositAdd{
		GenevaID:           model.Str("IB Fixed Deposit 0.651 07/08/2021"),
		FactsetID:          model.Str("IB_Fixed_Deposit_0_pt_651_07082021"),
		GenevaCounterParty: model.Str("IB"),
		StartingDate:       model.Str("2021-01-08"),
		MaturityDate:       model.Str("2021-07-08"),
		InterestRate:       model.Str("0.75"),
	}
	if err := svc.AddFixedDeposit(context.Background(), in); err != nil {
		t.Fatalf("AddFixedDeposit failed: %v", err)
	}

	stmts := conn.statements()
	if len(stmts) != 2 {
		t.Fatalf("Expected two inserts, got %d", len(stmts))
	}
	if !strings.HasPrefix(stmts[0].sql, `INSERT INTO "fixed_deposits"`) {
		t.Errorf("First insert should be the deposit: %s", stmts[0].sql)
	}
	if !strings.HasPrefix(stmts[1].sql, `INSERT INTO "otc_counter_parties"`) {
		t.Errorf("Second insert should be the counterparty: %s", stmts[1].sql)
	}
	if stmts[1].args[0] != "IB" || stmts[1].args[1] != "Fixed Deposit" {
		t.Errorf("Unexpected counterparty args: %v", stmts[1].args)
	}
	// Savepoint and transaction both commit.
	if conn.commits != 2 || conn.rollbacks != 0 {
		t.Errorf("commits = %d, rollbacks = %d", conn.commits, conn.rollbacks)
	}
}

func TestAddFxForwardToleratesExistingCounterparty(t *testing.T) {
	svc, fc := newTestService(t, ModeTest)
	conn := fc.last()
	conn.exists["otc_counter_parties"] = true

	in := model.FxForwardAdd{
		FactsetID:            model.Str("USDHKD_20210708_IB"),
		GenevaFxForwardName:  model.Str("USD/HKD 07/08/2021"),
		GenevaCounterParty:   model.Str("IB"),
		StartingDate:         model.Str("2021-01-08"),
		MaturityDate:         model.Str("2021-07-08"),
		BaseCurrency:         model.Str("USD"),
		BaseCurrencyQuantity: model.Str("1000000"),
		TermCurrency:         model.Str("HKD"),
		TermCurrencyQuantity: model.Str("7760000"),
		ForwardRate:          model.Str("7.76"),
	}
	if err := svc.AddFxForward(context.Background(), in); err != nil {
		t.Fatalf("AddFxForward failed: %v", err)
	}

	stmts := conn.statements()
	if len(stmts) != 1 || !strings.HasPrefix(stmts[0].sql, `INSERT INTO "fx_forwards"`) {
		t.Fatalf("Expected only the forward insert, got %v", stmts)
	}
	// The savepoint rolls back, the enclosing transaction commits.
	if conn.rollbacks != 1 || conn.commits != 1 {
		t.Errorf("commits = %d, rollbacks = %d", conn.commits, conn.rollbacks)
	}
}

func TestAddRejectsExistingKey(t *testing.T) {
	svc, fc := newTestService(t, ModeTest)
	conn := fc.last()
	conn.exists["security_base"] = true

	err := svc.AddSecurityBase(context.Background(), tencent())
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}
	var rerr *store.RecordError
	if !errors.As(err, &rerr) || rerr.Key != "700 HK" || rerr.Entity != model.KindSecurityBase {
		t.Errorf("Unexpected record error: %+v", rerr)
	}
	if len(conn.statements()) != 0 {
		t.Error("Duplicate key must not insert")
	}
}

func TestExecute(t *testing.T) {
	svc, fc := newTestService(t, ModeTest)
	conn := fc.last()
	ctx := context.Background()

	body := `{"geneva_counter_party":"IB","geneva_party_type":"Repo","bloomberg_ticker":""}`
	decode := func(v any) error { return json.Unmarshal([]byte(body), v) }

	rec, err := svc.Execute(ctx, OpAdd, model.KindCounterparty, decode)
	if err != nil || rec != nil {
		t.Fatalf("Execute add = %v, %v", rec, err)
	}
	stmts := conn.statements()
	if len(stmts) != 1 || !strings.HasPrefix(stmts[0].sql, `INSERT INTO "otc_counter_parties"`) {
		t.Errorf("Unexpected statements: %v", stmts)
	}

	if _, err := svc.Execute(ctx, OpGet, model.KindCounterparty, decode); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported for counterparty get, got %v", err)
	}
	if _, err := svc.Execute(ctx, OpAdd, "options", decode); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported for unknown kind, got %v", err)
	}
	if _, err := svc.Execute(ctx, "delete", model.KindFutures, decode); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported for unknown op, got %v", err)
	}

	badJSON := func(v any) error { return json.Unmarshal([]byte(`{"ticker": 5}`), v) }
	if _, err := svc.Execute(ctx, OpUpdate, model.KindFutures, badJSON); err == nil {
		t.Error("Expected decode error")
	}
}
