package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"combine/internal/core"
	"combine/internal/sheets/memory"
)

func amount(v float64) *float64 { return &v }

func seedLedger(t *testing.T) (*Ledger, context.Context) {
	t.Helper()
	svc := NewLedger(memory.Seeded(), discardLogger())
	ctx := context.Background()
	rows := []CreateTransactionInput{
		{Date: "2024-03-15", UserID: "u1", AccountID: "a1", CategoryID: "c1", Amount: amount(100)},
		{Date: "2024-04-01", UserID: "u1", AccountID: "a1", CategoryID: "c2", Amount: amount(40), Description: "rent"},
		{Date: "2024-03-20", UserID: "u2", AccountID: "a2", CategoryID: "c2", Amount: amount(12.5)},
	}
	for _, in := range rows {
		if _, err := svc.Create(ctx, "tok", "sheet1", in); err != nil {
			t.Fatalf("seed create: %v", err)
		}
	}
	return svc, ctx
}

func TestLedgerCreateGeneratesUniqueIDs(t *testing.T) {
	svc := NewLedger(memory.Seeded(), discardLogger())
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		tx, err := svc.Create(ctx, "tok", "sheet1", CreateTransactionInput{
			Date: "2024-03-15", UserID: "u1", AccountID: "a1", CategoryID: "c1", Amount: amount(10),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[tx.TxID] {
			t.Fatalf("duplicate id %s", tx.TxID)
		}
		seen[tx.TxID] = true
		if tx.Description != "" {
			t.Fatalf("description should default empty, got %q", tx.Description)
		}
		if _, err := time.Parse(time.RFC3339, tx.Timestamp); err != nil {
			t.Fatalf("timestamp %q: %v", tx.Timestamp, err)
		}
	}
}

func TestLedgerListMonthPrefix(t *testing.T) {
	svc, ctx := seedLedger(t)

	march, err := svc.List(ctx, "tok", "sheet1", LedgerFilter{Month: "2024-03"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(march) != 2 {
		t.Fatalf("want 2 march transactions, got %d", len(march))
	}
	for _, tx := range march {
		if tx.Date[:7] != "2024-03" {
			t.Fatalf("wrong month: %s", tx.Date)
		}
	}

	// Literal prefix: no zero-pad means no match.
	none, err := svc.List(ctx, "tok", "sheet1", LedgerFilter{Month: "2024-3"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("unpadded month matched %d rows", len(none))
	}
}

func TestLedgerListUserFilter(t *testing.T) {
	svc, ctx := seedLedger(t)

	mine, err := svc.List(ctx, "tok", "sheet1", LedgerFilter{UserID: "u2"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].Amount != 12.5 {
		t.Fatalf("filter mismatch: %+v", mine)
	}

	both, err := svc.List(ctx, "tok", "sheet1", LedgerFilter{UserID: "u1", Month: "2024-03"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(both) != 1 || both[0].CategoryID != "c1" {
		t.Fatalf("combined filter mismatch: %+v", both)
	}
}

func TestLedgerCreateMissingFields(t *testing.T) {
	store := memory.Seeded()
	svc := NewLedger(store, discardLogger())

	_, err := svc.Create(context.Background(), "tok", "sheet1", CreateTransactionInput{Date: "2024-03-15"})
	var mf *core.MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("want MissingFieldsError, got %v", err)
	}
	want := []string{"userId", "accountId", "categoryId", "amount"}
	if len(mf.Fields) != len(want) {
		t.Fatalf("fields %v", mf.Fields)
	}
	for i, f := range want {
		if mf.Fields[i] != f {
			t.Fatalf("fields %v", mf.Fields)
		}
	}
	if store.MutatingCalls() != 0 {
		t.Fatal("store written on validation failure")
	}
}

func TestLedgerCreateZeroAmountIsValid(t *testing.T) {
	svc := NewLedger(memory.Seeded(), discardLogger())
	tx, err := svc.Create(context.Background(), "tok", "sheet1", CreateTransactionInput{
		Date: "2024-03-15", UserID: "u1", AccountID: "a1", CategoryID: "c1", Amount: amount(0),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.Amount != 0 {
		t.Fatalf("amount %v", tx.Amount)
	}
}
