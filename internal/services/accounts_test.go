package services

import (
	"context"
	"errors"
	"testing"

	"combine/internal/core"
	"combine/internal/sheets"
	"combine/internal/sheets/memory"
)

func TestAccountsCreateAndFilterByUser(t *testing.T) {
	store := memory.Seeded()
	svc := NewAccounts(store, discardLogger())
	ctx := context.Background()

	a1, err := svc.Create(ctx, "tok", "sheet1", CreateAccountInput{UserID: "u1", BankName: "N26", AccountAlias: "main", Balance: 120.5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "tok", "sheet1", CreateAccountInput{UserID: "u2", BankName: "Revolut", AccountAlias: "travel"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := svc.List(ctx, "tok", "sheet1", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 accounts, got %d", len(all))
	}

	mine, err := svc.List(ctx, "tok", "sheet1", "u1")
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(mine) != 1 || mine[0] != a1 {
		t.Fatalf("filter mismatch: %+v", mine)
	}
}

func TestAccountsCreateMissingFields(t *testing.T) {
	store := memory.Seeded()
	svc := NewAccounts(store, discardLogger())

	_, err := svc.Create(context.Background(), "tok", "sheet1", CreateAccountInput{UserID: "u1"})
	var mf *core.MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("want MissingFieldsError, got %v", err)
	}
	want := []string{"bankName", "accountAlias"}
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

func TestAccountsListTolerantBalance(t *testing.T) {
	store := memory.Seeded()
	err := store.Append(context.Background(), "tok", "sheet1", sheets.AccountsAppend,
		[][]any{{"a1", "u1", "N26", "main", "N/A"}})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewAccounts(store, discardLogger())
	accounts, err := svc.List(context.Background(), "tok", "sheet1", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Balance != 0 {
		t.Fatalf("want zero balance, got %+v", accounts)
	}
}
