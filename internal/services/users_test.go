package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"combine/internal/core"
	"combine/internal/log"
	"combine/internal/sheets/memory"
)

func discardLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func TestUsersCreateAndList(t *testing.T) {
	store := memory.Seeded()
	svc := NewUsers(store, discardLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, "tok", "sheet1", CreateUserInput{UserName: "Ada"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID == "" {
		t.Fatal("no id generated")
	}
	if created.Role != core.DefaultRole {
		t.Fatalf("role %q", created.Role)
	}

	users, err := svc.List(ctx, "tok", "sheet1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0] != created {
		t.Fatalf("list mismatch: %+v", users)
	}
}

func TestUsersCreateKeepsExplicitRole(t *testing.T) {
	svc := NewUsers(memory.Seeded(), discardLogger())
	created, err := svc.Create(context.Background(), "tok", "sheet1", CreateUserInput{UserName: "Ada", Role: "Admin", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != "Admin" || created.Email != "ada@example.com" {
		t.Fatalf("unexpected record: %+v", created)
	}
}

func TestUsersCreateMissingNameWritesNothing(t *testing.T) {
	store := memory.Seeded()
	svc := NewUsers(store, discardLogger())

	_, err := svc.Create(context.Background(), "tok", "sheet1", CreateUserInput{})
	var mf *core.MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("want MissingFieldsError, got %v", err)
	}
	if len(mf.Fields) != 1 || mf.Fields[0] != "userName" {
		t.Fatalf("fields %v", mf.Fields)
	}
	if store.MutatingCalls() != 0 {
		t.Fatalf("store written on validation failure: %d calls", store.MutatingCalls())
	}
}

func TestUsersListEmpty(t *testing.T) {
	svc := NewUsers(memory.Seeded(), discardLogger())
	users, err := svc.List(context.Background(), "tok", "sheet1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("want empty, got %+v", users)
	}
}
