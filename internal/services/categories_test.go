package services

import (
	"context"
	"errors"
	"testing"

	"combine/internal/core"
	"combine/internal/sheets/memory"
)

func TestCategoriesCreateAndList(t *testing.T) {
	svc := NewCategories(memory.Seeded(), discardLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, "tok", "sheet1", CreateCategoryInput{CategoryName: "Groceries", Type: core.CategoryExpense})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	categories, err := svc.List(ctx, "tok", "sheet1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 1 || categories[0] != created {
		t.Fatalf("list mismatch: %+v", categories)
	}
}

func TestCategoriesCreateMissingType(t *testing.T) {
	store := memory.Seeded()
	svc := NewCategories(store, discardLogger())

	_, err := svc.Create(context.Background(), "tok", "sheet1", CreateCategoryInput{CategoryName: "Groceries"})
	var mf *core.MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("want MissingFieldsError, got %v", err)
	}
	if len(mf.Fields) != 1 || mf.Fields[0] != "type" {
		t.Fatalf("fields %v", mf.Fields)
	}
	if store.MutatingCalls() != 0 {
		t.Fatal("store written on validation failure")
	}
}
