package services

import (
	"context"

	"github.com/google/uuid"

	"combine/internal/core"
	"combine/internal/log"
	"combine/internal/sheets"
)

type Categories struct {
	store  sheets.Store
	logger *log.Logger
}

func NewCategories(store sheets.Store, logger *log.Logger) *Categories {
	return &Categories{store: store, logger: logger.WithComponent(log.ComponentCategory)}
}

type CreateCategoryInput struct {
	CategoryName string
	Type         string
}

func (s *Categories) List(ctx context.Context, cred sheets.Credential, spreadsheetID string) ([]core.Category, error) {
	rows, err := s.store.Read(ctx, cred, spreadsheetID, sheets.CategoriesData)
	if err != nil {
		return nil, err
	}
	categories := make([]core.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, core.Category{
			CategoryID:   sheets.Cell(row, 0),
			CategoryName: sheets.Cell(row, 1),
			Type:         sheets.Cell(row, 2),
		})
	}
	return categories, nil
}

func (s *Categories) Create(ctx context.Context, cred sheets.Credential, spreadsheetID string, in CreateCategoryInput) (core.Category, error) {
	if err := core.RequireFields(
		"categoryName", in.CategoryName,
		"type", in.Type,
	); err != nil {
		return core.Category{}, err
	}
	category := core.Category{
		CategoryID:   uuid.NewString(),
		CategoryName: in.CategoryName,
		Type:         in.Type,
	}
	row := [][]any{{category.CategoryID, category.CategoryName, category.Type}}
	if err := s.store.Append(ctx, cred, spreadsheetID, sheets.CategoriesAppend, row); err != nil {
		return core.Category{}, err
	}
	s.logger.InfoContext(ctx, "Category created", "category_id", category.CategoryID)
	return category, nil
}
