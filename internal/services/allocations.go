package services

import (
	"context"

	"combine/internal/core"
	"combine/internal/log"
	"combine/internal/sheets"
)

type Allocations struct {
	store  sheets.Store
	logger *log.Logger
}

func NewAllocations(store sheets.Store, logger *log.Logger) *Allocations {
	return &Allocations{store: store, logger: logger.WithComponent(log.ComponentAlloc)}
}

func (s *Allocations) List(ctx context.Context, cred sheets.Credential, spreadsheetID string) ([]core.Allocation, error) {
	rows, err := s.store.Read(ctx, cred, spreadsheetID, sheets.AllocationData)
	if err != nil {
		return nil, err
	}
	allocations := make([]core.Allocation, 0, len(rows))
	for _, row := range rows {
		allocations = append(allocations, core.Allocation{
			AllocType:     sheets.Cell(row, 0),
			TargetPercent: sheets.ParseAmount(sheets.Cell(row, 1)),
			Description:   sheets.Cell(row, 2),
		})
	}
	return allocations, nil
}

// ReplaceAll rewrites the whole allocation set: clear the data range, then
// append everything supplied. There is no per-row identity and no partial
// update. Two concurrent calls can race; the store's last write wins.
func (s *Allocations) ReplaceAll(ctx context.Context, cred sheets.Credential, spreadsheetID string, allocations []core.Allocation) ([]core.Allocation, error) {
	if err := s.store.Clear(ctx, cred, spreadsheetID, sheets.AllocationData); err != nil {
		return nil, err
	}
	if len(allocations) == 0 {
		return []core.Allocation{}, nil
	}
	rows := make([][]any, 0, len(allocations))
	for _, a := range allocations {
		rows = append(rows, []any{a.AllocType, a.TargetPercent, a.Description})
	}
	if err := s.store.Append(ctx, cred, spreadsheetID, sheets.AllocationAppend, rows); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Allocation set replaced", "count", len(allocations))
	return allocations, nil
}
