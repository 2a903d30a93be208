package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"combine/internal/sheets"
)

// Store is an in-memory stand-in for the Google Sheets backend. It backs the
// local development mode and every test that would otherwise need a live
// spreadsheet. Each tab is a grid of cell strings with row 1 as the header.
type Store struct {
	mu        sync.Mutex
	tabs      map[string][][]string
	mutations int
}

var _ sheets.Store = (*Store)(nil)

func New() *Store {
	return &Store{tabs: make(map[string][][]string)}
}

// Seeded returns a store with the schema already provisioned, saving tests
// the EnsureSchema call. The credential is ignored here.
func Seeded() *Store {
	s := New()
	_, _ = s.EnsureSchema(context.Background(), "", "")
	s.mutations = 0
	return s
}

// MutatingCalls reports how many writes (append/update/clear/tab creation)
// the store has received. Used to assert EnsureSchema idempotence.
func (s *Store) MutatingCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutations
}

// splitRange separates "Tab!A2:D" into the tab name and the cell reference.
func splitRange(r string) (tab, ref string) {
	if i := strings.IndexByte(r, '!'); i >= 0 {
		return r[:i], r[i+1:]
	}
	return r, ""
}

func (s *Store) Read(_ context.Context, _ sheets.Credential, _ string, readRange string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ref := splitRange(readRange)
	grid, ok := s.tabs[tab]
	if !ok {
		return nil, &sheets.StoreError{Op: "read", Range: readRange, Err: fmt.Errorf("unknown tab %q", tab)}
	}

	var rows [][]string
	switch {
	case ref == "A1":
		if len(grid) > 0 {
			rows = grid[:1]
		}
	case strings.HasPrefix(ref, "A2"):
		if len(grid) > 1 {
			rows = grid[1:]
		}
	default:
		rows = grid
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (s *Store) Append(_ context.Context, _ sheets.Credential, _ string, writeRange string, rows [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, _ := splitRange(writeRange)
	grid, ok := s.tabs[tab]
	if !ok {
		return &sheets.StoreError{Op: "append", Range: writeRange, Err: fmt.Errorf("unknown tab %q", tab)}
	}
	for _, row := range rows {
		grid = append(grid, stringify(row))
	}
	s.tabs[tab] = grid
	s.mutations++
	return nil
}

func (s *Store) Update(_ context.Context, _ sheets.Credential, _ string, writeRange string, rows [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ref := splitRange(writeRange)
	grid, ok := s.tabs[tab]
	if !ok {
		return &sheets.StoreError{Op: "update", Range: writeRange, Err: fmt.Errorf("unknown tab %q", tab)}
	}
	// Header provisioning is the only update this design performs.
	if ref != "A1" || len(rows) != 1 {
		return &sheets.StoreError{Op: "update", Range: writeRange, Err: fmt.Errorf("unsupported update range")}
	}
	if len(grid) == 0 {
		grid = append(grid, nil)
	}
	grid[0] = stringify(rows[0])
	s.tabs[tab] = grid
	s.mutations++
	return nil
}

func (s *Store) Clear(_ context.Context, _ sheets.Credential, _ string, clearRange string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ref := splitRange(clearRange)
	grid, ok := s.tabs[tab]
	if !ok {
		return &sheets.StoreError{Op: "clear", Range: clearRange, Err: fmt.Errorf("unknown tab %q", tab)}
	}
	if strings.HasPrefix(ref, "A2") && len(grid) > 0 {
		s.tabs[tab] = grid[:1]
	} else {
		s.tabs[tab] = nil
	}
	s.mutations++
	return nil
}

func (s *Store) EnsureSchema(_ context.Context, _ sheets.Credential, _ string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created []string
	for _, tab := range sheets.RequiredTabs() {
		if _, ok := s.tabs[tab]; ok {
			continue
		}
		s.tabs[tab] = nil
		created = append(created, tab)
		s.mutations++
	}
	for _, tab := range sheets.RequiredTabs() {
		grid := s.tabs[tab]
		if len(grid) > 0 && len(grid[0]) > 0 {
			continue
		}
		header := append([]string(nil), sheets.HeaderRow(tab)...)
		if len(grid) == 0 {
			grid = append(grid, header)
		} else {
			grid[0] = header
		}
		s.tabs[tab] = grid
		s.mutations++
	}
	return created, nil
}

func stringify(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
