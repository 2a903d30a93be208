package http

import (
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"combine/internal/core"
	"combine/internal/log"
	"combine/internal/services"
)

// handleDashboardSummary computes the dashboard figures server-side in one
// round trip: surplus, expense breakdown, per-user flows and the allocation
// split of the surplus. The four collections are fetched concurrently.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	spreadsheetID, err := spreadsheetParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	cred := session(r).Credential

	ctx, cancel := s.storeContext(r)
	defer cancel()

	var (
		transactions []core.Transaction
		categories   []core.Category
		users        []core.User
		allocations  []core.Allocation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		transactions, err = s.ledger.List(gctx, cred, spreadsheetID, services.LedgerFilter{Month: month})
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.categories.List(gctx, cred, spreadsheetID)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.List(gctx, cred, spreadsheetID)
		return err
	})
	g.Go(func() (err error) {
		allocations, err = s.allocations.List(gctx, cred, spreadsheetID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.respondError(w, r, err)
		return
	}

	surplus := core.Surplus(transactions, categories)
	s.logger.DebugContext(r.Context(), "Dashboard summary computed",
		log.FieldMonth, month, "transactions", len(transactions))
	respondJSON(w, http.StatusOK, map[string]any{
		"surplus":           surplus,
		"expenseByCategory": core.ExpenseByCategory(transactions, categories),
		"byUser":            core.IncomeExpenseByUser(transactions, categories, users),
		"allocationSplit":   core.SplitSurplus(surplus, allocations),
	})
}
