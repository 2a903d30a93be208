package http

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"combine/internal/core"
	"combine/internal/log"
	"combine/internal/services"
)

// handleLedgerExport streams the (optionally filtered) ledger as CSV with
// user and category ids joined to their display names. Unresolved references
// fall back to the raw id so no row is dropped from an export.
func (s *Server) handleLedgerExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	spreadsheetID, err := spreadsheetParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	filter := services.LedgerFilter{
		UserID: strings.TrimSpace(r.URL.Query().Get("userId")),
		Month:  strings.TrimSpace(r.URL.Query().Get("month")),
	}
	cred := session(r).Credential

	ctx, cancel := s.storeContext(r)
	defer cancel()

	var (
		transactions []core.Transaction
		users        []core.User
		categories   []core.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		transactions, err = s.ledger.List(gctx, cred, spreadsheetID, filter)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.List(gctx, cred, spreadsheetID)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.categories.List(gctx, cred, spreadsheetID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.respondError(w, r, err)
		return
	}

	userNames := make(map[string]string, len(users))
	for _, u := range users {
		userNames[u.UserID] = u.UserName
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.CategoryID] = c.CategoryName
	}
	displayName := func(names map[string]string, id string) string {
		if name, ok := names[id]; ok && name != "" {
			return name
		}
		return id
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Date", "User", "Category", "Amount", "Description"})
	for _, tx := range transactions {
		_ = cw.Write([]string{
			tx.Date,
			displayName(userNames, tx.UserID),
			displayName(categoryNames, tx.CategoryID),
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			tx.Description,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.logger.ErrorContext(r.Context(), "CSV export write failed", log.FieldError, err.Error())
	}
}
