package http

import (
	"net/http"
	"strings"
	"testing"
)

func seedDashboard(t *testing.T, s *Server) {
	t.Helper()
	requests := []struct{ path, body string }{
		{"/users", `{"spreadsheetId":"sheet1","userName":"Ada"}`},
		{"/categories", `{"spreadsheetId":"sheet1","categoryName":"Salary","type":"Income"}`},
		{"/categories", `{"spreadsheetId":"sheet1","categoryName":"Rent","type":"Expense"}`},
		{"/allocation", `{"spreadsheetId":"sheet1","allocations":[{"allocType":"Savings","targetPercent":50,"description":""},{"allocType":"Investment","targetPercent":50,"description":""}]}`},
	}
	for _, req := range requests {
		if rec := do(t, s, http.MethodPost, req.path, req.body); rec.Code != http.StatusOK {
			t.Fatalf("seed %s: %d %s", req.path, rec.Code, rec.Body.String())
		}
	}
}

func (s *Server) mustIDs(t *testing.T) (userID string, incomeID string, expenseID string) {
	t.Helper()
	rec := do(t, s, http.MethodGet, "/users?spreadsheetId=sheet1", "")
	userID = decode(t, rec)["users"].([]any)[0].(map[string]any)["userId"].(string)
	rec = do(t, s, http.MethodGet, "/categories?spreadsheetId=sheet1", "")
	for _, c := range decode(t, rec)["categories"].([]any) {
		cat := c.(map[string]any)
		if cat["type"] == "Income" {
			incomeID = cat["categoryId"].(string)
		} else {
			expenseID = cat["categoryId"].(string)
		}
	}
	return userID, incomeID, expenseID
}

func TestDashboardSummary(t *testing.T) {
	s := newTestServer()
	seedDashboard(t, s)
	userID, incomeID, expenseID := s.mustIDs(t)

	post := func(body string) {
		if rec := do(t, s, http.MethodPost, "/ledger", body); rec.Code != http.StatusOK {
			t.Fatalf("ledger seed: %d %s", rec.Code, rec.Body.String())
		}
	}
	post(`{"spreadsheetId":"sheet1","date":"2024-03-01","userId":"` + userID + `","accountId":"a1","categoryId":"` + incomeID + `","amount":100}`)
	post(`{"spreadsheetId":"sheet1","date":"2024-03-10","userId":"` + userID + `","accountId":"a1","categoryId":"` + expenseID + `","amount":40}`)
	post(`{"spreadsheetId":"sheet1","date":"2024-04-01","userId":"` + userID + `","accountId":"a1","categoryId":"` + expenseID + `","amount":999}`)

	rec := do(t, s, http.MethodGet, "/dashboard/summary?spreadsheetId=sheet1&month=2024-03", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)

	if surplus := body["surplus"].(float64); surplus != 60 {
		t.Fatalf("surplus %v", surplus)
	}

	byCategory := body["expenseByCategory"].([]any)
	if len(byCategory) != 1 {
		t.Fatalf("expenseByCategory %v", byCategory)
	}
	bucket := byCategory[0].(map[string]any)
	if bucket["name"] != "Rent" || bucket["value"].(float64) != 40 {
		t.Fatalf("bucket %v", bucket)
	}

	byUser := body["byUser"].([]any)
	if len(byUser) != 1 {
		t.Fatalf("byUser %v", byUser)
	}
	flow := byUser[0].(map[string]any)
	if flow["income"].(float64) != 100 || flow["expense"].(float64) != 40 {
		t.Fatalf("flow %v", flow)
	}

	split := body["allocationSplit"].([]any)
	if len(split) != 2 {
		t.Fatalf("allocationSplit %v", split)
	}
	for _, entry := range split {
		if amount := entry.(map[string]any)["amount"].(float64); amount != 30 {
			t.Fatalf("split amount %v", amount)
		}
	}
}

func TestLedgerExportCSV(t *testing.T) {
	s := newTestServer()
	seedDashboard(t, s)
	userID, incomeID, _ := s.mustIDs(t)

	body := `{"spreadsheetId":"sheet1","date":"2024-03-01","userId":"` + userID + `","accountId":"a1","categoryId":"` + incomeID + `","amount":1250.5,"description":"march salary"}`
	if rec := do(t, s, http.MethodPost, "/ledger", body); rec.Code != http.StatusOK {
		t.Fatalf("ledger seed: %d", rec.Code)
	}

	rec := do(t, s, http.MethodGet, "/ledger/export?spreadsheetId=sheet1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Date,User,Category,Amount,Description" {
		t.Fatalf("header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Ada") || !strings.Contains(lines[1], "Salary") || !strings.Contains(lines[1], "1250.5") {
		t.Fatalf("row %q", lines[1])
	}
}
