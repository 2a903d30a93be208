package http

import (
	"net/http"
	"strings"

	"combine/internal/core"
	"combine/internal/middleware/auth"
	"combine/internal/services"
)

// session returns the credential placed by the auth gate. The gate runs on
// every resource route, so a missing session is a wiring bug, not a request
// error; the zero credential will simply fail at the store.
func session(r *http.Request) auth.Session {
	s, _ := auth.FromContext(r.Context())
	return s
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		spreadsheetID, err := spreadsheetParam(r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		users, err := s.users.List(ctx, session(r).Credential, spreadsheetID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"users": users})

	case http.MethodPost:
		var req struct {
			SpreadsheetID string `json:"spreadsheetId"`
			UserName      string `json:"userName"`
			Role          string `json:"role"`
			Email         string `json:"email"`
		}
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "Invalid JSON body")
			return
		}
		if err := core.RequireFields("spreadsheetId", req.SpreadsheetID); err != nil {
			s.respondError(w, r, err)
			return
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		user, err := s.users.Create(ctx, session(r).Credential, req.SpreadsheetID, services.CreateUserInput{
			UserName: req.UserName,
			Role:     req.Role,
			Email:    req.Email,
		})
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		spreadsheetID, err := spreadsheetParam(r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		accounts, err := s.accounts.List(ctx, session(r).Credential, spreadsheetID, strings.TrimSpace(r.URL.Query().Get("userId")))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"accounts": accounts})

	case http.MethodPost:
		var req struct {
			SpreadsheetID string  `json:"spreadsheetId"`
			UserID        string  `json:"userId"`
			BankName      string  `json:"bankName"`
			AccountAlias  string  `json:"accountAlias"`
			Balance       float64 `json:"balance"`
		}
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "Invalid JSON body")
			return
		}
		if err := core.RequireFields("spreadsheetId", req.SpreadsheetID); err != nil {
			s.respondError(w, r, err)
			return
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		account, err := s.accounts.Create(ctx, session(r).Credential, req.SpreadsheetID, services.CreateAccountInput{
			UserID:       req.UserID,
			BankName:     req.BankName,
			AccountAlias: req.AccountAlias,
			Balance:      req.Balance,
		})
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "account": account})

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		spreadsheetID, err := spreadsheetParam(r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		categories, err := s.categories.List(ctx, session(r).Credential, spreadsheetID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"categories": categories})

	case http.MethodPost:
		var req struct {
			SpreadsheetID string `json:"spreadsheetId"`
			CategoryName  string `json:"categoryName"`
			Type          string `json:"type"`
		}
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "Invalid JSON body")
			return
		}
		if err := core.RequireFields("spreadsheetId", req.SpreadsheetID); err != nil {
			s.respondError(w, r, err)
			return
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		category, err := s.categories.Create(ctx, session(r).Credential, req.SpreadsheetID, services.CreateCategoryInput{
			CategoryName: req.CategoryName,
			Type:         req.Type,
		})
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "category": category})

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleAllocation(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		spreadsheetID, err := spreadsheetParam(r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		allocations, err := s.allocations.List(ctx, session(r).Credential, spreadsheetID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"allocations": allocations})

	case http.MethodPost:
		var req struct {
			SpreadsheetID string            `json:"spreadsheetId"`
			Allocations   []core.Allocation `json:"allocations"`
		}
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "Invalid JSON body")
			return
		}
		// A nil slice means the field was absent or null; an explicit empty
		// array is a legitimate full replace. Only the former is a validation
		// failure, and it must be caught before the destructive clear.
		var missing []string
		if strings.TrimSpace(req.SpreadsheetID) == "" {
			missing = append(missing, "spreadsheetId")
		}
		if req.Allocations == nil {
			missing = append(missing, "allocations")
		}
		if len(missing) > 0 {
			s.respondError(w, r, &core.MissingFieldsError{Fields: missing})
			return
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		allocations, err := s.allocations.ReplaceAll(ctx, session(r).Credential, req.SpreadsheetID, req.Allocations)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "allocations": allocations})

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		spreadsheetID, err := spreadsheetParam(r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		filter := services.LedgerFilter{
			UserID: strings.TrimSpace(r.URL.Query().Get("userId")),
			Month:  strings.TrimSpace(r.URL.Query().Get("month")),
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		transactions, err := s.ledger.List(ctx, session(r).Credential, spreadsheetID, filter)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"transactions": transactions})

	case http.MethodPost:
		var req struct {
			SpreadsheetID string   `json:"spreadsheetId"`
			Date          string   `json:"date"`
			UserID        string   `json:"userId"`
			AccountID     string   `json:"accountId"`
			CategoryID    string   `json:"categoryId"`
			Amount        *float64 `json:"amount"`
			Description   string   `json:"description"`
		}
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "Invalid JSON body")
			return
		}
		if err := core.RequireFields("spreadsheetId", req.SpreadsheetID); err != nil {
			s.respondError(w, r, err)
			return
		}
		ctx, cancel := s.storeContext(r)
		defer cancel()
		transaction, err := s.ledger.Create(ctx, session(r).Credential, req.SpreadsheetID, services.CreateTransactionInput{
			Date:        req.Date,
			UserID:      req.UserID,
			AccountID:   req.AccountID,
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Description: req.Description,
		})
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "transaction": transaction})

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleSheetsInit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		SpreadsheetID string `json:"spreadsheetId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}
	if err := core.RequireFields("spreadsheetId", req.SpreadsheetID); err != nil {
		s.respondError(w, r, err)
		return
	}
	ctx, cancel := s.storeContext(r)
	defer cancel()
	created, err := s.store.EnsureSchema(ctx, session(r).Credential, req.SpreadsheetID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if created == nil {
		created = []string{}
	}
	message := "Spreadsheet already initialized"
	if len(created) > 0 {
		message = "Spreadsheet initialized"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     message,
		"createdTabs": created,
	})
}
