package core

import (
	"fmt"
	"strings"
)

// Category types. Every transaction is classified at read time by joining
// its CategoryID against one of these; the sign is never stored on the row.
const (
	CategoryIncome  = "Income"
	CategoryExpense = "Expense"
)

// DefaultRole is assigned to users created without an explicit role.
const DefaultRole = "User"

type (
	User struct {
		UserID   string `json:"userId"`
		UserName string `json:"userName"`
		Role     string `json:"role"`
		Email    string `json:"email"`
	}

	Account struct {
		AccountID    string  `json:"accountId"`
		UserID       string  `json:"userId"`
		BankName     string  `json:"bankName"`
		AccountAlias string  `json:"accountAlias"`
		Balance      float64 `json:"balance"`
	}

	Category struct {
		CategoryID   string `json:"categoryId"`
		CategoryName string `json:"categoryName"`
		Type         string `json:"type"`
	}

	// Allocation is a named bucket of monthly surplus (savings, investment, ...).
	// The whole set is replaced on every write; AllocType acts as the key.
	Allocation struct {
		AllocType     string  `json:"allocType"`
		TargetPercent float64 `json:"targetPercent"`
		Description   string  `json:"description"`
	}

	Transaction struct {
		TxID        string  `json:"txId"`
		Date        string  `json:"date"` // YYYY-MM-DD
		UserID      string  `json:"userId"`
		AccountID   string  `json:"accountId"`
		CategoryID  string  `json:"categoryId"`
		Amount      float64 `json:"amount"` // always stored positive
		Description string  `json:"description"`
		Timestamp   string  `json:"timestamp"` // RFC3339, set by the server
	}
)

// MissingFieldsError reports the required input fields absent from a create
// request. The field names match the wire names so the caller can surface
// them directly.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// RequireFields returns a MissingFieldsError naming every field in pairs
// (name, value) whose value is empty, or nil when all are present.
func RequireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
