package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"combine/internal/core"
	"combine/internal/log"
	"combine/internal/sheets"
)

type Ledger struct {
	store  sheets.Store
	logger *log.Logger
	now    func() time.Time
}

func NewLedger(store sheets.Store, logger *log.Logger) *Ledger {
	return &Ledger{store: store, logger: logger.WithComponent(log.ComponentLedger), now: time.Now}
}

// LedgerFilter narrows List results. UserID matches exactly; Month is a
// literal "YYYY-MM" prefix against the transaction date, so "2024-3" never
// matches a zero-padded date.
type LedgerFilter struct {
	UserID string
	Month  string
}

// CreateTransactionInput carries Amount as a pointer so a request that omits
// the field is distinguishable from an explicit zero.
type CreateTransactionInput struct {
	Date        string
	UserID      string
	AccountID   string
	CategoryID  string
	Amount      *float64
	Description string
}

func (s *Ledger) List(ctx context.Context, cred sheets.Credential, spreadsheetID string, f LedgerFilter) ([]core.Transaction, error) {
	rows, err := s.store.Read(ctx, cred, spreadsheetID, sheets.LedgerData)
	if err != nil {
		return nil, err
	}
	transactions := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		tx := core.Transaction{
			TxID:        sheets.Cell(row, 0),
			Date:        sheets.Cell(row, 1),
			UserID:      sheets.Cell(row, 2),
			AccountID:   sheets.Cell(row, 3),
			CategoryID:  sheets.Cell(row, 4),
			Amount:      sheets.ParseAmount(sheets.Cell(row, 5)),
			Description: sheets.Cell(row, 6),
			Timestamp:   sheets.Cell(row, 7),
		}
		if f.UserID != "" && tx.UserID != f.UserID {
			continue
		}
		if f.Month != "" && !strings.HasPrefix(tx.Date, f.Month) {
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (s *Ledger) Create(ctx context.Context, cred sheets.Credential, spreadsheetID string, in CreateTransactionInput) (core.Transaction, error) {
	if err := s.validate(in); err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		TxID:        uuid.NewString(),
		Date:        in.Date,
		UserID:      in.UserID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Amount:      *in.Amount,
		Description: in.Description,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
	}
	row := [][]any{{tx.TxID, tx.Date, tx.UserID, tx.AccountID, tx.CategoryID, tx.Amount, tx.Description, tx.Timestamp}}
	if err := s.store.Append(ctx, cred, spreadsheetID, sheets.LedgerAppend, row); err != nil {
		return core.Transaction{}, err
	}
	s.logger.InfoContext(ctx, "Transaction recorded", log.FieldTxID, tx.TxID, log.FieldUserID, tx.UserID)
	return tx, nil
}

// validate folds the missing-amount case into the same MissingFieldsError the
// string fields produce, so the caller sees one complete field list.
func (s *Ledger) validate(in CreateTransactionInput) error {
	err := core.RequireFields(
		"date", in.Date,
		"userId", in.UserID,
		"accountId", in.AccountID,
		"categoryId", in.CategoryID,
	)
	if in.Amount == nil {
		var mf *core.MissingFieldsError
		if errors.As(err, &mf) {
			mf.Fields = append(mf.Fields, "amount")
			return mf
		}
		return &core.MissingFieldsError{Fields: []string{"amount"}}
	}
	return err
}
