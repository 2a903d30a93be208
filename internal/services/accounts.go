package services

import (
	"context"

	"github.com/google/uuid"

	"combine/internal/core"
	"combine/internal/log"
	"combine/internal/sheets"
)

type Accounts struct {
	store  sheets.Store
	logger *log.Logger
}

func NewAccounts(store sheets.Store, logger *log.Logger) *Accounts {
	return &Accounts{store: store, logger: logger.WithComponent(log.ComponentAccounts)}
}

type CreateAccountInput struct {
	UserID       string
	BankName     string
	AccountAlias string
	Balance      float64
}

// List returns every account, or only those owned by userID when it is
// non-empty. Filtering happens here, never in the store.
func (s *Accounts) List(ctx context.Context, cred sheets.Credential, spreadsheetID, userID string) ([]core.Account, error) {
	rows, err := s.store.Read(ctx, cred, spreadsheetID, sheets.AccountsData)
	if err != nil {
		return nil, err
	}
	accounts := make([]core.Account, 0, len(rows))
	for _, row := range rows {
		account := core.Account{
			AccountID:    sheets.Cell(row, 0),
			UserID:       sheets.Cell(row, 1),
			BankName:     sheets.Cell(row, 2),
			AccountAlias: sheets.Cell(row, 3),
			Balance:      sheets.ParseAmount(sheets.Cell(row, 4)),
		}
		if userID != "" && account.UserID != userID {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *Accounts) Create(ctx context.Context, cred sheets.Credential, spreadsheetID string, in CreateAccountInput) (core.Account, error) {
	if err := core.RequireFields(
		"userId", in.UserID,
		"bankName", in.BankName,
		"accountAlias", in.AccountAlias,
	); err != nil {
		return core.Account{}, err
	}
	account := core.Account{
		AccountID:    uuid.NewString(),
		UserID:       in.UserID,
		BankName:     in.BankName,
		AccountAlias: in.AccountAlias,
		Balance:      in.Balance,
	}
	row := [][]any{{account.AccountID, account.UserID, account.BankName, account.AccountAlias, account.Balance}}
	if err := s.store.Append(ctx, cred, spreadsheetID, sheets.AccountsAppend, row); err != nil {
		return core.Account{}, err
	}
	s.logger.InfoContext(ctx, "Account created", log.FieldUserID, account.UserID, "account_id", account.AccountID)
	return account, nil
}
