// Package services implements the resource operations over the tabular store.
// Every service is stateless: the caller's credential and the target
// spreadsheet are parameters on each call, never fields.
package services

import (
	"context"

	"github.com/google/uuid"

	"combine/internal/core"
	"combine/internal/log"
	"combine/internal/sheets"
)

type Users struct {
	store  sheets.Store
	logger *log.Logger
}

func NewUsers(store sheets.Store, logger *log.Logger) *Users {
	return &Users{store: store, logger: logger.WithComponent(log.ComponentUsers)}
}

type CreateUserInput struct {
	UserName string
	Role     string
	Email    string
}

func (s *Users) List(ctx context.Context, cred sheets.Credential, spreadsheetID string) ([]core.User, error) {
	rows, err := s.store.Read(ctx, cred, spreadsheetID, sheets.UsersData)
	if err != nil {
		return nil, err
	}
	users := make([]core.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, core.User{
			UserID:   sheets.Cell(row, 0),
			UserName: sheets.Cell(row, 1),
			Role:     sheets.Cell(row, 2),
			Email:    sheets.Cell(row, 3),
		})
	}
	return users, nil
}

func (s *Users) Create(ctx context.Context, cred sheets.Credential, spreadsheetID string, in CreateUserInput) (core.User, error) {
	if err := core.RequireFields("userName", in.UserName); err != nil {
		return core.User{}, err
	}
	user := core.User{
		UserID:   uuid.NewString(),
		UserName: in.UserName,
		Role:     in.Role,
		Email:    in.Email,
	}
	if user.Role == "" {
		user.Role = core.DefaultRole
	}
	row := [][]any{{user.UserID, user.UserName, user.Role, user.Email}}
	if err := s.store.Append(ctx, cred, spreadsheetID, sheets.UsersAppend, row); err != nil {
		return core.User{}, err
	}
	s.logger.InfoContext(ctx, "User created", log.FieldUserID, user.UserID)
	return user, nil
}
