package services

import (
	"context"

	"github.com/tedlabs/users-api/internal/log"
	"github.com/tedlabs/users-api/internal/models/account"
	"github.com/tedlabs/users-api/internal/models/user"
)

// UserStore captures the persistence operations the client service needs for
// user records. Satisfied by user.UserManager; tests substitute fakes.
type UserStore interface {
	ListUsers(ctx context.Context, name, job string) ([]user.User, error)
	GetUserByID(ctx context.Context, id string) (*user.User, error)
	AddUser(ctx context.Context, candidate *user.User) (*user.User, error)
	DeleteUserByID(ctx context.Context, id string) (*user.User, error)
}

// AccountStore captures the credential operations the client service needs.
// Satisfied by account.AccountManager.
type AccountStore interface {
	GetAccountByUsername(ctx context.Context, username string) (*account.Account, error)
	GenerateAccount(ctx context.Context, username, password string) (*account.Account, error)
}

type ClientService struct {
	users    UserStore
	accounts AccountStore
	events   *EventService
	logger   *log.Logger
}

func NewClientService(users UserStore, accounts AccountStore, events *EventService, logger *log.Logger) *ClientService {
	return &ClientService{
		users:    users,
		accounts: accounts,
		events:   events,
		logger:   logger,
	}
}

// GetUsers lists users filtered by name and/or job; empty strings mean the
// filter was not provided.
func (s *ClientService) GetUsers(ctx context.Context, name, job string) ([]user.User, error) {
	return s.users.ListUsers(ctx, name, job)
}

// GetUserByID looks a user up by its hex ID.
func (s *ClientService) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// AddUser inserts a new user and publishes a created event on success.
func (s *ClientService) AddUser(ctx context.Context, candidate *user.User) (*user.User, error) {
	saved, err := s.users.AddUser(ctx, candidate)
	if err != nil {
		return nil, err
	}
	s.events.PublishUserEvent(ctx, "user.created", saved)
	return saved, nil
}

// DeleteUser removes a user by ID, returning the removed record, and
// publishes a deleted event on success.
func (s *ClientService) DeleteUser(ctx context.Context, id string) (*user.User, error) {
	removed, err := s.users.DeleteUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.PublishUserEvent(ctx, "user.deleted", removed)
	return removed, nil
}

// LoginUser checks the given credentials and returns the account's username,
// which becomes the token claim. Returns an error when the username is
// unknown or the password does not match; callers must not tell the two
// apart in their responses.
func (s *ClientService) LoginUser(ctx context.Context, username, password string) (string, error) {
	acct, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if err := acct.CheckPassword(password); err != nil {
		return "", err
	}
	return acct.Username, nil
}

// RegisterUser creates a new credential record for the given username.
func (s *ClientService) RegisterUser(ctx context.Context, username, password string) error {
	_, err := s.accounts.GenerateAccount(ctx, username, password)
	return err
}
