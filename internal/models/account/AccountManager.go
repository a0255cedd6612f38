// This file contains the AccountManager implementation, which is responsible for interacting with the MongoDB
// accounts collection. Accounts are looked up by username, which is kept unique at signup time.

package account

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tedlabs/users-api/internal/database"
	"github.com/tedlabs/users-api/internal/log"
)

var (
	// ErrAccountNotFound is returned when no account exists for a username.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameTaken is returned when a username is already taken.
	ErrUsernameTaken = errors.New("username is already taken")
)

type AccountManager struct {
	provider *database.Provider
	logger   *log.Logger
}

// NewAccountManager creates a new instance of AccountManager.
func NewAccountManager(provider *database.Provider, logger *log.Logger) *AccountManager {
	return &AccountManager{
		provider: provider,
		logger:   logger,
	}
}

func (am *AccountManager) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := am.provider.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection("accounts"), nil
}

// SetAccount updates or inserts an account document in the database.
func (am *AccountManager) SetAccount(ctx context.Context, acct *Account) error {
	coll, err := am.collection(ctx)
	if err != nil {
		return err
	}
	_, err = coll.UpdateOne(
		ctx,
		bson.M{"_id": acct.ID},
		bson.M{"$set": acct},
		options.Update().SetUpsert(true),
	)
	return err
}

// GetAccountByUsername retrieves an account from the database based on the given username.
func (am *AccountManager) GetAccountByUsername(ctx context.Context, username string) (*Account, error) {
	coll, err := am.collection(ctx)
	if err != nil {
		return nil, err
	}

	var acct Account
	err = coll.FindOne(ctx, bson.M{"username": username}).Decode(&acct)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &acct, nil
}

// GenerateAccount creates a new account with the given username and password
// and inserts it into the database. Returns ErrUsernameTaken when the
// username already exists.
func (am *AccountManager) GenerateAccount(ctx context.Context, username, password string) (*Account, error) {
	_, err := am.GetAccountByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			return nil, err
		}
	} else {
		return nil, ErrUsernameTaken
	}

	acct := &Account{
		ID:       primitive.NewObjectID(),
		Username: username,
	}
	if err := acct.SetPassword(password); err != nil {
		return nil, err
	}
	if err := am.SetAccount(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}
