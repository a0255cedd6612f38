// This file contains the UserManager implementation, which is responsible for interacting with the MongoDB users collection.
// The UserManager resolves the collection through the connection provider on every operation, so a test can swap the
// backing client at any time without touching the manager. Store-level faults are converted to domain errors at this
// boundary: the web layer only ever sees ErrUserNotFound, ErrInvalidUser, or a connectivity error.

package user

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tedlabs/users-api/internal/database"
	"github.com/tedlabs/users-api/internal/log"
)

var (
	// ErrUserNotFound is returned when a requested user is not found in the database.
	// Malformed IDs are reported the same way, matching the API contract of 404 for both.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidUser is returned when a candidate user violates the schema constraints.
	ErrInvalidUser = errors.New("invalid user")
)

type UserManager struct {
	provider *database.Provider
	logger   *log.Logger
}

// NewUserManager creates a new instance of UserManager.
func NewUserManager(provider *database.Provider, logger *log.Logger) *UserManager {
	return &UserManager{
		provider: provider,
		logger:   logger,
	}
}

func (um *UserManager) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := um.provider.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection("users"), nil
}

// ListUsers returns the users matching the given filters. An empty filter
// value means "not provided". The four presence combinations each issue
// exactly one query with exactly the provided fields.
func (um *UserManager) ListUsers(ctx context.Context, name, job string) ([]User, error) {
	coll, err := um.collection(ctx)
	if err != nil {
		return nil, err
	}

	var filter bson.M
	switch {
	case name == "" && job == "":
		filter = bson.M{}
	case name != "" && job == "":
		filter = bson.M{"name": name}
	case name == "" && job != "":
		filter = bson.M{"job": job}
	default:
		filter = bson.M{"name": name, "job": job}
	}

	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID retrieves a user by its hex ID. A malformed ID, a missing
// record, and a store fault all report ErrUserNotFound; the route contract
// for lookups is 404 for anything that did not produce a record.
func (um *UserManager) GetUserByID(ctx context.Context, id string) (*User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	coll, err := um.collection(ctx)
	if err != nil {
		return nil, err
	}

	var u User
	err = coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		um.logger.Errorf("User lookup failed: %v", err)
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// AddUser validates the candidate against the schema constraints and inserts
// it. Returns the persisted user with its assigned ID, or ErrInvalidUser when
// validation fails. Nothing is written on failure.
func (um *UserManager) AddUser(ctx context.Context, candidate *User) (*User, error) {
	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}

	coll, err := um.collection(ctx)
	if err != nil {
		return nil, err
	}

	result, err := coll.InsertOne(ctx, candidate)
	if err != nil {
		return nil, err
	}

	saved := *candidate
	saved.ID = result.InsertedID.(primitive.ObjectID)
	return &saved, nil
}

// DeleteUserByID removes a user by its hex ID and returns the removed record.
// Reports ErrUserNotFound for malformed IDs and missing records alike.
func (um *UserManager) DeleteUserByID(ctx context.Context, id string) (*User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	coll, err := um.collection(ctx)
	if err != nil {
		return nil, err
	}

	var removed User
	err = coll.FindOneAndDelete(ctx, bson.M{"_id": userID}).Decode(&removed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		um.logger.Errorf("User delete failed: %v", err)
		return nil, ErrUserNotFound
	}
	return &removed, nil
}
