package user

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// User represents a user record in the store. The ID is assigned by MongoDB
// on insertion and immutable afterwards.
type User struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name string             `bson:"name" json:"name" validate:"required"`
	Job  string             `bson:"job" json:"job" validate:"required,min=2"`
}

// Validate enforces the store schema constraints: name required, job
// required with a minimum length of 2.
func (u *User) Validate() error {
	return validate.Struct(u)
}
