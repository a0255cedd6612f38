// Package user contains the implementation of interacting with the MongoDB users collection.
// The UserManager struct is responsible for interacting with the users collection. It is CRUD for the user collection.
// The User struct represents a single user record. Interaction is primarily by ID, as the ID will (almost always) be unique.
// BSON is used to interact with the database.
package user
