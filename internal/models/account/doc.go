// Package account holds login credentials for the API. The AccountManager interacts with the MongoDB accounts
// collection; the Account struct carries the username and the bcrypt digest of the password.
package account
