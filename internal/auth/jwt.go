// Package auth issues and verifies the bearer tokens used to gate protected
// routes. Tokens are self-contained HS256 JWTs carrying the username claim
// and a fixed expiry; validity is purely computed from the token contents
// plus the current time, there is no revocation list.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = 1800 * time.Second

// ErrInvalidToken is returned for any verification failure: bad signature,
// malformed token, or elapsed expiry. Callers get no distinction.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims embeds the registered claims plus the username the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// IssueToken signs a token for the given username, valid for lifetime from now.
func IssueToken(username string, secret []byte, lifetime time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		Username: username,
	})
	return token.SignedString(secret)
}

// VerifyToken checks the signature and expiry of a token and returns the
// username claim on success.
func VerifyToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}
