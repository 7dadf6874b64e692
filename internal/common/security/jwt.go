// Package security holds the token issuer/verifier and the password hasher.
package security

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenAuth issues and verifies HS256 bearer tokens. The signing secret is
// injected once at construction; nothing reads it from ambient state at
// call time.
type TokenAuth struct {
	ja       *jwtauth.JWTAuth
	lifetime time.Duration
}

// NewTokenAuth builds a TokenAuth from the signing secret and token lifetime.
// An empty secret is a configuration bug, not something to paper over.
func NewTokenAuth(secret []byte, lifetime time.Duration) (*TokenAuth, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty JWT signing secret")
	}
	if lifetime == 0 {
		return nil, errors.New("zero token lifetime")
	}
	return &TokenAuth{
		ja:       jwtauth.New("HS256", secret, nil),
		lifetime: lifetime,
	}, nil
}

// JWTAuth exposes the underlying verifier for the jwtauth router middleware.
func (t *TokenAuth) JWTAuth() *jwtauth.JWTAuth {
	return t.ja
}

// GenerateToken mints a signed token whose subject is the given user ID,
// expiring lifetime from now.
func (t *TokenAuth) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(t.lifetime).Unix(),
	}
	_, tokenString, err := t.ja.Encode(claims)
	return tokenString, err
}

// VerifyToken checks signature, shape and expiry, and returns the subject
// user ID the token was issued for.
func (t *TokenAuth) VerifyToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(t.ja, tokenString)
	if err != nil {
		return "", err
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", err
	}
	return GetUserIDFromClaims(claims)
}

// GetUserIDFromClaims extracts the subject from a decoded claim set; used by
// the auth middleware after jwtauth has verified the token.
func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}
