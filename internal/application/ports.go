package application

import "time"

// PasswordHasher is the one-way credential digest port. The digest is opaque
// to everything but the implementation.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenIssuer signs an access token bound to an identity. Signing fails only
// on broken configuration (missing key), never per request.
type TokenIssuer interface {
	Sign(userID, email string) (token string, expiresAt time.Time, err error)
}
