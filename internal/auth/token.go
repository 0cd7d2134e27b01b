package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the claims of an access token. The subject is the ID of the user.
type Claims struct {
	jwt.RegisteredClaims
}

// Owner returns the ID of the user the token was issued for.
func (c Claims) Owner() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// IssueToken returns a signed HS256 token for the user that expires after ttl.
func IssueToken(secret string, userID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expires, nil
}

// ParseToken verifies the token and returns its claims.
//
// Tokens signed with any other method than HS256, expired tokens
// and tokens without a valid subject are rejected.
func ParseToken(secret, token string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	if _, err := claims.Owner(); err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	return claims, nil
}
