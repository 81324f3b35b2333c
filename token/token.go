// Package token issues and parses the signed session credential. A
// credential is valid iff its signature and expiry check out; there is
// no server-side session table, so a leaked token stays valid until it
// expires regardless of logout.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is how long an issued credential stays valid.
const TTL = 7 * 24 * time.Hour

var ErrInvalid = errors.New("invalid token")

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Issue signs a credential for the user, expiring TTL from now.
func Issue(userID string, secret string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse validates signature and expiry and returns the embedded user
// id. The caller still has to resolve the id against the user store.
func Parse(tokenString string, secret string) (string, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !t.Valid {
		return "", ErrInvalid
	}
	return claims.UserID, nil
}
