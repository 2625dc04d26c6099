// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AdminClaims are the claims the homepage backend puts in admin tokens.
type AdminClaims struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ParseAdminToken decodes the claims of token without checking the
// signature. The backend owns the signing key; the console only needs to
// know who the token belongs to and when it expires.
func ParseAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenExpiry returns the exp claim of a JWT. Opaque tokens and tokens
// without exp report false.
func TokenExpiry(tokenString string) (time.Time, bool) {
	claims, err := ParseAdminToken(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// TokenSubject returns the username claim, falling back to sub.
func TokenSubject(tokenString string) (string, error) {
	claims, err := ParseAdminToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Username != "" {
		return claims.Username, nil
	}
	if claims.Subject != "" {
		return claims.Subject, nil
	}
	return "", errors.New("token has no subject")
}
