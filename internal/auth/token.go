// Package auth holds the caller identity type and its JWT codec.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued identity token stays valid.
const TokenTTL = 14 * 24 * time.Hour

// Identity is the authenticated caller derived from an account at login. It
// is carried in a signed token and never persisted server-side.
type Identity struct {
	ID       uint
	Username string
}

// GenerateToken signs an identity token for the given account.
func GenerateToken(secret string, id uint, username string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(id), 10),
		"username": username,
		"iss":      "quill-api",
		"exp":      now.Add(TokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken decodes and verifies an identity token. Expired or otherwise
// invalid tokens fail; the caller treats failure as "no identity".
func ParseToken(secret, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("token missing subject")
	}
	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	username, _ := claims["username"].(string)

	return &Identity{ID: uint(id), Username: username}, nil
}
