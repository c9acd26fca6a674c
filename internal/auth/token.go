// Package auth verifies the HMAC session tokens issued by the identity
// provider. This service only consumes tokens, it never mints them.
package auth

import (
	"fmt"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"

	"github.com/golang-jwt/jwt/v5"
)

// Subject extracts the user id from a signed token. The token must be
// HMAC-signed with the shared secret and carry an "id" claim.
func Subject(secret, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrUnauthorized, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: malformed claims", entities.ErrUnauthorized)
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: missing id claim", entities.ErrUnauthorized)
	}
	return id, nil
}
