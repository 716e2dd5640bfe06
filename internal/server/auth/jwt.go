// Package auth mints and verifies the JWTs used by FocusSync: short-lived
// access tokens for the hot path and long-lived refresh tokens whose validity
// is additionally gated by the server-side token store.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/focussync/internal/common"
)

// Token types carried in the custom TokenType claim. Verification always
// checks the type, so an access token can never be replayed as a refresh
// token or vice versa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims includes the registered claims plus the user id and token type.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"uid"`
	TokenType string `json:"typ"`
}

// GenerateToken signs a token of the given type for userID with HS256.
// Every token carries a unique jti so two tokens minted for the same user
// in the same second still differ (rotation relies on this).
func GenerateToken(userID, tokenType string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:    userID,
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies signature, expiry, and token type, returning
// the embedded user id. Every failure mode maps to common.ErrInvalidToken so
// callers cannot distinguish why a credential was rejected.
func GetUserIDFromToken(tokenString, wantType string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.TokenType != wantType || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
