// Package apikey issues and checks the static keys clients send in X-API-Key.
// A key is an HS256 JWT whose user_id claim names the owner of the synced data.
package apikey

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "focuskeeper"

// ErrInvalidKey is returned for keys that fail parsing or signature checks
var ErrInvalidKey = errors.New("invalid api key")

// Claims представляет claims ключа доступа
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Keys signs and validates API keys with one shared secret
type Keys struct {
	now    func() time.Time
	secret []byte
}

// New creates Keys for secret
func New(secret string) *Keys {
	return &Keys{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue creates a key for userID. A zero ttl issues a key that never expires.
func (k *Keys) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}

	now := k.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   issuer,
			Subject:  userID,
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	key, err := token.SignedString(k.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign api key: %w", err)
	}
	return key, nil
}

// Validate parses key and returns its claims
func (k *Keys) Validate(key string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(key, &Claims{}, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return k.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(k.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidKey
	}
	return claims, nil
}
