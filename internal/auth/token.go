package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every way a session token can fail verification:
// bad signature, malformed payload, wrong signing method, or past expiry.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the payload of a session token: who the user is and which grade
// they practice questions for.
type Claims struct {
	UserID int    `json:"user_id"`
	Grade  string `json:"grado"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and verifies signed, self-contained session tokens.
// Tokens are stateless; expiry is the only invalidation mechanism.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL reports the configured token lifetime, used for the cookie MaxAge.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue signs a token carrying the user identity and grade.
func (t *TokenIssuer) Issue(userID int, grade string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Grade:  grade,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token, returning its claims.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.UserID == 0 || claims.Grade == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
