package authenticator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// payloadClaims carries a typed payload next to the registered claims.
type payloadClaims[T any] struct {
	jwt.RegisteredClaims
	Payload T `json:"payload"`
}

// jwtTokenEngine signs short-lived HS256 tokens, e.g. the oauth state of the
// install flow.
type jwtTokenEngine[T any] struct {
	secret     []byte
	expiration time.Duration
}

func NewTokenEngine[T any](secret string, expiration time.Duration) *jwtTokenEngine[T] {
	return &jwtTokenEngine[T]{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

func (e *jwtTokenEngine[T]) Generate(sub string, payload T) (string, error) {
	now := time.Now()
	claims := payloadClaims[T]{
		Payload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.expiration)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(e.secret)
}

func (e *jwtTokenEngine[T]) Verify(token string) (T, error) {
	var claims payloadClaims[T]
	if _, err := jwt.ParseWithClaims(token, &claims, hmacKey(e.secret)); err != nil {
		var zero T
		return zero, err
	}

	if claims.ExpiresAt == nil {
		var zero T
		return zero, errors.New("token has no expiration")
	}

	return claims.Payload, nil
}

func hmacKey(secret []byte) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}
}
