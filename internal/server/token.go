package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errNoToken       = errors.New("no session token")
	errTokenMismatch = errors.New("token issued for another session")
)

type SessionClaims struct {
	SessionId string `json:"session_id"`
	jwt.RegisteredClaims
}

// tokens signs and checks the HS256 tokens that grant access to a session.
type tokens struct {
	secret   []byte
	lifetime time.Duration
	method   jwt.SigningMethod
}

func newTokens(secret []byte, lifetime time.Duration) *tokens {
	return &tokens{
		secret:   secret,
		lifetime: lifetime,
		method:   jwt.SigningMethodHS256,
	}
}

func (t *tokens) sign(sessionId string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		sessionId,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(t.method, claims).SignedString(t.secret)
}

func (t *tokens) parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(*jwt.Token) (any, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{t.method.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}

// check verifies that r carries a valid token for sessionId, either as a
// bearer token or, for browsers opening a WebSocket, as the token query
// parameter.
func (t *tokens) check(r *http.Request, sessionId string) error {
	tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		tokenString = r.URL.Query().Get("token")
	}
	if tokenString == "" {
		return errNoToken
	}
	claims, err := t.parse(tokenString)
	if err != nil {
		return err
	}
	if claims.SessionId != sessionId {
		return errTokenMismatch
	}
	return nil
}
