// Package jwtx issues and verifies the compact signed bearer tokens used by
// the authentication boundary. Tokens are HS256-signed with a single
// server-held secret; verification is stateless, so there is no server-side
// revocation list.
package jwtx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken reports a token that failed verification for any reason:
// malformed, expired, wrong algorithm, or bad signature. Callers treat every
// variant uniformly as "unauthenticated".
var ErrInvalidToken = errors.New("jwtx: invalid token")

// Verifier checks a compact token string and returns its claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Signer issues and verifies HS256 tokens with a shared secret.
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration // defaults to DefaultTokenTTL when zero
}

// Issue serializes the identity plus an expiry window and signs it. A
// negative TTL issues an already-expired token; only the zero value falls
// back to the default.
func (s *Signer) Issue(id Identity) (string, error) {
	ttl := s.TTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:    id.Email,
		Role:     id.Role,
		MasjidID: id.MasjidID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the embedded claims.
// All failures collapse into ErrInvalidToken; nothing panics past this
// boundary.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearer locates a bearer token in the Authorization header.
// Returns "" when the header is absent or not a bearer credential.
func ExtractBearer(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return ""
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
