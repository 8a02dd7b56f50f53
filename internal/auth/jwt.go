// Package auth provides JWT token issuing/verification, password hashing, and
// the bearer-token middleware guarding the admin API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. Admin POSTs /api/auth/login with username + password
// 2. Server checks the bcrypt hash and issues a signed JWT carrying
//    the user's ID and username
// 3. The client sends `Authorization: Bearer <token>` on admin API calls
// 4. Middleware verifies the signature and puts the claims in the request
//    context — no session table, no DB lookup on the hot path
//
// The signature is the whole story: a token is valid iff it verifies against
// the server secret. There is no server-side revocation; a token stays good
// until the client discards it or the secret rotates.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "portfolio-api"

// Sentinel errors for the two ways verification can fail. The middleware
// treats both as 403; callers that care (tests, logs) can tell them apart.
var (
	ErrTokenMalformed = errors.New("auth: token malformed")
	ErrTokenInvalid   = errors.New("auth: token invalid")
)

// Claims is the JWT payload. Subject (the standard "sub" claim) carries the
// internal user ID; Username rides along so handlers can log and echo the
// identity without a user lookup.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies bearer tokens with a server-wide HMAC
// secret. The same secret does both — keep it out of version control.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService.
//
// ttl controls token lifetime. Zero means tokens never expire — the historic
// behaviour of this API, kept as the default for the single-admin deployment.
// Set TOKEN_TTL in production if you want expiring tokens; Verify accepts
// both kinds.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates and signs a token for the given identity.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, one key for signing
// and verifying, which is exactly right for a single-server deployment.
func (s *TokenService) Issue(userID, username string) (string, error) {
	now := time.Now()

	c := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   issuer,
		},
	}
	if s.ttl != 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses a token string and checks its signature.
// Returns the embedded claims on success.
//
// jwt.WithValidMethods pins the algorithm to HS256. Without it, an attacker
// could present a token claiming a different algorithm in its header and the
// parser might accept it (the classic algorithm-confusion attack).
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrTokenInvalid)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrTokenInvalid)
	}

	return c, nil
}
