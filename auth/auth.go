// Package auth implements the cookie/JWT session scheme guarding the
// admin area. Sessions are stateless: validity is cryptographic and
// time-based, so revocation before natural expiry is not supported.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "auth"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Principal is the authenticated identity carried by a session token.
type Principal struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. The secret is
// injected here so tests can construct isolated instances.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenService(secret []byte, ttl time.Duration, issuer string) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, issuer: issuer}
}

// TTL returns the configured token lifetime, which doubles as the
// cookie max-age.
func (ts *TokenService) TTL() time.Duration { return ts.ttl }

// Issue produces a signed, time-limited credential for the principal.
func (ts *TokenService) Issue(p Principal) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.ttl)
	claims := sessionClaims{
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    ts.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token, returning its principal. Any
// malformed, tampered, or expired token yields ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	return Principal{
		Subject: claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
	}, nil
}

// RequireRole verifies the token and checks its role against the
// allowed set. A missing or invalid token yields ErrUnauthorized; a
// valid token with a role outside the set yields ErrForbidden.
func (ts *TokenService) RequireRole(tokenString string, allowedRoles ...string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, ErrUnauthorized
	}
	p, err := ts.Verify(tokenString)
	if err != nil {
		return Principal{}, ErrUnauthorized
	}
	for _, role := range allowedRoles {
		if p.Role == role {
			return p, nil
		}
	}
	return Principal{}, ErrForbidden
}

// SetAuthCookie stores the signed token in an HTTP-only, secure,
// same-site-restricted cookie.
func SetAuthCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie overwrites the session cookie with an immediately
// expired empty value.
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts the session token from the auth cookie; an
// absent cookie returns the empty string.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
