package admin

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwellcms/inkwell/internal/admin/permission"
	"github.com/inkwellcms/inkwell/internal/admin/routepath"
)

// tokenCookieName is the signed-token cookie set at login.
const tokenCookieName = "ink_token"

// tokenIssuer is the expected iss claim on admin tokens.
const tokenIssuer = "inkwell"

// AuthConfig holds auth middleware configuration for the admin plane.
type AuthConfig struct {
	// Secret signs and verifies admin tokens (HMAC-SHA256).
	Secret string
	// LoginURL receives unauthenticated users.
	LoginURL string
}

// Claims is the JWT payload carried by admin tokens.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// requireAuth wraps next with signed-token authentication.
//
// Static assets stay unauthenticated; every other route needs a valid token
// cookie, whose subject and roles become the request user.
func requireAuth(next http.Handler, cfg AuthConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAuthExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(tokenCookieName)
		if err != nil || strings.TrimSpace(cookie.Value) == "" {
			http.Redirect(w, r, cfg.LoginURL, http.StatusFound)
			return
		}

		user, err := VerifyToken(cookie.Value, cfg.Secret)
		if err != nil {
			log.Printf("admin auth: %v", err)
			http.Redirect(w, r, cfg.LoginURL, http.StatusFound)
			return
		}

		ctx := permission.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isAuthExempt returns true for paths that should bypass authentication.
func isAuthExempt(path string) bool {
	return strings.HasPrefix(path, routepath.StaticPrefix)
}

// VerifyToken parses and validates a signed admin token.
func VerifyToken(token, secret string) (permission.User, error) {
	if strings.TrimSpace(secret) == "" {
		return permission.User{}, fmt.Errorf("auth secret is required")
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return permission.User{}, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return permission.User{}, fmt.Errorf("token is not valid")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return permission.User{}, fmt.Errorf("token subject is required")
	}

	return permission.User{ID: claims.Subject, Roles: claims.Roles}, nil
}

// MintToken signs an admin token for userID with the given roles.
func MintToken(userID string, roles []string, secret string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(secret) == "" {
		return "", fmt.Errorf("auth secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
