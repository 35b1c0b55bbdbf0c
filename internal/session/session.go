// Package session holds the signed role/store claims for logged-in managers.
// The cookie replaces the ad hoc user_type/store_id markers of the previous
// frontend: the claims are still cached client-side, but they are HMAC-signed
// so a client cannot mint its own role.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleStore  = "store"
	RoleGarage = "garage"
)

const cookieName = "ac24_session"

type ctxKey struct{}

// Claims identifies the active role and, for store/garage managers, the
// store the session is scoped to.
type Claims struct {
	Role    string
	StoreID string
}

// Secret returns SESSION_SECRET or a default dev value.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Create sets the signed session cookie for the given claims.
func Create(w http.ResponseWriter, c Claims) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(c.Role + "|" + c.StoreID))
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    payload + "." + sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

// Clear deletes the session cookie.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// Parse validates the cookie signature and returns the claims.
func Parse(r *http.Request) (Claims, bool) {
	ck, err := r.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return Claims{}, false
	}
	parts := strings.Split(ck.Value, ".")
	if len(parts) != 2 {
		return Claims{}, false
	}
	payload, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(payload))) {
		return Claims{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Claims{}, false
	}
	fields := strings.SplitN(string(raw), "|", 2)
	if len(fields) != 2 {
		return Claims{}, false
	}
	c := Claims{Role: fields[0], StoreID: fields[1]}
	switch c.Role {
	case RoleAdmin, RoleStore, RoleGarage:
		return c, true
	}
	return Claims{}, false
}

// WithClaims stores claims in context.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext extracts claims.
func FromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(Claims)
	return c, ok
}

// Middleware attaches session claims to the request context if present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := Parse(r); ok {
			r = r.WithContext(WithClaims(r.Context(), c))
		}
		next.ServeHTTP(w, r)
	})
}
