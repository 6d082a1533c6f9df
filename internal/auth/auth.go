// Package auth exposes the buyer identity consumed by the relevance
// ranking (region/woreda) and the order gating. Token validation is an
// external concern; this package only resolves tokens through a
// Directory and threads the resulting user through request contexts.
package auth

import (
	"context"
	"net/http"
	"strings"
)

// User is the acting buyer. Region and Woreda may be empty; the
// relevance ranking treats missing fields as zero proximity.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
	Woreda string `json:"woreda,omitempty"`
}

// Directory resolves bearer tokens to users.
type Directory interface {
	Lookup(token string) (*User, bool)
}

// StaticDirectory is a fixed token table, enough for development and
// tests.
type StaticDirectory map[string]*User

func (d StaticDirectory) Lookup(token string) (*User, bool) {
	u, ok := d[token]
	return u, ok
}

type ctxKey struct{}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the authenticated user, or nil when the request
// is anonymous. Browsing is allowed anonymously; ordering is not.
func FromContext(ctx context.Context) *User {
	u, _ := ctx.Value(ctxKey{}).(*User)
	return u
}

// Middleware resolves an optional Authorization bearer token into the
// request context. Requests without a valid token pass through
// anonymous; handlers that need identity reject them.
func Middleware(dir Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				if u, found := dir.Lookup(strings.TrimSpace(token)); found {
					r = r.WithContext(WithUser(r.Context(), u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
