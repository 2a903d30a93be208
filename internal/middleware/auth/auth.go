// Package auth implements the session gate. Every API operation runs behind
// it: the gate resolves a principal from the bearer token and threads the
// token itself through to the spreadsheet backend as the caller's credential.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	goauth2 "google.golang.org/api/oauth2/v2"
	goption "google.golang.org/api/option"

	"combine/internal/cache"
	"combine/internal/log"
	"combine/internal/sheets"
)

// ErrUnauthorized is returned when no valid credential accompanies a request.
var ErrUnauthorized = errors.New("unauthorized")

// Session is the authenticated context attached to a request: who the caller
// is and the opaque credential usable against the spreadsheet backend.
type Session struct {
	Principal  string
	Credential sheets.Credential
}

type contextKey struct{}

// FromContext returns the session placed by Middleware, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// WithSession returns a context carrying the given session. Exposed for tests.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// Verifier resolves a principal from an access token.
type Verifier interface {
	Verify(ctx context.Context, token string) (principal string, err error)
}

// Insecure accepts any non-empty token without calling the identity
// provider. Local development and tests only.
type Insecure struct{}

func (Insecure) Verify(_ context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrUnauthorized
	}
	return "local", nil
}

// TokenInfo validates access tokens against Google's tokeninfo endpoint.
// Verified principals are cached briefly (keyed by token digest) so a busy
// session does not hit the endpoint on every request.
type TokenInfo struct {
	svc      *goauth2.Service
	verified *cache.LRUCache[string]
}

func NewTokenInfo(ctx context.Context) (*TokenInfo, error) {
	svc, err := goauth2.NewService(ctx, goption.WithoutAuthentication())
	if err != nil {
		return nil, err
	}
	return &TokenInfo{
		svc:      svc,
		verified: cache.NewLRUCache[string](256, 5*time.Minute),
	}, nil
}

func (v *TokenInfo) Verify(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrUnauthorized
	}
	key := tokenDigest(token)
	if principal, ok := v.verified.Get(key); ok {
		return principal, nil
	}
	info, err := v.svc.Tokeninfo().AccessToken(token).Context(ctx).Do()
	if err != nil {
		return "", ErrUnauthorized
	}
	principal := info.Email
	if principal == "" {
		principal = info.UserId
	}
	v.verified.Set(key, principal)
	return principal, nil
}

// CleanExpired drops expired cache entries. Satisfies cache.Cleaner.
func (v *TokenInfo) CleanExpired() int {
	return v.verified.CleanExpired()
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Middleware rejects requests without a valid bearer credential before any
// service logic runs. On success the session is stored in the request context.
func Middleware(verifier Verifier, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}
			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.WarnContext(r.Context(), "Credential rejected", log.FieldPath, r.URL.Path, log.FieldError, err.Error())
				unauthorized(w)
				return
			}
			logger.DebugContext(r.Context(), "Session established", log.FieldPrincipal, principal)
			session := Session{Principal: principal, Credential: sheets.Credential(token)}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
