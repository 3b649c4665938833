// ABOUTME: Bearer authentication accepting pk_ API keys or HS256 JWTs
// ABOUTME: The authenticated user id is stored on the request context

package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/paritydotcx/paritycx/internal/log"
)

const apiKeyPrefix = "pk_"

// AnonymousUser owns requests whose API key carries no user segment.
const AnonymousUser = "anonymous"

type ctxKey int

const (
	userKey ctxKey = iota
	requestIDKey
)

// Authenticator validates bearer tokens.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator returns an Authenticator verifying JWTs with secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Authenticate resolves the user behind an Authorization header value.
func (a *Authenticator) Authenticate(header string) (string, error) {
	if header == "" {
		return "", NewUnauthorizedError("Missing Authorization header. Use: Bearer <api_key>")
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", NewUnauthorizedError("Invalid Authorization format. Use: Bearer <api_key>")
	}

	token := parts[1]
	if strings.HasPrefix(token, apiKeyPrefix) {
		return userFromAPIKey(token), nil
	}

	sub, err := a.verify(token)
	if err != nil {
		log.Warn("authentication failed: %v", err)
		return "", NewUnauthorizedError("Invalid or expired authentication token")
	}
	return sub, nil
}

func (a *Authenticator) verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

// IssueToken signs an HS256 JWT for subject, expiring after ttl (0 = never).
func (a *Authenticator) IssueToken(subject string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// userFromAPIKey returns the second underscore segment of pk_<user>_<secret>.
func userFromAPIKey(key string) string {
	parts := strings.Split(key, "_")
	if len(parts) >= 3 {
		return parts[1]
	}
	return AnonymousUser
}

// requireAuth rejects unauthenticated requests before next runs.
func (a *Authenticator) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := a.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// UserFromContext returns the authenticated user id, if any.
func UserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}
