package httpserver

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Authenticator resolves the calling user from a bearer JWT. Internal
// callers may instead pass X-User-Id directly, matching service-to-service
// traffic that already crossed the gateway.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// UserID returns the caller's user ID and whether one could be resolved.
func (a *Authenticator) UserID(r *http.Request) (string, bool) {
	if raw := bearerToken(r); raw != "" && len(a.secret) > 0 {
		token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
			return a.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if sub, err := claims.GetSubject(); err == nil && strings.TrimSpace(sub) != "" {
					return strings.TrimSpace(sub), true
				}
			}
		}
		return "", false
	}

	if fromHeader := strings.TrimSpace(r.Header.Get("X-User-Id")); fromHeader != "" {
		return fromHeader, true
	}
	return "", false
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
