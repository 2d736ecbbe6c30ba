package middleware

import (
	"net/http"
	"strings"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/infrastructure/security"
	"github.com/novachat/nova-chat-server/internal/transport/http/response"
)

type TokenVerifier interface {
	VerifyAndDecode(token string) (security.TokenClaims, error)
}

// Auth verifies Authorization: Bearer <access_token> and injects the caller's
// identity into the request context. Refresh tokens are rejected here even
// when well-signed.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := BearerToken(r)
			if raw == "" {
				response.WriteError(w, r, domain.ErrInvalidToken())
				return
			}

			claims, err := verifier.VerifyAndDecode(raw)
			if err != nil {
				response.WriteError(w, r, err)
				return
			}
			if !claims.IsAccessToken() || strings.TrimSpace(claims.UserID) == "" {
				response.WriteError(w, r, domain.ErrInvalidToken())
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Login)
			ctx = WithAccessToken(ctx, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header, or "".
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
