package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/handlers/response"
)

type payloadKey struct{}

// PayloadFrom returns the verified token payload stored by JWTMiddleware
func PayloadFrom(ctx context.Context) (domain.AuthPayload, bool) {
	payload, ok := ctx.Value(payloadKey{}).(domain.AuthPayload)
	return payload, ok
}

type MiddlewareProvider struct {
	jwtService primary.JWTService
	permission string
	logger     primary.Logger
}

// New creates the middleware; tokens must carry permission
func New(jwtService primary.JWTService, permission string, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtService: jwtService,
		permission: permission,
		logger:     logger,
	}
}

func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		valid, err := m.jwtService.VerifyTokenHMAC(r.Context(), tokenString, jwt.SigningMethodHS256.Name)
		if err != nil || !valid {
			m.logger.Debug("Rejected token", "path", r.URL.Path, "error", err)
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		payload, err := m.jwtService.DecodeTokenPayload(r.Context(), tokenString)
		if err != nil || !hasPermission(payload, m.permission) {
			response.Error(w, http.StatusForbidden, "Missing permission")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), payloadKey{}, payload)))
	})
}

func hasPermission(payload domain.AuthPayload, permission string) bool {
	for _, p := range payload.Permission {
		if p == permission {
			return true
		}
	}
	return false
}
