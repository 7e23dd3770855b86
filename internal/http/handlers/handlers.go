package handlers

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/condogate/condogate/internal/http/response"
	"github.com/condogate/condogate/internal/repository"
	"github.com/condogate/condogate/internal/service"
	"github.com/condogate/condogate/pkg/auth"
	"github.com/condogate/condogate/pkg/logger"
)

type claimsKey struct{}

type Handlers struct {
	userService     service.UserService
	authService     service.AuthService
	residentService service.ResidentService
	visitorService  service.VisitorService
	loginLimiter    repository.LoginRateLimiter
	jwtSecret       string
}

func New(
	userService service.UserService,
	authService service.AuthService,
	residentService service.ResidentService,
	visitorService service.VisitorService,
	loginLimiter repository.LoginRateLimiter,
	jwtSecret string,
) *Handlers {
	return &Handlers{
		userService:     userService,
		authService:     authService,
		residentService: residentService,
		visitorService:  visitorService,
		loginLimiter:    loginLimiter,
		jwtSecret:       jwtSecret,
	}
}

// RequireJWT rejects requests without a valid bearer token.
func (h *Handlers) RequireJWT() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.WriteError(w, http.StatusUnauthorized, "Missing or invalid authorization header", response.CodeUnauthorized)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := auth.Parse(token, h.jwtSecret)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "Invalid token", response.CodeInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), logger.UserIDKey, claims.Sub)
			ctx = context.WithValue(ctx, claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoginRateLimit bounds login attempts per client IP.
func (h *Handlers) LoginRateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "login:" + getClientIP(r)

			allowed, err := h.loginLimiter.Allow(r.Context(), key)
			if err != nil {
				logger.ErrorContext(r.Context(), "Rate limit check failed", "error", err)
				// Allow request on error (fail open)
			} else if !allowed {
				response.RateLimit(w, "Too many login attempts. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey{}).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func parsePagination(r *http.Request) (page, limit int, err error) {
	page = 1
	limit = 10

	if v := r.URL.Query().Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, err
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, err
		}
	}

	return page, limit, nil
}
