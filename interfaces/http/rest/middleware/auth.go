package middleware

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"cinegraph-backend/pkg/auth"
	"cinegraph-backend/pkg/common"
)

// Authenticate validates the bearer token and attaches the caller's
// identity to the request context. Reads are limited per IP, writes
// additionally per user.
func Authenticate(
	validator *auth.JWTValidator,
	ipLimiter *auth.IPRateLimiter,
	userLimiter *auth.UserRateLimiter,
	logger *zap.Logger,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			allowed, err := ipLimiter.Allow(r.Context(), clientIP)
			if err != nil {
				logger.Warn("ip rate limiter failed",
					zap.String("remoteAddr", clientIP),
					zap.Error(err),
				)
			}
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests,
					common.StandardErrorCodes.TooManyRequests, "rate limit exceeded")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.RespondError(w, http.StatusUnauthorized,
					common.StandardErrorCodes.Unauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				common.RespondError(w, http.StatusUnauthorized,
					common.StandardErrorCodes.Unauthorized, "invalid authorization header format")
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("token validation failed",
					zap.String("remoteAddr", clientIP),
					zap.Error(err),
				)
				common.RespondError(w, http.StatusUnauthorized,
					common.StandardErrorCodes.Unauthorized, "invalid or expired token")
				return
			}

			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				allowed, err := userLimiter.Allow(r.Context(), claims.Username)
				if err != nil {
					logger.Warn("user rate limiter failed",
						zap.String("username", claims.Username),
						zap.Error(err),
					)
				}
				if !allowed {
					common.RespondError(w, http.StatusTooManyRequests,
						common.StandardErrorCodes.TooManyRequests, "write rate limit exceeded")
					return
				}
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				Username: claims.Username,
				Roles:    claims.Roles,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
