package middleware

import (
	"net/http"
	"strings"

	"vivelo/internal/data/entity"
	"vivelo/internal/data/repository"
	"vivelo/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the bearer session token and loads the user's role
// into the request context.
func AuthSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			user, err := userRepo.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err), zap.String("user_id", session.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsActive {
				utils.ResponseUnauthorized(w, "Account is not active")
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID, string(user.Role))
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose context role is not one of the allowed
// roles. Must run after AuthSession.
func RequireRole(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			for _, allowed := range roles {
				if role == string(allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role check failed",
				zap.String("role", role),
				zap.String("path", r.URL.Path),
			)
			utils.ResponseForbidden(w, "Insufficient permissions")
		})
	}
}
