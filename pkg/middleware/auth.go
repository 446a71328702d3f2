package middleware

import (
	"net/http"
	"strings"

	"answerq/internal/data/repository"
	"answerq/pkg/apperr"
	"answerq/pkg/token"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate resolves a bearer token to an account and stores the identity
// on the request context. Requests without an Authorization header pass
// through anonymously; RequireAuth rejects them on protected routes.
func Authenticate(issuer token.Issuer, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.With(zap.String("middleware", "auth"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			raw = strings.TrimSpace(raw)
			if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := issuer.Validate(raw)
			if err != nil {
				logger.Warn("Rejected bearer token",
					zap.String("reason", token.Kind(err)),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			user, err := userRepo.FindByEmail(r.Context(), claims.Subject)
			if err != nil {
				logger.Error("Failed to load account for token", zap.Error(err), zap.String("subject", claims.Subject))
				if apperr.IsTransient(err) {
					utils.ResponseUnavailable(w, "Service temporarily unavailable")
					return
				}
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				logger.Warn("Token subject no longer resolves", zap.String("subject", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// The email may since have moved to another account.
			if user.ID != claims.AccountID {
				logger.Warn("Token subject mismatch",
					zap.Int64("token_account_id", claims.AccountID),
					zap.Int64("account_id", user.ID),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetAccountContext(r.Context(), user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that Authenticate did not attach an identity to.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetAccountIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
