package middleware

import (
	"net/http"
	"strings"

	"wordless-backend/infrastructure/config"
	"wordless-backend/pkg/auth"
	"wordless-backend/pkg/common"

	"go.uber.org/zap"
)

const codeUnauthorized = "AUTH-01"

// Authenticate creates the bearer-token middleware. Token issuance and the
// heavy validation path belong to the identity provider; behind API Gateway
// the JWT authorizer has already validated the token, so pre-authorized
// requests only need their user context extracted.
func Authenticate(cfg *config.Config, logger *zap.Logger) func(next http.Handler) http.Handler {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "development-secret-change-in-production"
	}

	verifier, err := auth.NewJWTVerifier(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
	if err != nil {
		logger.Error("Failed to construct JWT verifier", zap.Error(err))
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				common.RespondErrorCode(w, http.StatusUnauthorized, codeUnauthorized)
			})
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// API Gateway pre-validated request: trust the forwarded context.
			if cfg.IsLambda && r.Header.Get("X-API-Gateway-Authorized") == "true" {
				userID := r.Header.Get("X-User-ID")
				if userID == "" {
					common.RespondErrorCode(w, http.StatusUnauthorized, codeUnauthorized)
					return
				}

				claims := &auth.Claims{
					UserID: userID,
					Email:  r.Header.Get("X-User-Email"),
					Roles:  []string{"authenticated"},
				}
				next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), claims)))
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				authHeader = r.Header.Get("authorization")
			}
			if authHeader == "" {
				common.RespondErrorCode(w, http.StatusUnauthorized, codeUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				common.RespondErrorCode(w, http.StatusUnauthorized, codeUnauthorized)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Warn("Token verification failed", zap.Error(err))
				common.RespondErrorCode(w, http.StatusUnauthorized, codeUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), claims)))
		})
	}
}
