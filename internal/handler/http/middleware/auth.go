package middleware

import (
	"context"
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/auth"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type callerKey struct{}

// AuthRequired rejects requests without a valid, unrevoked access token and
// stores the AuthenticatedCaller built from its claims in the context. It
// must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenID := token.JwtID()
			if tokenID == "" || jwtService.IsTokenRevoked(tokenID) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			accountID, _ := claims["user_id"].(string)
			role, _ := claims["role"].(string)
			if accountID == "" || !user.Role(role).IsValid() {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			caller := user.AuthenticatedCaller{AccountID: accountID, Role: user.Role(role)}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithCaller(ctx context.Context, caller user.AuthenticatedCaller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller stored by AuthRequired.
func CallerFromContext(ctx context.Context) (user.AuthenticatedCaller, bool) {
	caller, ok := ctx.Value(callerKey{}).(user.AuthenticatedCaller)
	return caller, ok
}
