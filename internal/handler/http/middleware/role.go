package middleware

import (
	"fmt"
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
)

// RequirePermission checks if the caller's role has a specific permission.
// Services repeat the check; this only rejects early.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.HasPermission(caller.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, caller.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
