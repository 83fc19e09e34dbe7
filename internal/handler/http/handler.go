package http

import (
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/auth"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/middleware"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// callerFrom writes a 401 and returns false when the request carries no
// authenticated caller.
func callerFrom(w http.ResponseWriter, r *http.Request) (user.AuthenticatedCaller, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return user.AuthenticatedCaller{}, false
	}
	return caller, true
}

// pathID reads a UUID path parameter. Malformed ids are reported as
// notFound since no record can carry them.
func pathID(w http.ResponseWriter, r *http.Request, key string, notFound error) (string, bool) {
	id := chi.URLParam(r, key)
	if !validator.IsValidUUID(id) {
		response.HandleError(w, notFound)
		return "", false
	}
	return id, true
}
