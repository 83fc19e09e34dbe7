package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avopro-hr/hr-backend-go/internal/domain/auth"
	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/domain/verification"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", validator.ValidationErrors{{Field: "reason", Message: "reason is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed"},
		{"invalid reset token", auth.ErrInvalidResetToken, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED", auth.ErrInvalidCredentials.Error()},
		{"permissions", user.ErrInsufficientPermissions, http.StatusForbidden, "FORBIDDEN", user.ErrInsufficientPermissions.Error()},
		{"inactive", user.ErrAccountInactive, http.StatusForbidden, "FORBIDDEN", user.ErrAccountInactive.Error()},
		{"maternity", leave.ErrMaternityRestricted, http.StatusBadRequest, "BAD_REQUEST", leave.ErrMaternityRestricted.Error()},
		{"overlap", leave.ErrOverlappingRequest, http.StatusConflict, "CONFLICT", leave.ErrOverlappingRequest.Error()},
		{"email exists", fmt.Errorf("create account: %w", user.ErrEmailExists), http.StatusConflict, "CONFLICT", "Email already registered"},
		{"already decided", fmt.Errorf("decide: %w", &request.AlreadyDecidedError{Status: request.StatusDenied}), http.StatusConflict, "CONFLICT", "request has already been denied"},
		{"not approved", leave.ErrLeaveNotApproved, http.StatusConflict, "CONFLICT", leave.ErrLeaveNotApproved.Error()},
		{"leave not found", leave.ErrLeaveRequestNotFound, http.StatusNotFound, "NOT_FOUND", "Leave request not found"},
		{"verification not found", verification.ErrApprovedRequestNotFound, http.StatusNotFound, "NOT_FOUND", "Approved leave request not found"},
		{"internal", errors.New("connection refused: host=db password=secret"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}
}
