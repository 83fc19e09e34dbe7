package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/auth"
	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/domain/overtime"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/domain/verification"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var decided *request.AlreadyDecidedError
	if errors.As(err, &decided) {
		Conflict(w, decided.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidResetToken):
		ValidationError(w, map[string]string{"token": err.Error()})

	// Account errors
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrAccountInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAccountNotFound):
		NotFound(w, "Account not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Request errors
	case errors.Is(err, leave.ErrMaternityRestricted),
		errors.Is(err, leave.ErrPaternityRestricted),
		errors.Is(err, request.ErrInvalidDecision),
		errors.Is(err, notification.ErrRecipientRequired),
		errors.Is(err, notification.ErrMessageRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrOverlappingRequest),
		errors.Is(err, leave.ErrLeaveNotApproved),
		errors.Is(err, request.ErrAlreadyDecided):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, overtime.ErrOvertimeRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, verification.ErrApprovedRequestNotFound):
		NotFound(w, "Approved leave request not found")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
