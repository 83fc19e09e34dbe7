package http

import (
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/verification"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
)

type VerificationHandler interface {
	Verify(w http.ResponseWriter, r *http.Request)
}

type verificationHandlerImpl struct {
	verificationService verification.Service
}

func NewVerificationHandler(verificationService verification.Service) VerificationHandler {
	return &verificationHandlerImpl{verificationService: verificationService}
}

// Verify handles the public GET /verify/{leaveID}
func (h *verificationHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "leaveID", verification.ErrApprovedRequestNotFound)
	if !ok {
		return
	}

	view, err := h.verificationService.GetApprovedRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}
