package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) UserHandler {
	return &userHandlerImpl{userService: userService}
}

// List handles GET /users
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	accounts, err := h.userService.ListAccounts(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, accounts, &response.Meta{TotalItems: int64(len(accounts))})
}

// Update handles PATCH /users/{id}
func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", user.ErrAccountNotFound)
	if !ok {
		return
	}

	var req user.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAccount decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	account, err := h.userService.UpdateAccount(r.Context(), caller, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Account updated", "user_id", id, "updated_by", caller.AccountID)
	response.SuccessWithMessage(w, "User updated successfully", account)
}

// GetProfile handles GET /profile
func (h *userHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// UpdateProfile handles PATCH /profile
func (h *userHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req user.UpdateBioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateBio decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := h.userService.UpdateBio(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", profile)
}
