package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/auth"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.RegisterRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	account, err := a.authService.Register(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User registered", "user_id", account.ID)
	response.Created(w, "Registration successful. Your account is awaiting activation.", account)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in successfully")
	response.SuccessWithMessage(w, "User logged in successfully", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		token = jwtauth.TokenFromCookie(r)
	}
	if token == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), token); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// ForgotPassword implements AuthHandler.
func (a *AuthHandlerImpl) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var forgotPasswordReq auth.ForgotPasswordRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&forgotPasswordReq); err != nil {
		slog.Error("ForgotPassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := a.authService.ForgotPassword(r.Context(), forgotPasswordReq); err != nil {
		slog.Error("ForgotPassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Same answer whether or not the email belongs to an account
	response.SuccessWithMessage(w, auth.GenericResetMessage, nil)
}

// ResetPassword implements AuthHandler.
func (a *AuthHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var resetPasswordReq auth.ResetPasswordRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&resetPasswordReq); err != nil {
		slog.Error("ResetPassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := a.authService.ResetPassword(r.Context(), resetPasswordReq); err != nil {
		slog.Error("ResetPassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Password reset successfully")
	response.SuccessWithMessage(w, "Password has been reset successfully", nil)
}
