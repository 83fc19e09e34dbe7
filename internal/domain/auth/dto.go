package auth

import (
	"strings"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
)

const minPasswordLength = 8

type RegisterRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`

	dateOfBirth time.Time
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if !validator.MaxLength(r.Name, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	// Password
	errs = append(errs, validatePassword(r.Password)...)

	var ok bool
	if validator.IsEmpty(r.DateOfBirth) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_birth",
			Message: "date_of_birth is required",
		})
	} else if r.dateOfBirth, ok = validator.IsValidDate(r.DateOfBirth); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_birth",
			Message: "date_of_birth must use YYYY-MM-DD format",
		})
	} else if r.dateOfBirth.After(time.Now()) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_birth",
			Message: "date_of_birth must be in the past",
		})
	}

	if validator.IsEmpty(r.Gender) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender is required",
		})
	} else if !user.Gender(r.Gender).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be one of MALE, FEMALE, OTHER",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedDateOfBirth is only meaningful after Validate succeeds.
func (r *RegisterRequest) ParsedDateOfBirth() time.Time {
	return r.dateOfBirth
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}
	errs = append(errs, validatePassword(r.Password)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validatePassword(password string) validator.ValidationErrors {
	if validator.IsEmpty(password) {
		return validator.ValidationErrors{{
			Field:   "password",
			Message: "password is required",
		}}
	}
	if !validator.MinLength(password, minPasswordLength) {
		return validator.ValidationErrors{{
			Field:   "password",
			Message: "password must be at least 8 characters",
		}}
	}
	return nil
}

type TokenResponse struct {
	AccessToken          string                `json:"access_token"`
	AccessTokenExpiresIn int64                 `json:"access_token_expires_in"`
	User                 *user.AccountResponse `json:"user,omitempty"`
}

// GenericResetMessage is returned by forgot-password whether or not the
// email belongs to an account.
const GenericResetMessage = "If an account with that email exists, a password reset link has been sent."
