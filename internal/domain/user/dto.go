package user

import (
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
)

// AccountResponse represents an account in management listings. Credential
// and reset-token fields are never exposed.
type AccountResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Gender    *string `json:"gender,omitempty"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
}

func NewAccountResponse(a Account) AccountResponse {
	resp := AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.Gender != nil {
		g := string(*a.Gender)
		resp.Gender = &g
	}
	return resp
}

// ProfileResponse is the caller's own profile including every balance.
type ProfileResponse struct {
	ID                        string  `json:"id"`
	Name                      string  `json:"name"`
	Email                     string  `json:"email"`
	Role                      string  `json:"role"`
	Gender                    *string `json:"gender"`
	DateOfBirth               *string `json:"date_of_birth"`
	Bio                       *string `json:"bio"`
	AnnualLeaveBalance        int     `json:"annual_leave_balance"`
	SickLeaveBalance          int     `json:"sick_leave_balance"`
	MaternityLeaveBalance     int     `json:"maternity_leave_balance"`
	PaternityLeaveBalance     int     `json:"paternity_leave_balance"`
	CompassionateLeaveBalance int     `json:"compassionate_leave_balance"`
	UnpaidLeaveBalance        int     `json:"unpaid_leave_balance"`
}

func NewProfileResponse(a Account) ProfileResponse {
	resp := ProfileResponse{
		ID:                        a.ID,
		Name:                      a.Name,
		Email:                     a.Email,
		Role:                      string(a.Role),
		Bio:                       a.Bio,
		AnnualLeaveBalance:        a.Balances.Annual,
		SickLeaveBalance:          a.Balances.Sick,
		MaternityLeaveBalance:     a.Balances.Maternity,
		PaternityLeaveBalance:     a.Balances.Paternity,
		CompassionateLeaveBalance: a.Balances.Compassionate,
		UnpaidLeaveBalance:        a.Balances.Unpaid,
	}
	if a.Gender != nil {
		g := string(*a.Gender)
		resp.Gender = &g
	}
	if a.DateOfBirth != nil {
		d := a.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &d
	}
	return resp
}

// UpdateAccountRequest represents an approver's partial edit of an account.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Role == nil && r.IsActive == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of name, role or is_active is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of ADMIN, HR, EMPLOYEE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Patch converts a validated request into a repository patch.
func (r *UpdateAccountRequest) Patch() AccountPatch {
	var patch AccountPatch
	patch.Name = r.Name
	patch.IsActive = r.IsActive
	if r.Role != nil {
		role := Role(*r.Role)
		patch.Role = &role
	}
	return patch
}

const maxBioLength = 500

// UpdateBioRequest replaces the caller's bio. An empty string clears it.
type UpdateBioRequest struct {
	Bio *string `json:"bio"`
}

func (r *UpdateBioRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Bio == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "bio",
			Message: "bio is required",
		})
	} else if len([]rune(*r.Bio)) > maxBioLength {
		errs = append(errs, validator.ValidationError{
			Field:   "bio",
			Message: "bio must be at most 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
