package leave

import (
	"strings"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
)

// CreateLeaveRequestRequest represents a new leave application by the caller.
type CreateLeaveRequestRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`

	start time.Time
	end   time.Time
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !Category(r.LeaveType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of ANNUAL, SICK, MATERNITY, PATERNITY, COMPASSIONATE, UNPAID",
		})
	}

	startOK, endOK := false, false
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if r.start, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must use YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if r.end, endOK = validator.IsValidDate(r.EndDate); !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must use YYYY-MM-DD format",
		})
	}

	if startOK && endOK && r.end.Before(r.start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Category returns the validated leave category.
func (r *CreateLeaveRequestRequest) Category() Category {
	return Category(r.LeaveType)
}

// Dates returns the parsed range. Only meaningful after Validate succeeds.
func (r *CreateLeaveRequestRequest) Dates() (start, end time.Time) {
	return r.start, r.end
}

// LeaveRequestResponse represents a leave request in API responses
type LeaveRequestResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name,omitempty"`
	LeaveType   string  `json:"leave_type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalDays   int     `json:"total_days"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	DeniedBy    *string `json:"denied_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
	RequestType string  `json:"request_type,omitempty"`
}

func NewLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		UserName:   l.UserName,
		LeaveType:  string(l.Category),
		StartDate:  l.StartDate.Format(validator.DateLayout),
		EndDate:    l.EndDate.Format(validator.DateLayout),
		TotalDays:  l.Days(),
		Reason:     l.Reason,
		Status:     string(l.Status),
		ApprovedBy: l.ApprovedBy,
		DeniedBy:   l.DeniedBy,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}

// NewLeaveRequestResponses maps a slice, always returning a non-nil result.
func NewLeaveRequestResponses(items []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(items))
	for _, l := range items {
		out = append(out, NewLeaveRequestResponse(l))
	}
	return out
}

// DisplayName is the category as it reads inside a sentence.
func (c Category) DisplayName() string {
	return strings.ToLower(string(c))
}
