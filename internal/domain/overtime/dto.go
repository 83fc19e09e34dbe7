package overtime

import (
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CreateOvertimeRequestRequest represents a new overtime claim by the caller.
type CreateOvertimeRequestRequest struct {
	Date   string          `json:"date"`
	Hours  decimal.Decimal `json:"hours"`
	Reason string          `json:"reason"`

	date time.Time
}

func (r *CreateOvertimeRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	var ok bool
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if r.date, ok = validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must use YYYY-MM-DD format",
		})
	}

	if r.Hours.LessThan(MinHours) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be at least 0.5",
		})
	} else if r.Hours.GreaterThan(MaxHours) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be at most 24",
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

// WorkDate returns the parsed date. Only meaningful after Validate succeeds.
func (r *CreateOvertimeRequestRequest) WorkDate() time.Time {
	return r.date
}

// OvertimeRequestResponse represents an overtime request in API responses
type OvertimeRequestResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name,omitempty"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	DeniedBy    *string `json:"denied_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
	RequestType string  `json:"request_type,omitempty"`
}

func NewOvertimeRequestResponse(o OvertimeRequest) OvertimeRequestResponse {
	return OvertimeRequestResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		UserName:   o.UserName,
		Date:       o.Date.Format(validator.DateLayout),
		Hours:      o.Hours.InexactFloat64(),
		Reason:     o.Reason,
		Status:     string(o.Status),
		ApprovedBy: o.ApprovedBy,
		DeniedBy:   o.DeniedBy,
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
	}
}

func NewOvertimeRequestResponses(items []OvertimeRequest) []OvertimeRequestResponse {
	out := make([]OvertimeRequestResponse, 0, len(items))
	for _, o := range items {
		out = append(out, NewOvertimeRequestResponse(o))
	}
	return out
}
