package request

import "github.com/avopro-hr/hr-backend-go/internal/pkg/validator"

// DecideRequest is the body of an approve/deny call.
type DecideRequest struct {
	Status string `json:"status"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if !Decision(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidDecision.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *DecideRequest) Decision() Decision {
	return Decision(r.Status)
}
