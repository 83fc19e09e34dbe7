package overtime

import (
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/shopspring/decimal"
)

var (
	MinHours = decimal.NewFromFloat(0.5)
	MaxHours = decimal.NewFromInt(24)
)

type OvertimeRequest struct {
	ID         string
	UserID     string
	Date       time.Time
	Hours      decimal.Decimal
	Reason     string
	Status     request.Status
	ApprovedBy *string
	DeniedBy   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	UserName string
}
