package leave

import (
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
)

type Category string

const (
	CategoryAnnual        Category = "ANNUAL"
	CategorySick          Category = "SICK"
	CategoryMaternity     Category = "MATERNITY"
	CategoryPaternity     Category = "PATERNITY"
	CategoryCompassionate Category = "COMPASSIONATE"
	CategoryUnpaid        Category = "UNPAID"
)

func AllCategories() []Category {
	return []Category{
		CategoryAnnual,
		CategorySick,
		CategoryMaternity,
		CategoryPaternity,
		CategoryCompassionate,
		CategoryUnpaid,
	}
}

func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// BalanceKind returns the counter an approval of this category deducts from.
// UNPAID leave deducts nothing.
func (c Category) BalanceKind() (user.BalanceKind, bool) {
	switch c {
	case CategoryAnnual:
		return user.BalanceAnnual, true
	case CategorySick:
		return user.BalanceSick, true
	case CategoryMaternity:
		return user.BalanceMaternity, true
	case CategoryPaternity:
		return user.BalancePaternity, true
	case CategoryCompassionate:
		return user.BalanceCompassionate, true
	}
	return "", false
}

// CheckEligibility enforces the gender restriction of gendered categories.
func (c Category) CheckEligibility(owner user.Account) error {
	switch c {
	case CategoryMaternity:
		if !owner.HasGender(user.GenderFemale) {
			return ErrMaternityRestricted
		}
	case CategoryPaternity:
		if !owner.HasGender(user.GenderMale) {
			return ErrPaternityRestricted
		}
	}
	return nil
}

type LeaveRequest struct {
	ID         string
	UserID     string
	Category   Category
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     request.Status
	ApprovedBy *string
	DeniedBy   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	UserName string
}

// Days is the inclusive calendar-day length of the request.
func (l LeaveRequest) Days() int {
	return DaysBetween(l.StartDate, l.EndDate)
}

// Overlaps reports whether the inclusive ranges [l.StartDate, l.EndDate]
// and [start, end] share at least one day.
func (l LeaveRequest) Overlaps(start, end time.Time) bool {
	return !l.StartDate.After(end) && !l.EndDate.Before(start)
}

// BlocksNewRequests reports whether the request still occupies its dates.
func (l LeaveRequest) BlocksNewRequests() bool {
	return l.Status == request.StatusPending || l.Status == request.StatusApproved
}

// DaysBetween counts calendar days from start to end inclusive, ignoring
// the clock part of both values.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
