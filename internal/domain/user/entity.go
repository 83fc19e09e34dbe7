package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Full access, decides requests and manages accounts
	RoleHR       Role = "HR"       // Same privileges as admin for workflow purposes
	RoleEmployee Role = "EMPLOYEE" // Files requests for themselves
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// BalanceKind names one of the leave balance counters on an account.
type BalanceKind string

const (
	BalanceAnnual        BalanceKind = "annual"
	BalanceSick          BalanceKind = "sick"
	BalanceMaternity     BalanceKind = "maternity"
	BalancePaternity     BalanceKind = "paternity"
	BalanceCompassionate BalanceKind = "compassionate"
	BalanceUnpaid        BalanceKind = "unpaid"
)

// LeaveBalances holds remaining days per leave category. Values may go
// negative; nothing clamps them.
type LeaveBalances struct {
	Annual        int
	Sick          int
	Maternity     int
	Paternity     int
	Compassionate int
	Unpaid        int
}

// DefaultLeaveBalances is what a newly registered account starts with.
func DefaultLeaveBalances() LeaveBalances {
	return LeaveBalances{
		Annual:        25,
		Sick:          15,
		Maternity:     90,
		Paternity:     14,
		Compassionate: 5,
		Unpaid:        0,
	}
}

// Get returns the counter for kind.
func (b LeaveBalances) Get(kind BalanceKind) int {
	switch kind {
	case BalanceAnnual:
		return b.Annual
	case BalanceSick:
		return b.Sick
	case BalanceMaternity:
		return b.Maternity
	case BalancePaternity:
		return b.Paternity
	case BalanceCompassionate:
		return b.Compassionate
	case BalanceUnpaid:
		return b.Unpaid
	}
	return 0
}

// Deduct subtracts days from the counter for kind.
func (b *LeaveBalances) Deduct(kind BalanceKind, days int) {
	switch kind {
	case BalanceAnnual:
		b.Annual -= days
	case BalanceSick:
		b.Sick -= days
	case BalanceMaternity:
		b.Maternity -= days
	case BalancePaternity:
		b.Paternity -= days
	case BalanceCompassionate:
		b.Compassionate -= days
	case BalanceUnpaid:
		b.Unpaid -= days
	}
}

type Account struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     *string
	Role             Role
	Gender           *Gender
	DateOfBirth      *time.Time
	Bio              *string
	IsActive         bool
	ResetTokenHash   *string
	ResetTokenExpiry *time.Time
	Balances         LeaveBalances
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasGender reports whether the account declares gender g.
func (a *Account) HasGender(g Gender) bool {
	return a.Gender != nil && *a.Gender == g
}

// AccountPatch is a partial update of the fields an approver may change.
// Nil fields are left untouched.
type AccountPatch struct {
	Name     *string
	Role     *Role
	IsActive *bool
}

// AuthenticatedCaller identifies who is invoking an operation. It is built
// once per request from the verified token and passed down explicitly.
type AuthenticatedCaller struct {
	AccountID string
	Role      Role
}
