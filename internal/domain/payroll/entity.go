package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	StatusDraft    PayrollStatus = "draft"
	StatusReview   PayrollStatus = "review"
	StatusApproved PayrollStatus = "approved"
	StatusPaid     PayrollStatus = "paid"
)

// CanCalculate allows recalculation until the record is approved.
func (s PayrollStatus) CanCalculate() bool {
	return s == StatusDraft || s == StatusReview
}

func (s PayrollStatus) CanPay() bool {
	return s == StatusReview || s == StatusApproved
}

func (s PayrollStatus) CanDelete() bool {
	return s != StatusPaid
}

// VisibleToEmployee reports whether the payslip is final enough for its employee to see.
func (s PayrollStatus) VisibleToEmployee() bool {
	return s == StatusApproved || s == StatusPaid
}

// DefaultPaymentMethod is stamped when bulk payment does not name one.
const DefaultPaymentMethod = "MANUAL"

// PayrollRecord is one employee's payslip for a month. Snapshot fields are frozen at generation.
type PayrollRecord struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Month      int
	Year       int

	BasicSalary                decimal.Decimal
	Allowances                 decimal.Decimal
	MealAllowanceSnapshot      decimal.Decimal
	TransportAllowanceSnapshot decimal.Decimal
	LateDeductionRateSnapshot  decimal.Decimal
	HourlyRateSnapshot         decimal.Decimal

	TotalAttendance  int
	TotalLateMinutes int
	Deductions       decimal.Decimal
	NetSalary        decimal.Decimal

	Status        PayrollStatus
	PaidAt        *time.Time
	PaymentMethod *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	EmployeeName *string
}

// Calculation is the result of applying attendance aggregates to a record's snapshots.
type Calculation struct {
	TotalAttendance  int
	TotalLateMinutes int
	DailyBenefits    decimal.Decimal
	LateDeduction    decimal.Decimal
	NetSalary        decimal.Decimal
}

// Calculate never reads live salary data; only the record's own snapshots.
func (r PayrollRecord) Calculate(totalAttendance, totalLateMinutes int) Calculation {
	days := decimal.NewFromInt(int64(totalAttendance))
	lateMinutes := decimal.NewFromInt(int64(totalLateMinutes))

	dailyBenefits := r.MealAllowanceSnapshot.Add(r.TransportAllowanceSnapshot).Mul(days)
	lateDeduction := lateMinutes.Mul(r.LateDeductionRateSnapshot)
	net := r.BasicSalary.Add(r.Allowances).Add(dailyBenefits).Sub(lateDeduction)

	return Calculation{
		TotalAttendance:  totalAttendance,
		TotalLateMinutes: totalLateMinutes,
		DailyBenefits:    dailyBenefits.Round(2),
		LateDeduction:    lateDeduction.Round(2),
		NetSalary:        net.Round(2),
	}
}

// Apply copies a calculation onto the record and moves it to review.
func (r *PayrollRecord) Apply(c Calculation) {
	r.TotalAttendance = c.TotalAttendance
	r.TotalLateMinutes = c.TotalLateMinutes
	r.Deductions = c.LateDeduction
	r.NetSalary = c.NetSalary
	r.Status = StatusReview
}

// StatusTotal aggregates records of one status.
type StatusTotal struct {
	Status    PayrollStatus
	Count     int
	NetSalary decimal.Decimal
}
