package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

func idr(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ==========================================
// SEEDED DATA RESULT
// ==========================================

// Repositories are the write sides touched by SeedCompany.
type Repositories struct {
	Companies     company.CompanyRepository
	Subscriptions subscription.SubscriptionRepository
	Positions     position.PositionRepository
	Employees     employee.EmployeeRepository
	Holidays      holiday.HolidayRepository
}

// SeededDataIDs holds IDs of all seeded default data for a company
type SeededDataIDs struct {
	CompanyID string

	// Position IDs by name
	PositionIDs map[string]string // e.g., "Director" -> "uuid"

	// Owner employee created alongside the company
	OwnerEmployeeID string

	HolidaysCreated int
}

// NewSeededDataIDs creates a new SeededDataIDs with initialized maps
func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		PositionIDs: make(map[string]string),
	}
}

// ==========================================
// DEFAULT POSITIONS
// ==========================================

// GetDefaultPositions returns standard salary profiles for a new company (IDR).
func GetDefaultPositions(companyID string) []position.Position {
	return []position.Position{
		{CompanyID: companyID, Name: "Director", BaseSalary: idr(25_000_000), Allowance: idr(5_000_000), MealAllowance: idr(50_000), TransportAllowance: idr(50_000), HourlyRate: idr(150_000), LateDeductionPerMin: idr(5_000)},
		{CompanyID: companyID, Name: "Manager", BaseSalary: idr(15_000_000), Allowance: idr(2_500_000), MealAllowance: idr(40_000), TransportAllowance: idr(40_000), HourlyRate: idr(90_000), LateDeductionPerMin: idr(3_000)},
		{CompanyID: companyID, Name: "Senior Staff", BaseSalary: idr(9_000_000), Allowance: idr(1_000_000), MealAllowance: idr(30_000), TransportAllowance: idr(25_000), HourlyRate: idr(55_000), LateDeductionPerMin: idr(2_000)},
		{CompanyID: companyID, Name: "Staff", BaseSalary: idr(5_000_000), Allowance: idr(500_000), MealAllowance: idr(20_000), TransportAllowance: idr(15_000), HourlyRate: idr(30_000), LateDeductionPerMin: idr(1_000)},
		{CompanyID: companyID, Name: "Intern", BaseSalary: idr(2_500_000), Allowance: decimal.Zero, MealAllowance: idr(20_000), TransportAllowance: idr(15_000), HourlyRate: idr(15_000), LateDeductionPerMin: idr(500)},
	}
}

// ==========================================
// DEFAULT HOLIDAYS
// ==========================================

// GetDefaultHolidays returns the fixed-date Indonesian national holidays of year.
// Lunar holidays move every year and are left to the XLSX import.
func GetDefaultHolidays(companyID string, year int) []holiday.Holiday {
	fixed := []struct {
		month time.Month
		day   int
		name  string
	}{
		{time.January, 1, "Tahun Baru Masehi"},
		{time.May, 1, "Hari Buruh Internasional"},
		{time.June, 1, "Hari Lahir Pancasila"},
		{time.August, 17, "Hari Kemerdekaan Republik Indonesia"},
		{time.December, 25, "Hari Raya Natal"},
	}

	holidays := make([]holiday.Holiday, 0, len(fixed))
	for _, f := range fixed {
		holidays = append(holidays, holiday.Holiday{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			Date:      time.Date(year, f.month, f.day, 0, 0, 0, 0, time.UTC),
			Name:      f.name,
		})
	}
	return holidays
}

// ==========================================
// COMPANY SEED
// ==========================================

// SeedCompany creates a tenant with an active subscription, the default positions, this and next
// year's fixed holidays, and an owner employee on the Director profile.
func SeedCompany(ctx context.Context, repos Repositories, name string, timezone string, now time.Time) (*SeededDataIDs, error) {
	ids := NewSeededDataIDs()

	comp, err := repos.Companies.Create(ctx, company.Company{
		ID:            uuid.NewString(),
		Name:          name,
		Timezone:      timezone,
		WorkStartTime: "08:00",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	ids.CompanyID = comp.ID

	if _, err := repos.Subscriptions.Upsert(ctx, subscription.Subscription{
		ID:        uuid.NewString(),
		CompanyID: comp.ID,
		Status:    subscription.StatusActive,
		StartDate: now,
	}); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	for _, p := range GetDefaultPositions(comp.ID) {
		p.ID = uuid.NewString()
		created, err := repos.Positions.Create(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to create position %s: %w", p.Name, err)
		}
		ids.PositionIDs[created.Name] = created.ID
	}

	for _, year := range []int{now.Year(), now.Year() + 1} {
		n, err := repos.Holidays.CreateMany(ctx, GetDefaultHolidays(comp.ID, year))
		if err != nil {
			return nil, fmt.Errorf("failed to create holidays for %d: %w", year, err)
		}
		ids.HolidaysCreated += n
	}

	owner, err := repos.Employees.Create(ctx, employee.Employee{
		ID:               uuid.NewString(),
		CompanyID:        comp.ID,
		EmployeeCode:     "EMP-001",
		FullName:         name + " Owner",
		PositionID:       strPtr(ids.PositionIDs["Director"]),
		LeaveQuota:       employee.DefaultLeaveQuota,
		LeaveBalance:     employee.DefaultLeaveQuota,
		JoinDate:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		ContractType:     employee.ContractTypePermanent,
		EmploymentStatus: employee.EmploymentStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create owner employee: %w", err)
	}
	ids.OwnerEmployeeID = owner.ID

	slog.Info("Company seeded",
		"company_id", comp.ID,
		"positions", len(ids.PositionIDs),
		"holidays", ids.HolidaysCreated,
	)
	return ids, nil
}
