package position

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a named salary profile of a company.
type Position struct {
	ID                  string
	CompanyID           string
	Name                string
	BaseSalary          decimal.Decimal
	Allowance           decimal.Decimal
	MealAllowance       decimal.Decimal
	TransportAllowance  decimal.Decimal
	HourlyRate          decimal.Decimal
	LateDeductionPerMin decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
