package position

import (
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SalaryFields is shared by create and update payloads.
type SalaryFields struct {
	BaseSalary          decimal.Decimal `json:"base_salary"`
	Allowance           decimal.Decimal `json:"allowance"`
	MealAllowance       decimal.Decimal `json:"meal_allowance"`
	TransportAllowance  decimal.Decimal `json:"transport_allowance"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	LateDeductionPerMin decimal.Decimal `json:"late_deduction_per_min"`
}

func (s SalaryFields) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"base_salary", s.BaseSalary},
		{"allowance", s.Allowance},
		{"meal_allowance", s.MealAllowance},
		{"transport_allowance", s.TransportAllowance},
		{"hourly_rate", s.HourlyRate},
		{"late_deduction_per_min", s.LateDeductionPerMin},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: a.field, Message: "must be non-negative"})
		} else if a.value.Exponent() < -2 {
			errs = append(errs, validator.ValidationError{Field: a.field, Message: "must have at most 2 decimal places"})
		}
	}
	return errs
}

func (s SalaryFields) apply(p *Position) {
	p.BaseSalary = s.BaseSalary
	p.Allowance = s.Allowance
	p.MealAllowance = s.MealAllowance
	p.TransportAllowance = s.TransportAllowance
	p.HourlyRate = s.HourlyRate
	p.LateDeductionPerMin = s.LateDeductionPerMin
}

type CreatePositionRequest struct {
	CompanyID string `json:"-"`
	Name      string `json:"name"`
	SalaryFields
}

func (r *CreatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}
	errs = r.SalaryFields.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToPosition builds the entity without id or timestamps.
func (r *CreatePositionRequest) ToPosition() Position {
	p := Position{CompanyID: r.CompanyID, Name: r.Name}
	r.SalaryFields.apply(&p)
	return p
}

type UpdatePositionRequest struct {
	ID        string `json:"-"`
	CompanyID string `json:"-"`
	Name      string `json:"name"`
	SalaryFields
}

func (r *UpdatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}
	errs = r.SalaryFields.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply overwrites the editable fields of p.
func (r *UpdatePositionRequest) Apply(p *Position) {
	p.Name = r.Name
	r.SalaryFields.apply(p)
}

type PositionResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	SalaryFields
}

func NewPositionResponse(p Position) PositionResponse {
	return PositionResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		SalaryFields: SalaryFields{
			BaseSalary:          p.BaseSalary,
			Allowance:           p.Allowance,
			MealAllowance:       p.MealAllowance,
			TransportAllowance:  p.TransportAllowance,
			HourlyRate:          p.HourlyRate,
			LateDeductionPerMin: p.LateDeductionPerMin,
		},
	}
}
