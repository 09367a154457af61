package holiday

import (
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	CompanyID string `json:"-"`
	Date      string `json:"date"` // YYYY-MM-DD
	Name      string `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must use YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 150 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 150 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{ID: h.ID, Date: h.Date.Format("2006-01-02"), Name: h.Name}
}

type ImportResult struct {
	Rows     int               `json:"rows"`
	Imported int               `json:"imported"`
	Skipped  int               `json:"skipped"`
	Errors   map[string]string `json:"errors,omitempty"` // cell reference -> reason
}
