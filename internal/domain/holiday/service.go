package holiday

import (
	"context"
	"io"
	"time"
)

// Calendar answers working-day questions for the clock engine and leave ledger.
type Calendar interface {
	// IsHoliday reports whether the calendar day of date in loc is a registered holiday, with its label.
	IsHoliday(ctx context.Context, companyID string, date time.Time, loc *time.Location) (string, bool, error)
	// Between returns the set of holiday dates (YYYY-MM-DD) in [from, to].
	Between(ctx context.Context, companyID string, from, to time.Time, loc *time.Location) (map[string]string, error)
}

type HolidayService interface {
	Calendar
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string, companyID string) error
	List(ctx context.Context, companyID string, year int) ([]HolidayResponse, error)
	// Import reads an XLSX workbook whose first sheet has "date" and "name" columns.
	Import(ctx context.Context, companyID string, r io.Reader) (ImportResult, error)
}
