package holiday

import "errors"

var (
	ErrHolidayNotFound    = errors.New("holiday not found")
	ErrHolidayExists      = errors.New("a holiday is already registered on this date")
	ErrInvalidSpreadsheet = errors.New("holiday spreadsheet must have a date and name column")
)
