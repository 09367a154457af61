package holiday

import "time"

// Holiday is a company-registered non-working calendar day.
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time // calendar date at UTC midnight; compare via Format("2006-01-02")
	Name      string
	CreatedAt time.Time
}
