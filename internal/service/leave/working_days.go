package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/timeutil"
)

// WorkingDaysCalculator counts the days a leave request consumes.
type WorkingDaysCalculator struct {
	calendar holiday.Calendar
}

func NewWorkingDaysCalculator(calendar holiday.Calendar) *WorkingDaysCalculator {
	return &WorkingDaysCalculator{calendar: calendar}
}

// Calculate counts days in [start, end] that are neither weekend nor company holiday.
func (c *WorkingDaysCalculator) Calculate(ctx context.Context, companyID string, start, end time.Time, loc *time.Location) (int, error) {
	holidays, err := c.calendar.Between(ctx, companyID, start, end, loc)
	if err != nil {
		return 0, fmt.Errorf("failed to load holidays: %w", err)
	}

	var workingDays int
	for _, day := range timeutil.Weekdays(start, end, loc) {
		// Skip public holidays
		if _, ok := holidays[timeutil.FormatDate(day, loc)]; ok {
			continue
		}
		workingDays++
	}
	return workingDays, nil
}
