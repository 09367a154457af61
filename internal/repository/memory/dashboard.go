package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/dashboard"
)

type dashboardRepo struct{ s *Store }

func (r dashboardRepo) GetAttendanceAggregate(ctx context.Context, companyID string, from, to string) (*dashboard.AttendanceAggregate, error) {
	defer r.s.lock(ctx)()
	agg := &dashboard.AttendanceAggregate{Counts: map[string]int64{}, TotalWorkHours: decimal.Zero}
	for _, a := range r.s.data.attendances {
		day := a.Date.Format("2006-01-02")
		if a.CompanyID != companyID || day < from || day > to {
			continue
		}
		agg.Counts[string(a.Status)]++
		if a.WorkHours != nil {
			agg.TotalWorkHours = agg.TotalWorkHours.Add(*a.WorkHours)
		}
	}
	return agg, nil
}
