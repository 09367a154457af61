package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetAttendanceAggregate implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetAttendanceAggregate(ctx context.Context, companyID string, from, to string) (*dashboard.AttendanceAggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*), COALESCE(SUM(work_hours), 0)
		FROM attendances
		WHERE company_id = $1 AND date BETWEEN $2::date AND $3::date
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance: %w", err)
	}
	defer rows.Close()

	agg := &dashboard.AttendanceAggregate{Counts: map[string]int64{}, TotalWorkHours: decimal.Zero}
	for rows.Next() {
		var (
			status string
			count  int64
			hours  decimal.Decimal
		)
		if err := rows.Scan(&status, &count, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan attendance aggregate: %w", err)
		}
		agg.Counts[status] = count
		agg.TotalWorkHours = agg.TotalWorkHours.Add(hours)
	}
	return agg, rows.Err()
}
