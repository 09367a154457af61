package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// FindByDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) FindByDate(ctx context.Context, companyID string, date string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, date, name, created_at
		FROM holidays
		WHERE company_id = $1 AND date = $2::date
	`

	var h holiday.Holiday
	err := q.QueryRow(ctx, query, companyID, date).Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to find holiday on %s: %w", date, err)
	}
	return h, nil
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, companyID string, from, to string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, date, name, created_at
		FROM holidays
		WHERE company_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, company_id, date, name)
		VALUES ($1, $2, $3::date, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, h.ID, h.CompanyID, h.Date.Format("2006-01-02"), h.Name).Scan(&h.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "uk_holidays_company_date") {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}

// CreateMany implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) CreateMany(ctx context.Context, hs []holiday.Holiday) (int, error) {
	if len(hs) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, company_id, date, name)
		VALUES ($1, $2, $3::date, $4)
		ON CONFLICT ON CONSTRAINT uk_holidays_company_date DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, h := range hs {
		batch.Queue(query, h.ID, h.CompanyID, h.Date.Format("2006-01-02"), h.Name)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range hs {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to import holiday: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
