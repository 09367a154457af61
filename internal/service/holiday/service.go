package holiday

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/timeutil"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(holidayRepository holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{HolidayRepository: holidayRepository}
}

// IsHoliday implements holiday.Calendar.
func (s *HolidayServiceImpl) IsHoliday(ctx context.Context, companyID string, date time.Time, loc *time.Location) (string, bool, error) {
	h, err := s.HolidayRepository.FindByDate(ctx, companyID, timeutil.FormatDate(date, loc))
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to look up holiday: %w", err)
	}
	return h.Name, true, nil
}

// Between implements holiday.Calendar.
func (s *HolidayServiceImpl) Between(ctx context.Context, companyID string, from, to time.Time, loc *time.Location) (map[string]string, error) {
	holidays, err := s.HolidayRepository.ListBetween(ctx, companyID, timeutil.FormatDate(from, loc), timeutil.FormatDate(to, loc))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	days := make(map[string]string, len(holidays))
	for _, h := range holidays {
		days[h.Date.Format(timeutil.DateLayout)] = h.Name
	}
	return days, nil
}

// Create implements holiday.HolidayService.
// Subtle: this method shadows the method (HolidayRepository).Create of HolidayServiceImpl.HolidayRepository.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	date, err := timeutil.ParseDate(req.Date, time.UTC)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to parse holiday date: %w", err)
	}

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		ID:        uuid.NewString(),
		CompanyID: req.CompanyID,
		Date:      date,
		Name:      strings.TrimSpace(req.Name),
	})
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return holiday.NewHolidayResponse(created), nil
}

// Delete implements holiday.HolidayService.
// Subtle: this method shadows the method (HolidayRepository).Delete of HolidayServiceImpl.HolidayRepository.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string, companyID string) error {
	return s.HolidayRepository.Delete(ctx, id, companyID)
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context, companyID string, year int) ([]holiday.HolidayResponse, error) {
	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-12-31", year)

	holidays, err := s.HolidayRepository.ListBetween(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	resp := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, holiday.NewHolidayResponse(h))
	}
	return resp, nil
}

// Import implements holiday.HolidayService.
func (s *HolidayServiceImpl) Import(ctx context.Context, companyID string, r io.Reader) (holiday.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return holiday.ImportResult{}, fmt.Errorf("%w: %v", holiday.ErrInvalidSpreadsheet, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return holiday.ImportResult{}, holiday.ErrInvalidSpreadsheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return holiday.ImportResult{}, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return holiday.ImportResult{}, holiday.ErrInvalidSpreadsheet
	}

	dateCol, nameCol := -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "date":
			dateCol = i
		case "name":
			nameCol = i
		}
	}
	if dateCol < 0 || nameCol < 0 {
		return holiday.ImportResult{}, holiday.ErrInvalidSpreadsheet
	}

	result := holiday.ImportResult{Errors: map[string]string{}}
	seen := map[string]bool{}
	var batch []holiday.Holiday

	for r := 1; r < len(rows); r++ {
		row := rows[r]
		rawDate, name := cell(row, dateCol), cell(row, nameCol)
		if rawDate == "" && name == "" {
			continue
		}
		result.Rows++

		date, err := parseSheetDate(rawDate)
		if err != nil {
			ref, _ := excelize.CoordinatesToCellName(dateCol+1, r+1)
			result.Errors[ref] = err.Error()
			continue
		}
		if name == "" {
			ref, _ := excelize.CoordinatesToCellName(nameCol+1, r+1)
			result.Errors[ref] = "name is required"
			continue
		}

		key := date.Format(timeutil.DateLayout)
		if seen[key] {
			result.Skipped++
			continue
		}
		seen[key] = true

		batch = append(batch, holiday.Holiday{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			Date:      date,
			Name:      name,
		})
	}

	imported, err := s.HolidayRepository.CreateMany(ctx, batch)
	if err != nil {
		return holiday.ImportResult{}, fmt.Errorf("failed to import holidays: %w", err)
	}
	result.Imported = imported
	result.Skipped += len(batch) - imported

	slog.Info("Holidays imported",
		"company_id", companyID,
		"rows", result.Rows,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	return result, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parseSheetDate accepts ISO dates, common spreadsheet renderings and raw Excel serial numbers.
func parseSheetDate(s string) (time.Time, error) {
	formats := []string{timeutil.DateLayout, "01-02-06", "1/2/06", "02/01/2006", "2/1/2006", "2006/01/02", "02-Jan-2006"}
	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown date format: %s", s)
}
