package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const exportPageSize = 100

var exportHeader = []any{
	"Employee ID", "Employee", "Month", "Year",
	"Basic Salary", "Allowances", "Meal Allowance", "Transport Allowance", "Late Rate / Min",
	"Attendance Days", "Late Minutes", "Deductions", "Net Salary",
	"Status", "Paid At", "Payment Method",
}

// ExportPeriod implements payroll.PayrollService. Writes one XLSX row per record of the period.
func (s *PayrollServiceImpl) ExportPeriod(ctx context.Context, companyID string, month, year int, w io.Writer) error {
	period := payroll.PeriodRequest{CompanyID: companyID, Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return err
	}

	records, err := s.periodRecords(ctx, companyID, month, year)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close workbook", "error", err)
		}
	}()

	sheet := fmt.Sprintf("Payroll %04d-%02d", year, month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		name := ""
		if r.EmployeeName != nil {
			name = *r.EmployeeName
		}
		paidAt, method := "", ""
		if r.PaidAt != nil {
			paidAt = r.PaidAt.Format("2006-01-02 15:04:05")
		}
		if r.PaymentMethod != nil {
			method = *r.PaymentMethod
		}

		row := []any{
			r.EmployeeID, name, r.Month, r.Year,
			r.BasicSalary.InexactFloat64(),
			r.Allowances.InexactFloat64(),
			r.MealAllowanceSnapshot.InexactFloat64(),
			r.TransportAllowanceSnapshot.InexactFloat64(),
			r.LateDeductionRateSnapshot.InexactFloat64(),
			r.TotalAttendance, r.TotalLateMinutes,
			r.Deductions.InexactFloat64(),
			r.NetSalary.InexactFloat64(),
			string(r.Status), paidAt, method,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	slog.Info("Payroll period exported", "company_id", companyID, "month", month, "year", year, "rows", len(records))
	return nil
}

func (s *PayrollServiceImpl) periodRecords(ctx context.Context, companyID string, month, year int) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for page := 1; ; page++ {
		records, total, err := s.payrollRepo.List(ctx, payroll.PayrollFilter{
			CompanyID: companyID,
			Month:     &month,
			Year:      &year,
			Page:      page,
			Limit:     exportPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list payroll records: %w", err)
		}
		out = append(out, records...)
		if len(records) == 0 || int64(len(out)) >= total {
			return out, nil
		}
	}
}
