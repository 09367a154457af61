package payroll

import "errors"

var (
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
	ErrCannotDeletePaid        = errors.New("cannot delete paid payroll record")
	ErrInvalidStatusTransition = errors.New("payroll record status does not allow this action")
	ErrNoPayrollSelected       = errors.New("at least one payroll record must be selected")
)
