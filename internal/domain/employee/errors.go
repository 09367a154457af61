package employee

import "errors"

var (
	ErrEmployeeNotFound         = errors.New("employee not found")
	ErrEmployeeCodeExists       = errors.New("employee code already exists")
	ErrInsufficientLeaveBalance = errors.New("insufficient leave balance")
)
