package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrOverlappingRequest   = errors.New("an existing pending or approved request overlaps these dates")
	ErrNoWorkingDays        = errors.New("the selected range contains no working days")
	ErrInsufficientBalance  = errors.New("insufficient annual leave balance")
	ErrAlreadyProcessed     = errors.New("leave request already processed")
	ErrReasonRequired       = errors.New("a reason is required when rejecting a leave request")
	ErrNotOwner             = errors.New("only the requester can cancel this leave request")
)
