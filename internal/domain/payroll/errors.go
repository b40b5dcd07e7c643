package payroll

import "errors"

var (
	ErrSlipNotFound       = errors.New("salary slip not found")
	ErrSlipAlreadyPaid    = errors.New("salary slip is already paid")
	ErrPeriodNotClosed    = errors.New("payroll can only be generated for a month that has ended")
	ErrNoEmployeesToPay   = errors.New("no active employees to generate payroll for")
	ErrEmployeeNotPayable = errors.New("employee has no base salary configured")
	ErrJoinedAfterPeriod  = errors.New("employee joined after the payroll period")
)
