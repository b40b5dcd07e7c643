package attendance

import "errors"

var (
	// Punch errors
	ErrAlreadyPunchedIn  = errors.New("you have already punched in today")
	ErrNotPunchedIn      = errors.New("you have not punched in today")
	ErrAlreadyPunchedOut = errors.New("you have already punched out today")

	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
	ErrInvalidPunchOrder  = errors.New("punch out must be after punch in")
	ErrInvalidPolicy      = errors.New("invalid attendance policy")
)
