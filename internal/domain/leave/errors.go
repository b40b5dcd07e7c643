package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveOverlap                 = errors.New("leave request overlaps an existing pending or approved request")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrCannotReviewOwnRequest       = errors.New("cannot approve or reject your own leave request")
	ErrNotRequestOwner              = errors.New("only the requesting employee can cancel this leave request")
)

var ErrNoWorkingDays = errors.New("leave range contains no working days")
