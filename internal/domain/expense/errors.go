package expense

import "errors"

var (
	ErrExpenseNotFound         = errors.New("expense not found")
	ErrExpenseAlreadyProcessed = errors.New("expense has already been processed")
	ErrCannotReviewOwnExpense  = errors.New("cannot review your own expense")
	ErrExpenseDateInFuture     = errors.New("expense date must not be in the future")
	ErrInvalidReceiptType      = errors.New("receipt must be a jpg, png or pdf file")
	ErrReceiptTooLarge         = errors.New("receipt must not exceed 5 MB")
)
