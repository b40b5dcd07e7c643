package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/visit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth and claims
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrRefreshTokenNotFound),
		errors.Is(err, auth.ErrAccessTokenNotPresent),
		errors.Is(err, jwt.ErrMissingClaims),
		errors.Is(err, jwt.ErrInvalidClaims):
		Unauthorized(w, err.Error())
	case errors.Is(err, jwt.ErrNoEmployeeClaim),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, employee.ErrUnauthorized),
		errors.Is(err, attendance.ErrUnauthorized),
		errors.Is(err, leave.ErrCannotReviewOwnRequest),
		errors.Is(err, leave.ErrNotRequestOwner),
		errors.Is(err, expense.ErrCannotReviewOwnExpense),
		errors.Is(err, visit.ErrNotVisitOwner),
		errors.Is(err, employee.ErrCannotDeactivateSelf),
		errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, office.ErrOfficeNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, holiday.ErrHolidayNotFound),
		errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, expense.ErrExpenseNotFound),
		errors.Is(err, visit.ErrVisitNotFound),
		errors.Is(err, payroll.ErrSlipNotFound),
		errors.Is(err, storage.ErrNotFound):
		NotFound(w, err.Error())

	// Conflicts
	case errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, company.ErrCompanyUsernameExists),
		errors.Is(err, office.ErrOfficeNameExists),
		errors.Is(err, office.ErrOfficeInUse),
		errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, employee.ErrEmployeeAlreadyInactive),
		errors.Is(err, holiday.ErrHolidayDateExists),
		errors.Is(err, leave.ErrLeaveOverlap),
		errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed),
		errors.Is(err, attendance.ErrAlreadyPunchedIn),
		errors.Is(err, attendance.ErrAlreadyPunchedOut),
		errors.Is(err, expense.ErrExpenseAlreadyProcessed),
		errors.Is(err, visit.ErrVisitAlreadyCheckedOut),
		errors.Is(err, visit.ErrOpenVisitExists),
		errors.Is(err, payroll.ErrSlipAlreadyPaid):
		Conflict(w, err.Error())

	// Business rule failures
	case errors.Is(err, attendance.ErrNotPunchedIn),
		errors.Is(err, attendance.ErrInvalidPunchOrder),
		errors.Is(err, attendance.ErrInvalidPolicy),
		errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrNoWorkingDays),
		errors.Is(err, expense.ErrExpenseDateInFuture),
		errors.Is(err, expense.ErrInvalidReceiptType),
		errors.Is(err, expense.ErrReceiptTooLarge),
		errors.Is(err, payroll.ErrPeriodNotClosed),
		errors.Is(err, payroll.ErrNoEmployeesToPay),
		errors.Is(err, payroll.ErrEmployeeNotPayable),
		errors.Is(err, payroll.ErrJoinedAfterPeriod),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, dashboard.ErrDashboardUnavailable):
		InternalServerError(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled service error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
