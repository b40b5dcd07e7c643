package fixtures

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/shopspring/decimal"
)

// OwnerEmployeeCode is the code given to the owner's own employee record.
const OwnerEmployeeCode = "0001"

func strPtr(s string) *string { return &s }

// ==========================================
// DEFAULT OFFICE
// ==========================================

// DefaultOffice returns the head office created together with a company.
func DefaultOffice(companyID, companyName, timezone string) office.Office {
	return office.Office{
		CompanyID: companyID,
		Name:      companyName + " Head Office",
		Timezone:  timezone,
	}
}

// ==========================================
// OWNER EMPLOYEE
// ==========================================

// OwnerEmployee returns the placeholder profile linked to the owner account so
// the owner can punch in like everyone else. Name and salary are edited later.
func OwnerEmployee(companyID, userID, officeID, email string, joinedAt time.Time) employee.Employee {
	return employee.Employee{
		CompanyID:    companyID,
		UserID:       strPtr(userID),
		OfficeID:     strPtr(officeID),
		EmployeeCode: OwnerEmployeeCode,
		FullName:     "Company Owner",
		Email:        email,
		Designation:  "Owner",
		ShiftStart:   "9:00 AM",
		ShiftEnd:     "6:00 PM",
		WeekOffDays:  append([]string(nil), employee.DefaultWeekOffDays...),
		BaseSalary:   decimal.Zero,
		Status:       employee.StatusActive,
		JoinedAt:     joinedAt,
	}
}
