package user

type Permission string

const (
	// Self service
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Attendance
	PermissionAttendanceViewOwn   Permission = "attendance.view_own"
	PermissionAttendancePunch     Permission = "attendance.punch"
	PermissionAttendanceViewAll   Permission = "attendance.view_all"
	PermissionAttendanceManage    Permission = "attendance.manage"
	PermissionAttendancePolicySet Permission = "attendance.policy_manage"

	// Leave
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Expenses
	PermissionExpenseViewOwn Permission = "expense.view_own"
	PermissionExpenseCreate  Permission = "expense.create"
	PermissionExpenseViewAll Permission = "expense.view_all"
	PermissionExpenseApprove Permission = "expense.approve"

	// Dealer visits
	PermissionVisitViewOwn Permission = "visit.view_own"
	PermissionVisitCreate  Permission = "visit.create"
	PermissionVisitViewAll Permission = "visit.view_all"

	// Employees, offices and holidays
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"
	PermissionOfficeManage    Permission = "office.manage"
	PermissionHolidayManage   Permission = "holiday.manage"

	// Company
	PermissionCompanyView   Permission = "company.view"
	PermissionCompanyManage Permission = "company.manage"

	// Payroll. Viewing is scoped to own slips below manager
	PermissionPayrollView   Permission = "payroll.view"
	PermissionPayrollManage Permission = "payroll.manage"

	// Reports & dashboard
	PermissionReportsView Permission = "reports.view"
)

var employeePermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionAttendanceViewOwn,
	PermissionAttendancePunch,
	PermissionLeaveViewOwn,
	PermissionLeaveCreate,
	PermissionExpenseViewOwn,
	PermissionExpenseCreate,
	PermissionVisitViewOwn,
	PermissionVisitCreate,
	PermissionCompanyView,
	PermissionPayrollView,
}

var managerPermissions = append(append([]Permission{}, employeePermissions...),
	PermissionAttendanceViewAll,
	PermissionAttendanceManage,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionExpenseViewAll,
	PermissionExpenseApprove,
	PermissionVisitViewAll,
	PermissionEmployeeViewAll,
	PermissionEmployeeManage,
	PermissionHolidayManage,
	PermissionReportsView,
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: append(append([]Permission{}, managerPermissions...),
		PermissionAttendancePolicySet,
		PermissionOfficeManage,
		PermissionCompanyManage,
		PermissionPayrollManage,
	),
	RoleManager:  managerPermissions,
	RoleEmployee: employeePermissions,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
