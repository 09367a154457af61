package user

type Permission string

const (
	// Attendance
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceCorrect Permission = "attendance.correct"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollViewAll Permission = "payroll.view_all"
	PermissionPayrollProcess Permission = "payroll.process"
	PermissionPayrollPay     Permission = "payroll.pay"

	// Master data
	PermissionEmployeeManage Permission = "employee.manage"
	PermissionPositionView   Permission = "position.view"
	PermissionPositionManage Permission = "position.manage"
	PermissionHolidayManage  Permission = "holiday.manage"
	PermissionCompanyView    Permission = "company.view"
	PermissionCompanyManage  Permission = "company.manage"

	// Reporting
	PermissionReportsView Permission = "reports.view"
	PermissionAuditView   Permission = "audit.view"
)

var ownerPermissions = []Permission{
	PermissionAttendanceClock,
	PermissionAttendanceViewOwn,
	PermissionAttendanceViewAll,
	PermissionAttendanceCorrect,
	PermissionLeaveCreate,
	PermissionLeaveViewOwn,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionPayrollViewOwn,
	PermissionPayrollViewAll,
	PermissionPayrollProcess,
	PermissionPayrollPay,
	PermissionEmployeeManage,
	PermissionPositionView,
	PermissionPositionManage,
	PermissionHolidayManage,
	PermissionCompanyView,
	PermissionCompanyManage,
	PermissionReportsView,
	PermissionAuditView,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperadmin: ownerPermissions,
	RoleOwner:      ownerPermissions,
	RoleManager: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceCorrect,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollProcess,
		PermissionPositionView,
		PermissionCompanyView,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionPayrollViewOwn,
		PermissionCompanyView,
	},
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
