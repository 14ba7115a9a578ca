package auth

const (
	RoleEmployee    = "employee"
	RoleManager     = "manager"
	RoleHR          = "hr"
	RoleSystemAdmin = "system_admin"
)

const (
	PermEmployeesRead  = "core.employees.read"
	PermGratuityRead   = "gratuity.read"
	PermGratuityWrite  = "gratuity.write"
	PermGratuitySettle = "gratuity.settle"
	PermPayrollRead    = "payroll.read"
	PermPayrollExport  = "payroll.export"
	PermAttendanceRead = "attendance.read"
	PermCurrencyRead   = "settings.currency.read"
	PermCurrencyWrite  = "settings.currency.write"
	PermAuditRead      = "audit.read"
	PermSystemAdmin    = "admin.system"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermGratuityRead,
	PermGratuityWrite,
	PermGratuitySettle,
	PermPayrollRead,
	PermPayrollExport,
	PermAttendanceRead,
	PermCurrencyRead,
	PermCurrencyWrite,
	PermAuditRead,
	PermSystemAdmin,
}

var Roles = []string{RoleEmployee, RoleManager, RoleHR, RoleSystemAdmin}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermGratuityRead,
		PermPayrollRead,
		PermAttendanceRead,
		PermCurrencyRead,
	},
	RoleManager: {
		PermEmployeesRead,
		PermGratuityRead,
		PermPayrollRead,
		PermAttendanceRead,
		PermCurrencyRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermGratuityRead,
		PermGratuityWrite,
		PermGratuitySettle,
		PermPayrollRead,
		PermPayrollExport,
		PermAttendanceRead,
		PermCurrencyRead,
		PermCurrencyWrite,
		PermAuditRead,
	},
	RoleSystemAdmin: {
		PermSystemAdmin,
	},
}

// RoleInherits lists roles whose permissions a role also holds.
var RoleInherits = map[string][]string{
	RoleSystemAdmin: {RoleHR},
}
