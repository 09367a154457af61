package user

import "fmt"

type Role string

const (
	RoleSuperadmin Role = "superadmin" // Platform operator, not bound to a tenant
	RoleOwner      Role = "owner"      // Company owner - full access
	RoleManager    Role = "manager"    // Can approve leave and run payroll review
	RoleEmployee   Role = "employee"   // Regular employee
)

// ParseRole maps a claim value onto the closed role set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleSuperadmin, RoleOwner, RoleManager, RoleEmployee:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Principal is the authenticated caller, resolved once per request.
type Principal struct {
	UserID     string
	EmployeeID *string
	CompanyID  string
	Role       Role
}

// Can checks a capability against the role table.
func (p Principal) Can(permission Permission) bool {
	return HasPermission(p.Role, permission)
}

// IsSuperadmin reports whether tenant gates should be bypassed.
func (p Principal) IsSuperadmin() bool {
	return p.Role == RoleSuperadmin
}

// Employee returns the caller's employee id or ErrEmployeeProfileRequired.
func (p Principal) Employee() (string, error) {
	if p.EmployeeID == nil || *p.EmployeeID == "" {
		return "", ErrEmployeeProfileRequired
	}
	return *p.EmployeeID, nil
}
