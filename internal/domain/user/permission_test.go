package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"superadmin", "owner", "manager", "employee"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, Role(s), role)
	}

	_, err := ParseRole("admin")
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleOwner, PermissionPayrollPay))
	assert.True(t, HasPermission(RoleManager, PermissionLeaveApprove))
	assert.False(t, HasPermission(RoleManager, PermissionPayrollPay))
	assert.False(t, HasPermission(RoleEmployee, PermissionLeaveApprove))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceClock))
	assert.False(t, HasPermission(Role("pending"), PermissionAttendanceClock))
}

func TestPrincipal(t *testing.T) {
	empID := "emp-1"
	p := Principal{UserID: "u-1", EmployeeID: &empID, CompanyID: "c-1", Role: RoleEmployee}

	id, err := p.Employee()
	require.NoError(t, err)
	assert.Equal(t, "emp-1", id)
	assert.False(t, p.IsSuperadmin())
	assert.False(t, p.Can(PermissionAuditView))

	_, err = Principal{Role: RoleOwner}.Employee()
	assert.ErrorIs(t, err, ErrEmployeeProfileRequired)
}
