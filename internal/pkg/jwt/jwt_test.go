package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService(testSecret, "soon")
	assert.Error(t, err)
}

func TestGenerateAndParsePrincipal(t *testing.T) {
	svc, err := NewJWTService(testSecret, "1h")
	require.NoError(t, err)

	employeeID := "emp-1"
	token, expiresAt, err := svc.GenerateAccessToken(user.Principal{
		UserID:     "user-1",
		EmployeeID: &employeeID,
		CompanyID:  "company-1",
		Role:       user.RoleManager,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	p, err := svc.ParsePrincipal(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "company-1", p.CompanyID)
	assert.Equal(t, user.RoleManager, p.Role)
	require.NotNil(t, p.EmployeeID)
	assert.Equal(t, "emp-1", *p.EmployeeID)
}

func TestParsePrincipal_WithoutEmployee(t *testing.T) {
	svc, err := NewJWTService(testSecret, "1h")
	require.NoError(t, err)

	token, _, err := svc.GenerateAccessToken(user.Principal{UserID: "root", Role: user.RoleSuperadmin})
	require.NoError(t, err)

	p, err := svc.ParsePrincipal(token)
	require.NoError(t, err)
	assert.Nil(t, p.EmployeeID)
	assert.True(t, p.IsSuperadmin())
}

func TestParsePrincipal_UnknownRole(t *testing.T) {
	svc, err := NewJWTService(testSecret, "1h")
	require.NoError(t, err)

	_, token, err := svc.JWTAuth().Encode(map[string]any{
		"user_id": "user-1",
		"role":    "intern",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = svc.ParsePrincipal(token)
	assert.ErrorIs(t, err, user.ErrUnknownRole)
}

func TestParsePrincipal_RejectsOtherTokenTypes(t *testing.T) {
	svc, err := NewJWTService(testSecret, "1h")
	require.NoError(t, err)

	_, token, err := svc.JWTAuth().Encode(map[string]any{
		"user_id": "user-1",
		"role":    "owner",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = svc.ParsePrincipal(token)
	assert.Error(t, err)
}

func TestParsePrincipal_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(testSecret, "1h")
	require.NoError(t, err)
	verifier, err := NewJWTService("another-secret", "1h")
	require.NoError(t, err)

	token, _, err := issuer.GenerateAccessToken(user.Principal{UserID: "user-1", Role: user.RoleOwner})
	require.NoError(t, err)

	_, err = verifier.ParsePrincipal(token)
	assert.Error(t, err)
}

func TestParsePrincipal_Expired(t *testing.T) {
	svc, err := NewJWTService(testSecret, "-1h")
	require.NoError(t, err)

	token, _, err := svc.GenerateAccessToken(user.Principal{UserID: "user-1", Role: user.RoleOwner})
	require.NoError(t, err)

	_, err = svc.ParsePrincipal(token)
	assert.Error(t, err)
}
