package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-core-go/internal/service/attendance"
	auditService "github.com/cmlabs-hris/hris-core-go/internal/service/audit"
	companyService "github.com/cmlabs-hris/hris-core-go/internal/service/company"
	dashboardService "github.com/cmlabs-hris/hris-core-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hris-core-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/hris-core-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/hris-core-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-core-go/internal/service/payroll"
	positionService "github.com/cmlabs-hris/hris-core-go/internal/service/position"
	subscriptionService "github.com/cmlabs-hris/hris-core-go/internal/service/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	now     time.Time // clock for attendance events
	router  http.Handler
	store   *memory.Store
	jwt     jwt.Service
	seeded  *fixtures.SeededDataIDs
	ownerID string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	// Wednesday 07:55 in Jakarta
	s := &testServer{now: time.Date(2025, time.March, 12, 0, 55, 0, 0, time.UTC)}

	store := memory.NewStore()
	seeded, err := fixtures.SeedCompany(ctx, fixtures.Repositories{
		Companies:     store.Companies(),
		Subscriptions: store.Subscriptions(),
		Positions:     store.Positions(),
		Employees:     store.Employees(),
		Holidays:      store.Holidays(),
	}, "Test Company", "Asia/Jakarta", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	JWTService, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)

	auditSvc := auditService.NewAuditService(store.Audits())
	subscriptionSvc := subscriptionService.NewSubscriptionService(store.Subscriptions(), nil, time.Minute)
	companySvc := companyService.NewCompanyService(store.Companies(), company.Defaults{Location: jakarta, WorkStartTime: "08:00"}, auditSvc)
	positionSvc := positionService.NewPositionService(store.Positions())
	holidaySvc := holidayService.NewHolidayService(store.Holidays())
	employeeSvc := employeeService.NewEmployeeService(store.Employees(), positionSvc, auditSvc, 12)
	attendanceSvc := attendanceService.NewAttendanceService(store.Attendances(), companySvc, holidaySvc, subscriptionSvc, auditSvc,
		attendanceService.WithClock(func() time.Time { return s.now }))
	leaveSvc := leaveService.NewLeaveService(store, store.Leaves(), store.Employees(), store.Attendances(), companySvc, holidaySvc, subscriptionSvc, auditSvc)
	payrollSvc := payrollService.NewPayrollService(store, store.Payrolls(), store.Employees(), store.Attendances(), positionSvc, companySvc, subscriptionSvc, auditSvc)
	dashboardSvc := dashboardService.NewDashboardService(store.Dashboard(), store.Payrolls(), leaveSvc, companySvc)

	router := NewRouter(
		RouterOptions{Logger: slog.New(slog.DiscardHandler)},
		JWTService,
		subscriptionSvc,
		Handlers{
			Attendance:   NewAttendanceHandler(attendanceSvc),
			Leave:        NewLeaveHandler(leaveSvc),
			Payroll:      NewPayrollHandler(payrollSvc),
			Company:      NewCompanyHandler(companySvc),
			Employee:     NewEmployeeHandler(employeeSvc),
			Master:       NewMasterHandler(positionSvc),
			Holiday:      NewHolidayHandler(holidaySvc),
			Audit:        NewAuditHandler(auditSvc),
			Dashboard:    NewDashboardHandler(dashboardSvc),
			Subscription: NewSubscriptionHandler(subscriptionSvc),
		},
	)

	s.router = router
	s.store = store
	s.jwt = JWTService
	s.seeded = seeded
	s.ownerID = seeded.OwnerEmployeeID
	return s
}

func (s *testServer) token(t *testing.T, role user.Role, employeeID *string) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(user.Principal{
		UserID:     "user-" + string(role),
		EmployeeID: employeeID,
		CompanyID:  s.seeded.CompanyID,
		Role:       role,
	})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func clockBody() map[string]any {
	return map[string]any{
		"latitude":    -6.2,
		"longitude":   106.8,
		"device_info": "test-device",
	}
}

func TestRouter_MissingToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/companies/my", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ClockInOnTime(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleEmployee, &s.ownerID)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, clockBody())

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "on_time", data["status"])
	assert.Equal(t, false, data["is_late"])
	assert.Equal(t, "2025-03-12", data["date"])

	// Second clock-in on the same day conflicts
	s.now = time.Date(2025, time.March, 12, 1, 30, 0, 0, time.UTC)
	rec = s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, clockBody())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_ClockEventsIgnoreClientTimestamp(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleEmployee, &s.ownerID)

	// 09:30 in Jakarta, while the client claims an early morning months later
	s.now = time.Date(2025, time.March, 12, 2, 30, 0, 0, time.UTC)
	body := clockBody()
	body["timestamp"] = "2025-06-02T00:00:00Z"
	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data, ok := decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2025-03-12", data["date"])
	assert.Equal(t, "late", data["status"])
	assert.Equal(t, true, data["is_late"])

	// 17:00 in Jakarta, client claims 23:00
	s.now = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	body["timestamp"] = "2025-03-12T16:00:00Z"
	rec = s.do(t, http.MethodPost, "/api/v1/attendance/clock-out", token, body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data, ok = decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "7.5", data["work_hours"])

	june, err := s.store.Attendances().GetByEmployeeAndDate(context.Background(), s.ownerID, "2025-06-02")
	require.NoError(t, err)
	assert.Nil(t, june)
}

func TestRouter_ClockInOnHolidayIsRejected(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleEmployee, &s.ownerID)

	// 2025-05-01 is a seeded national holiday (Thursday)
	s.now = time.Date(2025, time.May, 1, 1, 0, 0, 0, time.UTC)
	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, clockBody())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "POLICY_VIOLATION", decodeResponse(t, rec).Error.Code)
}

func TestRouter_ClockInValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleEmployee, &s.ownerID)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, map[string]any{"latitude": 120.0})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "latitude")
	assert.Contains(t, resp.Error.Details, "longitude")
}

func TestRouter_ClockInRequiresEmployeeProfile(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleManager, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, clockBody())

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_PermissionDenied(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleEmployee, &s.ownerID)

	rec := s.do(t, http.MethodPost, "/api/v1/payroll/generate", token, map[string]any{"month": 3, "year": 2025})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeResponse(t, rec).Error.Code)
}

func TestRouter_ExpiredSubscriptionBlocksMutations(t *testing.T) {
	s := newTestServer(t)
	past := time.Now().Add(-48 * time.Hour)
	_, err := s.store.Subscriptions().Upsert(context.Background(), subscription.Subscription{
		ID:        "sub-expired",
		CompanyID: s.seeded.CompanyID,
		Status:    subscription.StatusActive,
		StartDate: past.AddDate(0, -1, 0),
		EndDate:   &past,
	})
	require.NoError(t, err)
	token := s.token(t, user.RoleOwner, &s.ownerID)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, clockBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "SUBSCRIPTION_REQUIRED", decodeResponse(t, rec).Error.Code)

	// Reads stay available
	rec = s.do(t, http.MethodGet, "/api/v1/companies/my", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SuperadminBypassesGate(t *testing.T) {
	s := newTestServer(t)
	past := time.Now().Add(-48 * time.Hour)
	_, err := s.store.Subscriptions().Upsert(context.Background(), subscription.Subscription{
		ID:        "sub-expired",
		CompanyID: s.seeded.CompanyID,
		Status:    subscription.StatusActive,
		StartDate: past.AddDate(0, -1, 0),
		EndDate:   &past,
	})
	require.NoError(t, err)

	token, _, err := s.jwt.GenerateAccessToken(user.Principal{UserID: "root", Role: user.RoleSuperadmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/generate", bytes.NewBufferString(`{"month":3,"year":2025}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Company-ID", s.seeded.CompanyID)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data, ok := decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["created"])
}

func TestRouter_SuperadminWithoutCompany(t *testing.T) {
	s := newTestServer(t)
	token, _, err := s.jwt.GenerateAccessToken(user.Principal{UserID: "root", Role: user.RoleSuperadmin})
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/v1/companies/my", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/subscriptions/"+s.seeded.CompanyID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminRoutesRequireSuperadmin(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleOwner, &s.ownerID)

	rec := s.do(t, http.MethodPost, "/api/v1/admin/subscriptions/sweep", token, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_PayrollExport(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleOwner, &s.ownerID)

	rec := s.do(t, http.MethodPost, "/api/v1/payroll/generate", token, map[string]any{"month": 3, "year": 2025})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/export?month=3&year=2025", token, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="payroll-2025-03.xlsx"`, rec.Header().Get("Content-Disposition"))
	// XLSX is a zip container
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestRouter_PayrollExportInvalidPeriod(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleOwner, &s.ownerID)

	rec := s.do(t, http.MethodGet, "/api/v1/payroll/export?month=13&year=2025", token, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRouter_LeaveRequestOwnership(t *testing.T) {
	s := newTestServer(t)
	ownerToken := s.token(t, user.RoleEmployee, &s.ownerID)

	rec := s.do(t, http.MethodPost, "/api/v1/leave/requests", ownerToken, map[string]any{
		"type":       "annual",
		"start_date": "2025-03-17",
		"end_date":   "2025-03-18",
		"reason":     "family event",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data, ok := decodeResponse(t, rec).Data.(map[string]any)
	require.True(t, ok)
	requestID, _ := data["id"].(string)
	require.NotEmpty(t, requestID)

	otherEmployee := "someone-else"
	otherToken := s.token(t, user.RoleEmployee, &otherEmployee)
	rec = s.do(t, http.MethodGet, "/api/v1/leave/requests/"+requestID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/leave/requests/"+requestID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_EmployeeSeesOwnPayslipOnlyOncePaid(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.token(t, user.RoleOwner, &s.ownerID)
	employeeToken := s.token(t, user.RoleEmployee, &s.ownerID)

	rec := s.do(t, http.MethodPost, "/api/v1/payroll/generate", adminToken, map[string]any{"month": 3, "year": 2025})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	records, err := s.store.Payrolls().ListByEmployee(context.Background(), s.ownerID, s.seeded.CompanyID, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	path := "/api/v1/payroll/" + records[0].ID

	rec = s.do(t, http.MethodGet, path, employeeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "draft")
	rec = s.do(t, http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, path+"/calculate", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodGet, path, employeeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "review")

	rec = s.do(t, http.MethodPost, "/api/v1/payroll/pay", adminToken, map[string]any{"payroll_ids": []string{records[0].ID}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodGet, path, employeeToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_MalformedIDsAreNotFound(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleOwner, &s.ownerID)

	for _, path := range []string{
		"/api/v1/attendance/not-a-uuid",
		"/api/v1/leave/requests/xyz",
		"/api/v1/payroll/abc",
		"/api/v1/employees/123",
		"/api/v1/positions/staff",
	} {
		rec := s.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}

	rec := s.do(t, http.MethodPost, "/api/v1/leave/requests/xyz/approve", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_SuperadminMalformedCompanyID(t *testing.T) {
	s := newTestServer(t)
	token, _, err := s.jwt.GenerateAccessToken(user.Principal{UserID: "root", Role: user.RoleSuperadmin})
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/subscriptions/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Company-ID", "acme")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
