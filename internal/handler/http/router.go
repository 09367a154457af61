package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Payroll      PayrollHandler
	Company      CompanyHandler
	Employee     EmployeeHandler
	Master       MasterHandler
	Holiday      HolidayHandler
	Audit        AuditHandler
	Dashboard    DashboardHandler
	Subscription SubscriptionHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, gate subscription.Gate, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.CompanyHeader},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	subscriptionMiddleware := middleware.NewSubscriptionMiddleware(gate)
	perm := middleware.RequirePermission

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			// Platform operator
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.SuperadminOnly)
				r.Get("/subscriptions/{companyID}", h.Subscription.GetCompanySubscription)
				r.Post("/subscriptions/sweep", h.Subscription.SweepExpired)
			})

			// Tenant scoped
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCompany)
				r.Use(subscriptionMiddleware.RequireActiveSubscription)

				r.Route("/companies/my", func(r chi.Router) {
					r.With(perm(user.PermissionCompanyView)).Get("/", h.Company.GetMy)
					r.With(perm(user.PermissionCompanyManage)).Put("/", h.Company.UpdateMy)
				})

				r.With(perm(user.PermissionCompanyView)).Get("/subscription/my", h.Subscription.GetMySubscription)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/me", h.Employee.GetMe)
					r.Group(func(r chi.Router) {
						r.Use(perm(user.PermissionEmployeeManage))
						r.Get("/", h.Employee.List)
						r.Post("/", h.Employee.Create)
						r.Get("/{id}", h.Employee.Get)
						r.Put("/{id}/leave-quota", h.Employee.UpdateLeaveQuota)
					})
				})

				r.Route("/positions", func(r chi.Router) {
					r.With(perm(user.PermissionPositionView)).Get("/", h.Master.ListPositions)
					r.With(perm(user.PermissionPositionView)).Get("/{id}", h.Master.GetPosition)
					r.With(perm(user.PermissionPositionManage)).Post("/", h.Master.CreatePosition)
					r.With(perm(user.PermissionPositionManage)).Put("/{id}", h.Master.UpdatePosition)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.With(perm(user.PermissionCompanyView)).Get("/", h.Holiday.List)
					r.Group(func(r chi.Router) {
						r.Use(perm(user.PermissionHolidayManage))
						r.Post("/", h.Holiday.Create)
						r.Post("/import", h.Holiday.Import)
						r.Delete("/{id}", h.Holiday.Delete)
					})
				})

				r.Route("/attendance", func(r chi.Router) {
					r.With(perm(user.PermissionAttendanceClock)).Post("/clock-in", h.Attendance.ClockIn)
					r.With(perm(user.PermissionAttendanceClock)).Post("/clock-out", h.Attendance.ClockOut)
					r.With(perm(user.PermissionAttendanceViewOwn)).Get("/my", h.Attendance.GetMyAttendance)
					r.With(perm(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.List)
					r.With(perm(user.PermissionAttendanceViewOwn)).Get("/{id}", h.Attendance.Get)
					r.With(perm(user.PermissionAttendanceCorrect)).Put("/{id}", h.Attendance.Correct)
				})

				r.Route("/leave/requests", func(r chi.Router) {
					r.With(perm(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
					r.With(perm(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyRequests)
					r.With(perm(user.PermissionLeaveViewAll)).Get("/", h.Leave.ListRequests)
					r.With(perm(user.PermissionLeaveViewAll)).Get("/active-today", h.Leave.ActiveToday)
					r.With(perm(user.PermissionLeaveViewAll)).Get("/stats", h.Leave.Stats)
					r.With(perm(user.PermissionLeaveViewOwn)).Get("/{id}", h.Leave.GetRequest)
					r.With(perm(user.PermissionLeaveApprove)).Post("/{id}/approve", h.Leave.ApproveRequest)
					r.With(perm(user.PermissionLeaveApprove)).Post("/{id}/reject", h.Leave.RejectRequest)
					r.With(perm(user.PermissionLeaveCreate)).Delete("/{id}", h.Leave.CancelRequest)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.With(perm(user.PermissionPayrollViewOwn)).Get("/my", h.Payroll.GetMyPayrolls)
					r.With(perm(user.PermissionPayrollViewAll)).Get("/", h.Payroll.List)
					r.With(perm(user.PermissionPayrollViewAll)).Get("/stats", h.Payroll.Stats)
					r.With(perm(user.PermissionPayrollViewAll)).Get("/export", h.Payroll.Export)
					r.With(perm(user.PermissionPayrollViewOwn)).Get("/{id}", h.Payroll.Get)

					r.Group(func(r chi.Router) {
						r.Use(perm(user.PermissionPayrollProcess))
						r.Post("/generate", h.Payroll.Generate)
						r.Post("/approve-all", h.Payroll.ApproveAll)
						r.Post("/{id}/calculate", h.Payroll.Calculate)
						r.Delete("/{id}", h.Payroll.Delete)
					})
					r.With(perm(user.PermissionPayrollPay)).Post("/pay", h.Payroll.BulkPay)
				})

				r.With(perm(user.PermissionAuditView)).Get("/audit-logs", h.Audit.List)

				r.Route("/dashboard", func(r chi.Router) {
					r.Use(perm(user.PermissionReportsView))
					r.Get("/", h.Dashboard.GetDashboard)
					r.Get("/attendance", h.Dashboard.GetAttendanceSummary)
					r.Get("/payroll", h.Dashboard.GetPayrollSummary)
				})
			})
		})
	})

	return r
}
