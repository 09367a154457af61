package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/config"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hris-core-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/postgresql"
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
)

// repositories is the storage handle every service is built from.
type repositories struct {
	transactor    database.Transactor
	companies     company.CompanyRepository
	subscriptions subscription.SubscriptionRepository
	positions     position.PositionRepository
	employees     employee.EmployeeRepository
	holidays      holiday.HolidayRepository
	attendances   attendance.AttendanceRepository
	leaves        leave.LeaveRequestRepository
	payrolls      payroll.PayrollRepository
	audits        audit.AuditRepository
	dashboard     dashboard.DashboardRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	location, err := time.LoadLocation(cfg.Tenant.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load default timezone: %w", err)
	}

	var subscriptionCache cache.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.URL)
		if err != nil {
			slog.Warn("Redis unavailable, subscription cache disabled", "error", err)
		} else {
			defer redisCache.Close()
			subscriptionCache = redisCache
		}
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("failed to create jwt service: %w", err)
	}

	auditSvc := auditService.NewAuditService(repos.audits)
	subscriptionSvc := subscriptionService.NewSubscriptionService(repos.subscriptions, subscriptionCache, cfg.Subscription.CacheTTL)
	companySvc := companyService.NewCompanyService(repos.companies, company.Defaults{
		Location:      location,
		WorkStartTime: cfg.Tenant.WorkStartTime,
	}, auditSvc)
	positionSvc := positionService.NewPositionService(repos.positions)
	holidaySvc := holidayService.NewHolidayService(repos.holidays)
	employeeSvc := employeeService.NewEmployeeService(repos.employees, positionSvc, auditSvc, cfg.Tenant.LeaveQuota)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendances, companySvc, holidaySvc, subscriptionSvc, auditSvc)
	leaveSvc := leaveService.NewLeaveService(
		repos.transactor,
		repos.leaves,
		repos.employees,
		repos.attendances,
		companySvc,
		holidaySvc,
		subscriptionSvc,
		auditSvc,
	)
	payrollSvc := payrollService.NewPayrollService(
		repos.transactor,
		repos.payrolls,
		repos.employees,
		repos.attendances,
		positionSvc,
		companySvc,
		subscriptionSvc,
		auditSvc,
	)
	dashboardSvc := dashboardService.NewDashboardService(repos.dashboard, repos.payrolls, leaveSvc, companySvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{Logger: logger, AllowedOrigins: cfg.App.AllowedOrigins},
		JWTService,
		subscriptionSvc,
		appHTTP.Handlers{
			Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
			Leave:        appHTTP.NewLeaveHandler(leaveSvc),
			Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
			Company:      appHTTP.NewCompanyHandler(companySvc),
			Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
			Master:       appHTTP.NewMasterHandler(positionSvc),
			Holiday:      appHTTP.NewHolidayHandler(holidaySvc),
			Audit:        appHTTP.NewAuditHandler(auditSvc),
			Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
			Subscription: appHTTP.NewSubscriptionHandler(subscriptionSvc),
		},
	)

	if cfg.Database.Driver == "memory" {
		if err := seedDemoTenant(ctx, repos, cfg, JWTService); err != nil {
			return err
		}
	}

	scheduler := cron.NewScheduler()
	cron.NewSubscriptionJobs(subscriptionSvc, cfg.Subscription.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "storage", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (repositories, func(), error) {
	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		slog.Warn("Using in-memory storage, data is lost on restart")
		return repositories{
			transactor:    store,
			companies:     store.Companies(),
			subscriptions: store.Subscriptions(),
			positions:     store.Positions(),
			employees:     store.Employees(),
			holidays:      store.Holidays(),
			attendances:   store.Attendances(),
			leaves:        store.Leaves(),
			payrolls:      store.Payrolls(),
			audits:        store.Audits(),
			dashboard:     store.Dashboard(),
		}, func() {}, nil
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns:        int32(cfg.Database.MaxConns),
			MaxConnLifetime: 30 * time.Minute,
		})
		if err != nil {
			return repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repositories{
			transactor:    postgresql.NewTransactor(db),
			companies:     postgresql.NewCompanyRepository(db),
			subscriptions: postgresql.NewSubscriptionRepository(db),
			positions:     postgresql.NewPositionRepository(db),
			employees:     postgresql.NewEmployeeRepository(db),
			holidays:      postgresql.NewHolidayRepository(db),
			attendances:   postgresql.NewAttendanceRepository(db),
			leaves:        postgresql.NewLeaveRequestRepository(db),
			payrolls:      postgresql.NewPayrollRepository(db),
			audits:        postgresql.NewAuditRepository(db),
			dashboard:     postgresql.NewDashboardRepository(db),
		}, db.Close, nil
	}
}

// seedDemoTenant gives the in-memory server a company to work against and logs an owner token for it.
func seedDemoTenant(ctx context.Context, repos repositories, cfg *config.Config, JWTService jwt.Service) error {
	ids, err := fixtures.SeedCompany(ctx, fixtures.Repositories{
		Companies:     repos.companies,
		Subscriptions: repos.subscriptions,
		Positions:     repos.positions,
		Employees:     repos.employees,
		Holidays:      repos.holidays,
	}, "Demo Company", cfg.Tenant.Timezone, time.Now())
	if err != nil {
		return fmt.Errorf("failed to seed demo tenant: %w", err)
	}

	token, expiresAt, err := JWTService.GenerateAccessToken(user.Principal{
		UserID:     "demo-owner",
		EmployeeID: &ids.OwnerEmployeeID,
		CompanyID:  ids.CompanyID,
		Role:       user.RoleOwner,
	})
	if err != nil {
		return fmt.Errorf("failed to issue demo token: %w", err)
	}
	slog.Info("Demo tenant ready",
		"company_id", ids.CompanyID,
		"owner_employee_id", ids.OwnerEmployeeID,
		"access_token", token,
		"expires_at", time.Unix(expiresAt, 0).UTC(),
	)
	return nil
}
