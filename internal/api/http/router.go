package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/hr-console/internal/access"
	"github.com/spec-kit/hr-console/internal/api/http/handlers"
	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/observability"
)

// PageRoute binds a console path to the view it mounts and the guard level it requires.
type PageRoute struct {
	Path  string
	Page  string
	Level access.Level
}

var pages = []PageRoute{
	{domain.PathHome, "home", access.Public},
	{domain.PathJobDetails, "job_details", access.Public},
	{domain.PathLogin, "login", access.Public},

	{domain.PathChangePassword, "change_password", access.Authenticated},
	{domain.PathSetup, "setup", access.Authenticated},
	{domain.PathEmployeeOnboard, "employee_onboard", access.Authenticated},

	{domain.PathAdminDashboard, "admin_dashboard", access.Gated},
	{domain.PathEmployeeList, "employee_list", access.Gated},
	{domain.PathEmployeeAdd, "employee_add", access.Gated},
	{domain.PathEmployeeJobHistory, "employee_job_history", access.Gated},
	{domain.PathEmployeeDocuments, "employee_documents", access.Gated},
	{domain.PathJobPostings, "job_postings", access.Gated},
	{domain.PathApplications, "applications", access.Gated},
	{domain.PathResumeParsing, "resume_parsing", access.Gated},
	{domain.PathOnboardingWorkflows, "onboarding_workflows", access.Gated},
	{domain.PathInterviews, "interviews", access.Gated},
	{domain.PathOnboardingProcess, "onboarding_process", access.Gated},
	{domain.PathTimeTracking, "time_tracking", access.Gated},
	{domain.PathAttendanceRecords, "attendance_records", access.Gated},
	{domain.PathLeaveManagement, "leave_management", access.Gated},
	{domain.PathOvertimeManagement, "overtime_management", access.Gated},
	{domain.PathSalaryCalculation, "salary_calculation", access.Gated},
	{domain.PathPayrollCompliance, "payroll_compliance", access.Gated},

	{domain.PathEmployeeDashboard, "employee_dashboard", access.Gated},
	{domain.PathEmployeeProfile, "employee_profile", access.Gated},
	{domain.PathEmployeePayslips, "employee_payslips", access.Gated},
	{domain.PathEmployeeLeaveRequests, "employee_leave_requests", access.Gated},
	{domain.PathEmployeePerformance, "employee_performance", access.Gated},
	{domain.PathEmployeeDocumentManagement, "employee_document_management", access.Gated},

	{domain.PathHrDashboard, "hr_dashboard", access.Gated},
	{domain.PathRecruiterDashboard, "recruiter_dashboard", access.Gated},
	{domain.PathPayrollDashboard, "payroll_dashboard", access.Gated},
	{domain.PathManagerDashboard, "manager_dashboard", access.Gated},
	{domain.PathItSupportDashboard, "itsupport_dashboard", access.Gated},
	{domain.PathAuditorDashboard, "auditor_dashboard", access.Gated},
	{domain.PathTrainerDashboard, "trainer_dashboard", access.Gated},
	{domain.PathGuestDashboard, "guest_dashboard", access.Gated},
}

// Pages lists the console page table in registration order.
func Pages() []PageRoute {
	out := make([]PageRoute, len(pages))
	copy(out, pages)
	return out
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Console    *handlers.ConsoleHandler
	Pages      *handlers.PageHandler
	Proxy      *handlers.ProxyHandler
	Guard      *access.Guard
	Metrics    *observability.Metrics
	LoginLimit fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	loginLimit := cfg.LoginLimit
	if loginLimit == nil {
		loginLimit = func(c *fiber.Ctx) error { return c.Next() }
	}
	authenticated := cfg.Guard.Require(access.Authenticated)

	app.Post(domain.PathLogin, loginLimit, cfg.Auth.Login)
	app.Post(domain.PathLogout, cfg.Auth.Logout)
	app.Post(domain.PathChangePassword, authenticated, cfg.Auth.ChangePassword)
	app.Post(domain.PathSetup, authenticated, cfg.Console.CompleteSetup)
	app.Post(domain.PathEmployeeOnboard, authenticated, cfg.Console.CompleteOnboarding)
	app.Get(domain.PathMyDashboard, authenticated, cfg.Pages.MyDashboard)

	app.All("/api/*", cfg.Proxy.Forward)

	for _, p := range pages {
		if p.Level == access.Public {
			app.Get(p.Path, cfg.Pages.Render(p.Page))
			continue
		}
		app.Get(p.Path, cfg.Guard.Require(p.Level), cfg.Pages.Render(p.Page))
	}

	app.Use(cfg.Pages.NotFound)
}
