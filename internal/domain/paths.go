package domain

// Website routes.
const (
	PathHome       = "/"
	PathJobDetails = "/job-listing/:id"
	PathLogin      = "/auth/login"
)

// Auth action routes.
const (
	PathLogout         = "/auth/logout"
	PathChangePassword = "/auth/change-password"
	PathMyDashboard    = "/me/dashboard"
)

// Administrator console routes.
const (
	PathAdminDashboard = "/dashboard"
	PathSetup          = "/setup"

	PathEmployeeList       = "/employees/all"
	PathEmployeeAdd        = "/employees/add"
	PathEmployeeJobHistory = "/employees/job-history"
	PathEmployeeDocuments  = "/employees/documents"

	PathJobPostings         = "/onboarding/job-postings"
	PathApplications        = "/onboarding/applications"
	PathResumeParsing       = "/onboarding/resume-parsing"
	PathOnboardingWorkflows = "/onboarding/onboarding-workflows"
	PathInterviews          = "/onboarding/interviews"
	PathOnboardingProcess   = "/onboarding/onboarding-process"

	PathTimeTracking       = "/attendance/time-tracking"
	PathAttendanceRecords  = "/attendance/attendance-records"
	PathLeaveManagement    = "/attendance/leave-management"
	PathOvertimeManagement = "/attendance/overtime-management"

	PathSalaryCalculation = "/payroll/salary-calculation"
	PathPayrollCompliance = "/payroll/payroll-compliance"
)

// Employee self-service routes.
const (
	PathEmployeeOnboard            = "/employee/onboard"
	PathEmployeeDashboard          = "/employee/dashboard"
	PathEmployeeProfile            = "/employee/profile"
	PathEmployeePayslips           = "/employee/payslips"
	PathEmployeeLeaveRequests      = "/employee/leave-requests"
	PathEmployeePerformance        = "/employee/performance"
	PathEmployeeDocumentManagement = "/employee/document-management"
)

// Per-role dashboards outside the administrator and employee sections.
const (
	PathHrDashboard        = "/hr/dashboard"
	PathRecruiterDashboard = "/recruiter/dashboard"
	PathPayrollDashboard   = "/payroll/dashboard"
	PathManagerDashboard   = "/manager/dashboard"
	PathItSupportDashboard = "/itsupport/dashboard"
	PathAuditorDashboard   = "/auditor/dashboard"
	PathTrainerDashboard   = "/trainer/dashboard"
	PathGuestDashboard     = "/guest/dashboard"
)
