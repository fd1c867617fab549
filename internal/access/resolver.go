package access

import "github.com/spec-kit/hr-console/internal/domain"

var roleDashboards = map[domain.Role]string{
	domain.RoleAdministrator:  domain.PathAdminDashboard,
	domain.RoleHrManager:      domain.PathHrDashboard,
	domain.RoleRecruiter:      domain.PathRecruiterDashboard,
	domain.RoleEmployee:       domain.PathEmployeeDashboard,
	domain.RolePayrollManager: domain.PathPayrollDashboard,
	domain.RoleManager:        domain.PathManagerDashboard,
	domain.RoleItSupport:      domain.PathItSupportDashboard,
	domain.RoleAuditor:        domain.PathAuditorDashboard,
	domain.RoleTrainer:        domain.PathTrainerDashboard,
	domain.RoleGuest:          domain.PathGuestDashboard,
}

// DashboardFor returns the default dashboard of an enumerated role.
func DashboardFor(role domain.Role) (string, bool) {
	route, ok := roleDashboards[role]
	return route, ok
}

// LandingRoute returns where a user with role lands after login. Values outside the
// enumeration fall back to the public home route.
func LandingRoute(role domain.Role) string {
	if route, ok := DashboardFor(role); ok {
		return route
	}
	return domain.PathHome
}
