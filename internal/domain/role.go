package domain

// Role is the access-level tag assigned to a console user by the HR API.
type Role string

const (
	RoleAdministrator  Role = "Administrator"
	RoleHrManager      Role = "HrManager"
	RoleRecruiter      Role = "Recruiter"
	RoleEmployee       Role = "Employee"
	RolePayrollManager Role = "PayrollManager"
	RoleManager        Role = "Manager"
	RoleItSupport      Role = "ItSupport"
	RoleAuditor        Role = "Auditor"
	RoleTrainer        Role = "Trainer"
	RoleGuest          Role = "Guest"
)

var allRoles = []Role{
	RoleAdministrator,
	RoleHrManager,
	RoleRecruiter,
	RoleEmployee,
	RolePayrollManager,
	RoleManager,
	RoleItSupport,
	RoleAuditor,
	RoleTrainer,
	RoleGuest,
}

// Roles returns every enumerated role in declaration order.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole matches a wire value against the enumeration.
func ParseRole(value string) (Role, bool) {
	for _, r := range allRoles {
		if string(r) == value {
			return r, true
		}
	}
	return "", false
}

// Valid reports whether r is a member of the enumeration.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string {
	return string(r)
}
