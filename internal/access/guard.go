package access

import (
	"github.com/spec-kit/hr-console/internal/domain"
)

// Level marks the preconditions a route requires.
type Level int

const (
	// Public routes render for everyone.
	Public Level = iota
	// Authenticated routes only need a session; completion gates are not applied.
	Authenticated
	// Gated routes need a session and every completion flag that applies to the role.
	Gated
)

func (l Level) String() string {
	switch l {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Gated:
		return "gated"
	default:
		return "unknown"
	}
}

// Reason explains a guard decision.
type Reason string

const (
	ReasonAllowed           Reason = "allowed"
	ReasonNoSession         Reason = "no_session"
	ReasonSetupPending      Reason = "setup_pending"
	ReasonOnboardingPending Reason = "onboarding_pending"
)

// Decision is the outcome of evaluating one navigation.
type Decision struct {
	Allowed  bool
	Redirect string
	Reason   Reason
}

func allow() Decision {
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

func redirect(to string, reason Reason) Decision {
	return Decision{Redirect: to, Reason: reason}
}

// Evaluate decides whether a navigation to path may render. Checks run in a fixed order:
// session presence, then the Administrator setup gate, then the Employee onboarding gate.
// The gates are role-exclusive.
func Evaluate(level Level, s domain.Session, hasSession bool, path string) Decision {
	if level == Public {
		return allow()
	}
	if !hasSession {
		return redirect(domain.PathLogin, ReasonNoSession)
	}
	if level == Authenticated {
		return allow()
	}

	switch s.Role {
	case domain.RoleAdministrator:
		if !s.InitialSetupComplete && path != domain.PathSetup {
			return redirect(domain.PathSetup, ReasonSetupPending)
		}
	case domain.RoleEmployee:
		if !s.OnboardingComplete && path != domain.PathEmployeeOnboard {
			return redirect(domain.PathEmployeeOnboard, ReasonOnboardingPending)
		}
	}
	return allow()
}
