// Package routing decides whether a navigation target may render or must
// redirect based on session state.
//
// The guard is a pure function of the requested destination and the current
// session. It performs no side effects and caches nothing: callers re-evaluate
// it on every navigation.
package routing

import "github.com/brieflyhq/briefly/internal/domain/session"

// Well-known destinations.
const (
	DestWelcome  = "/"
	DestHome     = "/home"
	DestLogin    = "/login"
	DestRegister = "/register"
	DestAdmin    = "/admin/dashboard"
)

// Decision is the guard's verdict for one navigation.
type Decision struct {
	// Allowed is true when the destination may render.
	Allowed bool
	// Redirect is the target to navigate to instead when Allowed is false.
	Redirect string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(target string) Decision {
	return Decision{Redirect: target}
}

// Evaluate decides whether dest may render for the given session.
//
// Unauthenticated users hitting the protected home destination are routed to
// account creation, not sign-in; that asymmetry is a product decision. The
// admin dashboard applies a stricter, independently evaluated policy: anyone
// who is not an authenticated ADMIN is sent to the login page. Unknown
// destinations fall through to the public welcome page.
func Evaluate(dest string, s session.Session) Decision {
	switch dest {
	case DestWelcome, DestLogin, DestRegister:
		// Public destinations are exempt from the guard entirely.
		return allow()
	case DestHome:
		if !s.IsAuthenticated() {
			return redirect(DestRegister)
		}
		return allow()
	case DestAdmin:
		if !s.IsAuthenticated() || s.Role != session.RoleAdmin {
			return redirect(DestLogin)
		}
		return allow()
	default:
		return redirect(DestWelcome)
	}
}
