package router

import (
	"strings"

	"mediswift/internal/logging"
)

// protectedPaths are compared by exact match against the query-stripped
// target. Parameterized routes can therefore never be protected; the
// original router behaves the same way and the narrow check is kept
// deliberately.
var protectedPaths = []string{
	"/checkout",
	"/profile",
	"/wallet",
	"/refill-reminders",
}

// GuardDecision is the outcome of the navigation guard.
type GuardDecision struct {
	Allowed bool
	// RedirectTo is set when Allowed is false. The originally requested
	// path is discarded; there is no return-to-target after login.
	RedirectTo string
	// Message is a warning toast to emit on denial.
	Message string
}

// Guard decides whether the target path may be navigated to given the
// session flag. Denials redirect to the login view.
func Guard(raw string, hasSession bool) GuardDecision {
	path := raw
	if idx := strings.Index(raw, "?"); idx != -1 {
		path = raw[:idx]
	}

	for _, p := range protectedPaths {
		if path == p && !hasSession {
			logging.Router("Guard denied %q (no session), redirecting to /login", raw)
			return GuardDecision{
				Allowed:    false,
				RedirectTo: "/login",
				Message:    "Please login to continue",
			}
		}
	}
	return GuardDecision{Allowed: true}
}
