package services

import (
	"slices"

	"orderdesk/internal/core/domain/model/identity"
)

// Outcome is the verdict of a RouteGuard check.
type Outcome int

const (
	Allowed Outcome = iota
	RedirectLogin
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case Allowed:
		return "ALLOWED"
	case RedirectLogin:
		return "REDIRECT_LOGIN"
	case RedirectHome:
		return "REDIRECT_HOME"
	}
	return "UNKNOWN"
}

// Resource describes what a protected route requires. Empty RequiredRoles means any
// authenticated actor. LoginPage marks the login resource itself.
type Resource struct {
	RequiresAuth  bool
	RequiredRoles []identity.Role
	LoginPage     bool
}

// AccessDecision is the result of RouteGuard.Allow. ResumePath is only set with
// RedirectLogin and holds the path to return to after login.
type AccessDecision struct {
	Outcome    Outcome
	ResumePath string
}

func (d AccessDecision) IsAllowed() bool {
	return d.Outcome == Allowed
}

// RouteGuard decides whether an actor may open a resource.
type RouteGuard struct{}

func NewRouteGuard() RouteGuard {
	return RouteGuard{}
}

// Allow evaluates actor against resource. A nil actor is unauthenticated.
//
// Decisions:
//   - protected resource, no actor: RedirectLogin with ResumePath = requestedPath
//   - login resource, authenticated actor: RedirectHome
//   - role not in RequiredRoles: RedirectHome
//   - otherwise Allowed
func (RouteGuard) Allow(actor *identity.Actor, resource Resource, requestedPath string) AccessDecision {
	authenticated := actor.Validate() == nil
	protected := resource.RequiresAuth || len(resource.RequiredRoles) > 0

	if protected && !authenticated {
		return AccessDecision{Outcome: RedirectLogin, ResumePath: requestedPath}
	}
	if resource.LoginPage && authenticated {
		return AccessDecision{Outcome: RedirectHome}
	}
	if len(resource.RequiredRoles) > 0 && !slices.Contains(resource.RequiredRoles, actor.Role()) {
		return AccessDecision{Outcome: RedirectHome}
	}
	return AccessDecision{Outcome: Allowed}
}
