package authflow

// Well-known routes the guards redirect to.
const (
	RouteHome          = "/"
	RouteLogin         = "/login"
	RouteSignup        = "/signup"
	RouteProfileCreate = "/profile/create"
)

// Decision is a route-guard verdict. When Allow is false, RedirectTo names
// the route to go to instead; Next preserves the attempted location so the
// flow can return there after authentication completes.
type Decision struct {
	Allow      bool
	RedirectTo string
	Next       string
}

// RequireAuth gates protected routes. Only an authenticated session passes;
// in-progress flows resume where they left off instead of bouncing to the
// login screen. While the startup probe is still loading, the caller should
// hold rendering (no redirect target is offered).
func RequireAuth(status Status, target string) Decision {
	switch status {
	case StatusAuthenticated:
		return Decision{Allow: true}
	case StatusLoading:
		return Decision{}
	case StatusOTPSent:
		return Decision{RedirectTo: RouteSignup, Next: target}
	case StatusProfilePending:
		return Decision{RedirectTo: RouteProfileCreate, Next: target}
	default:
		return Decision{RedirectTo: RouteLogin, Next: target}
	}
}

// PublicOnly gates login/signup screens: an authenticated user is sent home.
func PublicOnly(status Status) Decision {
	if status == StatusAuthenticated {
		return Decision{RedirectTo: RouteHome}
	}
	return Decision{Allow: true}
}
