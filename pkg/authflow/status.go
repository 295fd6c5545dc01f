package authflow

// Status is the client-side authentication state. The set is closed and
// every mutation goes through the transition table below.
type Status string

const (
	// StatusLoading is the initial state while the startup probe resolves.
	StatusLoading Status = "loading"
	StatusUnauthenticated Status = "unauthenticated"
	// StatusOTPSent: a code was issued and the user is expected to type it.
	StatusOTPSent Status = "otp_sent"
	// StatusProfilePending: the phone is verified for registration but the
	// profile has not been completed, so no session exists yet.
	StatusProfilePending Status = "profile_pending"
	StatusAuthenticated Status = "authenticated"
)

// validTransitions defines the allowed state machine transitions. Logout
// (to unauthenticated) is legal from every state, including
// unauthenticated itself: logout is idempotent.
var validTransitions = map[Status][]Status{
	StatusLoading:         {StatusAuthenticated, StatusUnauthenticated},
	StatusUnauthenticated: {StatusOTPSent, StatusUnauthenticated},
	StatusOTPSent:         {StatusAuthenticated, StatusProfilePending, StatusUnauthenticated},
	StatusProfilePending:  {StatusAuthenticated, StatusUnauthenticated},
	StatusAuthenticated:   {StatusUnauthenticated},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
