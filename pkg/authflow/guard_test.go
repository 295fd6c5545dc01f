package authflow

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusLoading, StatusAuthenticated, true},
		{StatusLoading, StatusUnauthenticated, true},
		{StatusLoading, StatusOTPSent, false},
		{StatusUnauthenticated, StatusOTPSent, true},
		{StatusUnauthenticated, StatusAuthenticated, false},
		{StatusOTPSent, StatusAuthenticated, true},
		{StatusOTPSent, StatusProfilePending, true},
		{StatusProfilePending, StatusAuthenticated, true},
		{StatusProfilePending, StatusOTPSent, false},
		{StatusAuthenticated, StatusUnauthenticated, true},
		{StatusAuthenticated, StatusOTPSent, false},
		// Logout is legal from everywhere, including when already out.
		{StatusUnauthenticated, StatusUnauthenticated, true},
		{StatusOTPSent, StatusUnauthenticated, true},
		{StatusProfilePending, StatusUnauthenticated, true},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	cases := []struct {
		status Status
		want   Decision
	}{
		{StatusAuthenticated, Decision{Allow: true}},
		{StatusLoading, Decision{}},
		{StatusOTPSent, Decision{RedirectTo: RouteSignup, Next: "/gardens"}},
		{StatusProfilePending, Decision{RedirectTo: RouteProfileCreate, Next: "/gardens"}},
		{StatusUnauthenticated, Decision{RedirectTo: RouteLogin, Next: "/gardens"}},
	}
	for _, tc := range cases {
		if got := RequireAuth(tc.status, "/gardens"); got != tc.want {
			t.Errorf("RequireAuth(%s): got %+v, want %+v", tc.status, got, tc.want)
		}
	}
}

func TestPublicOnly(t *testing.T) {
	if got := PublicOnly(StatusAuthenticated); got.Allow || got.RedirectTo != RouteHome {
		t.Fatalf("authenticated user should be sent home, got %+v", got)
	}
	for _, status := range []Status{StatusLoading, StatusUnauthenticated, StatusOTPSent, StatusProfilePending} {
		if got := PublicOnly(status); !got.Allow {
			t.Errorf("PublicOnly(%s): expected allow, got %+v", status, got)
		}
	}
}
