// Package guard gates access to authenticated operations. It is a
// two-state machine driven solely by the session store: Guest until a
// login succeeds, back to Guest on logout or on any AuthenticationError
// observed from the backend.
package guard

import (
	"errors"

	"github.com/fintrack-dev/fintrack/internal/apierr"
)

// State is the guard's authentication state.
type State int

const (
	// Guest means no valid session; only login and registration are open.
	Guest State = iota
	// Authenticated means a session is present and protected operations
	// are open.
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "guest"
}

// Guard tracks the current state.
type Guard struct {
	state State
}

// New builds a Guard from the session store's IsAuthenticated read.
func New(authenticated bool) *Guard {
	g := &Guard{state: Guest}
	if authenticated {
		g.state = Authenticated
	}
	return g
}

// State returns the current state.
func (g *Guard) State() State {
	return g.state
}

// Require errors when a protected operation is attempted as Guest.
func (g *Guard) Require() error {
	if g.state != Authenticated {
		return &apierr.AuthenticationError{Detail: "not logged in; run 'fintrack login' first"}
	}
	return nil
}

// RequireGuest errors when login or registration is attempted while a
// session is already active.
func (g *Guard) RequireGuest() error {
	if g.state != Guest {
		return errors.New("already logged in; run 'fintrack logout' first")
	}
	return nil
}

// Promote records a successful login.
func (g *Guard) Promote() {
	g.state = Authenticated
}

// Demote records a logout or an invalidated session.
func (g *Guard) Demote() {
	g.state = Guest
}

// Observe inspects an operation error: an AuthenticationError means the
// session is invalid, so the guard demotes to Guest and reports true.
// Every other error leaves the state alone.
func (g *Guard) Observe(err error) bool {
	var authErr *apierr.AuthenticationError
	if errors.As(err, &authErr) {
		g.Demote()
		return true
	}
	return false
}
