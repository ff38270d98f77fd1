// Package session holds the per-connection authentication state gated by
// every privileged dispatch path.
package session

import "github.com/mxdserver/mxd/internal/privilege"

// Session is the mutable authentication state attached to one connection.
// It is created unauthenticated at accept and destroyed at disconnect;
// nothing outside Login and Logout may mutate it.
type Session struct {
	userID     uint32
	hasUser    bool
	privileges privilege.Privileges
}

// New returns a fresh, unauthenticated session.
func New() *Session {
	return &Session{}
}

// Authenticated reports whether a user is currently logged in.
func (s *Session) Authenticated() bool {
	return s.hasUser
}

// UserID returns the logged-in user's id and true, or (0, false) when
// unauthenticated.
func (s *Session) UserID() (uint32, bool) {
	if !s.hasUser {
		return 0, false
	}
	return s.userID, true
}

// HasPrivilege reports whether the session is authenticated and holds every
// bit of required. An unauthenticated session has the empty bitmap
// regardless of any bits a prior Login may have set.
func (s *Session) HasPrivilege(required privilege.Privileges) bool {
	return s.hasUser && s.privileges.Has(required)
}

// Login records a successful authentication, replacing any prior state. A
// failed login must never call Login; the caller leaves the session
// untouched instead.
func (s *Session) Login(userID uint32, privileges privilege.Privileges) {
	s.userID = userID
	s.hasUser = true
	s.privileges = privileges
}

// Logout clears the session back to its unauthenticated zero state.
func (s *Session) Logout() {
	s.userID = 0
	s.hasUser = false
	s.privileges = 0
}
