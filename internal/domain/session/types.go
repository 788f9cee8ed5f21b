// Package session contains the domain types for the client's authentication state.
package session

// Role represents the authorization level granted by the backend.
type Role string

const (
	// RoleUser has access to the summarizer.
	RoleUser Role = "USER"
	// RoleAdmin additionally has access to the admin dashboard.
	RoleAdmin Role = "ADMIN"
)

// IsValid returns true if the role is a known valid role.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Session is the authoritative identity record. Token, Role, and Username are
// set and cleared together: there is no valid state where one is present and
// another absent.
type Session struct {
	// Token is the opaque bearer credential issued on login.
	Token string `json:"token"`
	// Role is the authorization level, absent iff Token is absent.
	Role Role `json:"role"`
	// Username is the display identity, absent iff Token is absent.
	Username string `json:"username"`
}

// IsAuthenticated reports whether a token is present.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// IsComplete reports whether the record honors the all-or-nothing invariant
// with every field populated. A partially written store record fails this
// check and must be treated as absent rather than guessed at.
func (s Session) IsComplete() bool {
	return s.Token != "" && s.Role.IsValid() && s.Username != ""
}

// IsEmpty reports whether no field is populated.
func (s Session) IsEmpty() bool {
	return s.Token == "" && s.Role == "" && s.Username == ""
}

// Store persists the session across process restarts. It is pure storage:
// no network access, no validation beyond record shape.
type Store interface {
	// Load returns the last persisted session, or the empty session if no
	// usable record exists.
	Load() (Session, error)
	// Save persists all three fields atomically from the caller's perspective.
	Save(s Session) error
	// Clear removes the persisted record. Clearing an absent record is not
	// an error.
	Clear() error
}
