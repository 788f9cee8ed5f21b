package session

import "testing"

func TestRoleIsValid(t *testing.T) {
	tests := []struct {
		role  Role
		valid bool
	}{
		{RoleUser, true},
		{RoleAdmin, true},
		{Role("user"), false},
		{Role("ROOT"), false},
		{Role(""), false},
	}
	for _, tt := range tests {
		if got := tt.role.IsValid(); got != tt.valid {
			t.Errorf("Role(%q).IsValid() = %v, want %v", tt.role, got, tt.valid)
		}
	}
}

func TestSessionIsAuthenticated(t *testing.T) {
	empty := Session{}
	if empty.IsAuthenticated() {
		t.Error("empty session should not be authenticated")
	}
	if !empty.IsEmpty() {
		t.Error("empty session should report IsEmpty")
	}

	s := Session{Token: "t1", Role: RoleUser, Username: "alice"}
	if !s.IsAuthenticated() {
		t.Error("session with token should be authenticated")
	}
	if s.IsEmpty() {
		t.Error("populated session should not report IsEmpty")
	}
}

func TestSessionIsComplete(t *testing.T) {
	tests := []struct {
		name     string
		s        Session
		complete bool
	}{
		{"all fields", Session{Token: "t", Role: RoleAdmin, Username: "a"}, true},
		{"empty", Session{}, false},
		{"token only", Session{Token: "t"}, false},
		{"missing username", Session{Token: "t", Role: RoleUser}, false},
		{"missing token", Session{Role: RoleUser, Username: "a"}, false},
		{"unknown role", Session{Token: "t", Role: "SUPER", Username: "a"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsComplete(); got != tt.complete {
				t.Errorf("IsComplete() = %v, want %v", got, tt.complete)
			}
		})
	}
}
