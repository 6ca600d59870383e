package session_test

import (
	"testing"

	"runclub/internal/domain/account"
	"runclub/internal/domain/session"
)

// TestState_Active tests the logged-in check.
func TestState_Active(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		want  bool
	}{
		{"zero state", session.State{}, false},
		{"authenticated with account", session.State{Account: account.Account{ID: "1"}, Authenticated: true}, true},
		{"authenticated without account", session.State{Authenticated: true}, false},
		{"account without flag", session.State{Account: account.Account{ID: "1"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}
