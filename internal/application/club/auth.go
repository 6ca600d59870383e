package club

import (
	"context"
	"log/slog"

	"runclub/internal/adapters/storage/snapshot"
	"runclub/internal/domain/account"
	"runclub/internal/domain/session"
)

// Authenticate verifies credentials and starts a session.
// PRE: email and secret provided
// POST: On success the session is bound to the account and persisted
// INVARIANT: Only approved accounts can hold a session
func (s *Store) Authenticate(ctx context.Context, email, secret string) (account.Account, error) {
	if email == "" || secret == "" {
		return account.Account{}, ErrInvalidCredentials
	}

	var acct account.Account
	found := false
	for i := range s.accounts {
		if s.accounts[i].EmailMatches(email) {
			acct = s.accounts[i]
			found = true
			break
		}
	}
	if !found {
		slog.Info("club_event", "event", "login_failed", "email", email, "reason", "not_found")
		return account.Account{}, ErrInvalidCredentials
	}

	if err := acct.CheckSecret(secret); err != nil {
		slog.Info("club_event", "event", "login_failed", "email", email, "reason", "wrong_secret")
		return account.Account{}, ErrInvalidCredentials
	}

	if acct.IsPending() {
		slog.Info("club_event", "event", "login_blocked", "email", email, "reason", "pending_approval")
		return account.Account{}, ErrPendingApproval
	}

	s.session = session.State{Account: acct, Authenticated: true}
	if err := s.saveSession(ctx); err != nil {
		return account.Account{}, err
	}

	slog.Info("club_event", "event", "login_success", "email", email, "role", acct.Role)
	return acct, nil
}

// Logout clears the session unconditionally.
// POST: No session is active; the session snapshot is removed
func (s *Store) Logout(ctx context.Context) error {
	s.session = session.State{}
	if err := s.deps.Snapshots.Delete(ctx, snapshot.KeySession); err != nil {
		return err
	}
	slog.Info("club_event", "event", "logout")
	return nil
}

// CurrentAccount returns the account bound to the active session, refreshed
// from the account collection so approvals made during the session are
// visible.
// INVARIANT: Store state is not mutated
func (s *Store) CurrentAccount() (account.Account, bool) {
	if !s.session.Active() {
		return account.Account{}, false
	}
	if acct, ok := s.findAccount(s.session.Account.ID); ok {
		return acct, true
	}
	return s.session.Account, true
}
