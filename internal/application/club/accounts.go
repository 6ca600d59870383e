package club

import (
	"context"
	"errors"
	"log/slog"

	"runclub/internal/domain/account"
)

// Register creates a pending member account.
// PRE: name, email and secret are non-empty (form-level checks are the
// caller's job; the store only enforces domain rules)
// POST: Account appended with role=member, status=pending; accounts persisted
// INVARIANT: Email is unique case-insensitively; no session is started
func (s *Store) Register(ctx context.Context, name, email, secret string) (account.Account, error) {
	for i := range s.accounts {
		if s.accounts[i].EmailMatches(email) {
			slog.Info("club_event", "event", "register_failed", "email", email, "reason", "duplicate_email")
			return account.Account{}, ErrDuplicateEmail
		}
	}

	acct := account.Account{
		ID:             s.deps.NewID(),
		Name:           name,
		Email:          email,
		Role:           account.RoleMember,
		ApprovalStatus: account.StatusPending,
		CreatedAt:      s.deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetSecret(secret); err != nil {
		return account.Account{}, err
	}

	s.accounts = append(s.accounts, acct)
	if err := s.saveAccounts(ctx); err != nil {
		return account.Account{}, err
	}

	slog.Info("club_event", "event", "registered", "email", email, "account_id", acct.ID)
	return acct, nil
}

// ApproveAccount moves a pending account through the approval gate.
// PRE: acting is an approved admin
// POST: Target account is approved; missing id is a silent no-op; calling
// twice leaves state identical to calling once
func (s *Store) ApproveAccount(ctx context.Context, acting account.Account, id string) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}

	for i := range s.accounts {
		if s.accounts[i].ID != id {
			continue
		}
		if err := s.accounts[i].Approve(); errors.Is(err, account.ErrAlreadyApproved) {
			return nil
		}
		if err := s.saveAccounts(ctx); err != nil {
			return err
		}
		slog.Info("club_event", "event", "account_approved", "account_id", id, "by", acting.ID)
		s.notifyAccountApproved(ctx, s.accounts[i])
		return nil
	}
	return nil
}

// RejectAccount removes an account from the collection entirely. Runs the
// account created or attends are left untouched; there is no cascade.
// PRE: acting is an approved admin
// POST: No account with the id exists; missing id is a silent no-op
func (s *Store) RejectAccount(ctx context.Context, acting account.Account, id string) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}

	for i := range s.accounts {
		if s.accounts[i].ID != id {
			continue
		}
		s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
		if err := s.saveAccounts(ctx); err != nil {
			return err
		}
		slog.Info("club_event", "event", "account_rejected", "account_id", id, "by", acting.ID)
		return nil
	}
	return nil
}

// PendingAccounts returns accounts awaiting approval, in registration order.
// POST: Returned slice is a read-only snapshot; mutating it has no effect
func (s *Store) PendingAccounts() []account.Account {
	var results []account.Account
	for i := range s.accounts {
		if s.accounts[i].IsPending() {
			results = append(results, s.accounts[i])
		}
	}
	return results
}
