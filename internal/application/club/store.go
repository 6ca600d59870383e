package club

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"runclub/internal/adapters/email"
	"runclub/internal/adapters/storage/snapshot"
	"runclub/internal/domain/account"
	"runclub/internal/domain/run"
	"runclub/internal/domain/session"
)

// Bootstrap admin credentials. Seeded on Open when no account with this
// email exists yet.
const (
	BootstrapAdminName   = "Admin"
	BootstrapAdminEmail  = "admin@runclub.com"
	BootstrapAdminSecret = "admin123"
)

// Operation errors. Missing-id mutations are silent no-ops, not errors.
var (
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or secret")
	ErrPendingApproval    = errors.New("account is pending admin approval")
	ErrNotAuthenticated   = errors.New("you must be logged in")
	ErrUnauthorized       = errors.New("admin role required")
)

// Deps holds dependencies for the Store. Snapshots is required; the rest
// default to production implementations.
type Deps struct {
	Snapshots snapshot.Store
	Sender    email.Sender     // approval notifications; defaults to noop
	Now       func() time.Time // defaults to time.Now
	NewID     func() string    // defaults to uuid.NewString
}

// Store is the single in-process authority over accounts, runs and the
// session. It is the sole mutator of its collections; callers are assumed
// single-threaded and non-reentrant, so no locking is used. Every mutation
// synchronously persists the affected collection as a keyed JSON snapshot.
type Store struct {
	deps     Deps
	accounts []account.Account
	runs     []run.Run
	session  session.State
}

// Open loads persisted state and returns a ready Store.
// PRE: deps.Snapshots is non-nil
// POST: Bootstrap admin exists; a session referencing a missing account is
// discarded and its snapshot deleted
func Open(ctx context.Context, deps Deps) (*Store, error) {
	if deps.Snapshots == nil {
		return nil, errors.New("snapshot store is required")
	}
	if deps.Sender == nil {
		deps.Sender = email.NewNoopSender()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	s := &Store{deps: deps}

	if err := loadCollection(ctx, deps.Snapshots, snapshot.KeyAccounts, &s.accounts); err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if err := loadCollection(ctx, deps.Snapshots, snapshot.KeyRuns, &s.runs); err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}

	if err := s.seedAdmin(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}

	if err := s.restoreSession(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return s, nil
}

// seedAdmin injects the bootstrap admin account unless one with its email
// already exists.
func (s *Store) seedAdmin(ctx context.Context) error {
	for i := range s.accounts {
		if s.accounts[i].EmailMatches(BootstrapAdminEmail) {
			return nil
		}
	}

	admin := account.Account{
		ID:             s.deps.NewID(),
		Name:           BootstrapAdminName,
		Email:          BootstrapAdminEmail,
		Role:           account.RoleAdmin,
		ApprovalStatus: account.StatusApproved,
		CreatedAt:      s.deps.Now(),
	}
	if err := admin.SetSecret(BootstrapAdminSecret); err != nil {
		return err
	}

	s.accounts = append(s.accounts, admin)
	if err := s.saveAccounts(ctx); err != nil {
		return err
	}

	slog.Info("club_event", "event", "admin_seeded", "email", BootstrapAdminEmail)
	return nil
}

// restoreSession loads the persisted session and discards it when it no
// longer references an existing account.
func (s *Store) restoreSession(ctx context.Context) error {
	data, err := s.deps.Snapshots.Load(ctx, snapshot.KeySession)
	if errors.Is(err, snapshot.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var state session.State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to decode session snapshot: %w", err)
	}

	if state.Active() {
		if acct, ok := s.findAccount(state.Account.ID); ok {
			s.session = session.State{Account: acct, Authenticated: true}
			return nil
		}
	}

	// Stale session: referenced account is gone, treat as logged out.
	slog.Info("club_event", "event", "session_discarded", "account_id", state.Account.ID)
	return s.deps.Snapshots.Delete(ctx, snapshot.KeySession)
}

// findAccount returns a copy of the account with the given id.
func (s *Store) findAccount(id string) (account.Account, bool) {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return s.accounts[i], true
		}
	}
	return account.Account{}, false
}

// findRun returns the index of the run with the given id, or -1.
func (s *Store) findRun(id string) int {
	for i := range s.runs {
		if s.runs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) saveAccounts(ctx context.Context) error {
	return saveCollection(ctx, s.deps.Snapshots, snapshot.KeyAccounts, s.accounts)
}

func (s *Store) saveRuns(ctx context.Context) error {
	return saveCollection(ctx, s.deps.Snapshots, snapshot.KeyRuns, s.runs)
}

func (s *Store) saveSession(ctx context.Context) error {
	data, err := json.Marshal(s.session)
	if err != nil {
		return err
	}
	return s.deps.Snapshots.Save(ctx, snapshot.KeySession, data)
}

// loadCollection fills dest from the snapshot for key; a missing snapshot
// leaves dest empty.
func loadCollection[T any](ctx context.Context, store snapshot.Store, key string, dest *[]T) error {
	data, err := store.Load(ctx, key)
	if errors.Is(err, snapshot.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func saveCollection[T any](ctx context.Context, store snapshot.Store, key string, values []T) error {
	if values == nil {
		values = []T{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return store.Save(ctx, key, data)
}

// cloneRun returns a copy of the run whose attendee slice is independent of
// the store's, so callers can treat results as read-only snapshots.
func cloneRun(r run.Run) run.Run {
	r.Attendees = append([]string(nil), r.Attendees...)
	return r
}

// requireAdmin gates admin-only operations on the acting account.
func requireAdmin(acting account.Account) error {
	if !acting.IsAdmin() || !acting.IsApproved() {
		return ErrUnauthorized
	}
	return nil
}
