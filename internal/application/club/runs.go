package club

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"runclub/internal/domain/account"
	"runclub/internal/domain/run"
)

// CreateRun creates a run on behalf of the current session's account.
// PRE: A session is active
// POST: Run appended with the creator as first attendee; admin-created runs
// are approved immediately, member-created runs start pending; runs persisted
func (s *Store) CreateRun(ctx context.Context, location string, scheduledAt time.Time, program string) (run.Run, error) {
	acting, ok := s.CurrentAccount()
	if !ok {
		return run.Run{}, ErrNotAuthenticated
	}

	status := run.StatusPending
	if acting.IsAdmin() {
		status = run.StatusApproved
	}

	r := run.Run{
		ID:             s.deps.NewID(),
		CreatorID:      acting.ID,
		CreatorName:    acting.Name,
		Location:       location,
		Program:        program,
		ScheduledAt:    scheduledAt,
		ApprovalStatus: status,
		Attendees:      []string{acting.ID},
		CreatedAt:      s.deps.Now(),
	}
	if err := r.Validate(); err != nil {
		return run.Run{}, err
	}

	s.runs = append(s.runs, r)
	if err := s.saveRuns(ctx); err != nil {
		return run.Run{}, err
	}

	slog.Info("club_event", "event", "run_created", "run_id", r.ID, "creator_id", acting.ID, "status", status)
	return cloneRun(r), nil
}

// ApproveRun moves a pending run through the approval gate.
// PRE: acting is an approved admin
// POST: Run is approved; missing id is a silent no-op; calling twice leaves
// state identical to calling once
func (s *Store) ApproveRun(ctx context.Context, acting account.Account, id string) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}

	i := s.findRun(id)
	if i < 0 {
		return nil
	}
	if err := s.runs[i].Approve(); errors.Is(err, run.ErrAlreadyApproved) {
		return nil
	}
	if err := s.saveRuns(ctx); err != nil {
		return err
	}

	slog.Info("club_event", "event", "run_approved", "run_id", id, "by", acting.ID)
	s.notifyRunApproved(ctx, s.runs[i])
	return nil
}

// RejectRun removes a run from the collection entirely.
// PRE: acting is an approved admin
// POST: No run with the id exists; missing id is a silent no-op
func (s *Store) RejectRun(ctx context.Context, acting account.Account, id string) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}

	i := s.findRun(id)
	if i < 0 {
		return nil
	}
	s.runs = append(s.runs[:i], s.runs[i+1:]...)
	if err := s.saveRuns(ctx); err != nil {
		return err
	}

	slog.Info("club_event", "event", "run_rejected", "run_id", id, "by", acting.ID)
	return nil
}

// JoinRun adds the current session's account to a run's attendees. No
// session, unknown run and repeat joins are all silent no-ops.
// POST: Account appears at most once in attendees; runs persisted on change
func (s *Store) JoinRun(ctx context.Context, id string) error {
	acting, ok := s.CurrentAccount()
	if !ok {
		return nil
	}

	i := s.findRun(id)
	if i < 0 || s.runs[i].HasAttendee(acting.ID) {
		return nil
	}

	s.runs[i].AddAttendee(acting.ID)
	if err := s.saveRuns(ctx); err != nil {
		return err
	}

	slog.Info("club_event", "event", "run_joined", "run_id", id, "account_id", acting.ID)
	return nil
}

// LeaveRun removes the current session's account from a run's attendees. No
// session and unknown run are silent no-ops.
// POST: Account is not in attendees; runs persisted on change
func (s *Store) LeaveRun(ctx context.Context, id string) error {
	acting, ok := s.CurrentAccount()
	if !ok {
		return nil
	}

	i := s.findRun(id)
	if i < 0 || !s.runs[i].HasAttendee(acting.ID) {
		return nil
	}

	s.runs[i].RemoveAttendee(acting.ID)
	if err := s.saveRuns(ctx); err != nil {
		return err
	}

	slog.Info("club_event", "event", "run_left", "run_id", id, "account_id", acting.ID)
	return nil
}

// ApprovedRuns returns approved runs sorted ascending by scheduled time.
// POST: Returned slice is a read-only snapshot; mutating it has no effect
func (s *Store) ApprovedRuns() []run.Run {
	var results []run.Run
	for i := range s.runs {
		if s.runs[i].IsApproved() {
			results = append(results, cloneRun(s.runs[i]))
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].ScheduledAt.Before(results[b].ScheduledAt)
	})
	return results
}

// PendingRuns returns runs awaiting approval, in creation order.
// POST: Returned slice is a read-only snapshot; mutating it has no effect
func (s *Store) PendingRuns() []run.Run {
	var results []run.Run
	for i := range s.runs {
		if s.runs[i].IsPending() {
			results = append(results, cloneRun(s.runs[i]))
		}
	}
	return results
}

// RunsForAccount returns every run whose attendee set contains the account.
// POST: Returned slice is a read-only snapshot; mutating it has no effect
func (s *Store) RunsForAccount(accountID string) []run.Run {
	var results []run.Run
	for i := range s.runs {
		if s.runs[i].HasAttendee(accountID) {
			results = append(results, cloneRun(s.runs[i]))
		}
	}
	return results
}
