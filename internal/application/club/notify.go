package club

import (
	"context"
	"fmt"
	"log/slog"

	"runclub/internal/adapters/email"
	"runclub/internal/domain/account"
	"runclub/internal/domain/run"
)

// Approval notifications are best-effort: the state change has already been
// persisted by the time a send happens, so failures are logged and dropped.

func (s *Store) notifyAccountApproved(ctx context.Context, acct account.Account) {
	req := email.SendRequest{
		To:      []string{acct.Email},
		Subject: "Your run club account has been approved",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>An admin has approved your account. You can now log in, join runs and propose your own.</p>",
			acct.Name,
		),
	}
	if _, err := s.deps.Sender.Send(ctx, req); err != nil {
		slog.Error("club_event", "event", "notify_failed", "kind", "account_approved", "account_id", acct.ID, "error", err)
	}
}

func (s *Store) notifyRunApproved(ctx context.Context, r run.Run) {
	creator, ok := s.findAccount(r.CreatorID)
	if !ok {
		return
	}
	req := email.SendRequest{
		To:      []string{creator.Email},
		Subject: fmt.Sprintf("Your run at %s has been approved", r.Location),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your %s run at %s on %s is now listed for everyone to join.</p>",
			creator.Name, r.Program, r.Location, r.ScheduledAt.Format("Mon 2 Jan 2006 15:04"),
		),
	}
	if _, err := s.deps.Sender.Send(ctx, req); err != nil {
		slog.Error("club_event", "event", "notify_failed", "kind", "run_approved", "run_id", r.ID, "error", err)
	}
}
