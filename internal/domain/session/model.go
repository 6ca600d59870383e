package session

import (
	"runclub/internal/domain/account"
)

// State is the persisted authentication state for the active client. It
// embeds the full resolved account rather than just its ID, so the snapshot
// is self-describing; on restore the account must still exist in the account
// collection or the state is discarded.
type State struct {
	Account       account.Account `json:"account"`
	Authenticated bool            `json:"authenticated"`
}

// Active reports whether the state represents a logged-in account.
// INVARIANT: State fields are not mutated
func (s *State) Active() bool {
	return s.Authenticated && s.Account.ID != ""
}
