package run

import (
	"errors"
	"strings"
	"time"
)

// Approval status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Domain errors
var (
	ErrEmptyCreatorID  = errors.New("creator ID cannot be empty")
	ErrEmptyLocation   = errors.New("location cannot be empty")
	ErrEmptyProgram    = errors.New("program cannot be empty")
	ErrZeroScheduledAt = errors.New("scheduled time cannot be zero")
	ErrAlreadyApproved = errors.New("run is already approved")
)

// Run represents a scheduled group run. CreatorName is a denormalized
// snapshot of the creator's name taken at creation time; it is not updated
// if the account later changes.
type Run struct {
	ID             string    `json:"id"`
	CreatorID      string    `json:"creatorId"`
	CreatorName    string    `json:"creatorName"`
	Location       string    `json:"location"`
	Program        string    `json:"program"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	ApprovalStatus string    `json:"approvalStatus"`
	Attendees      []string  `json:"attendees"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate checks if the Run has valid data.
// PRE: Run struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Run) Validate() error {
	if strings.TrimSpace(r.CreatorID) == "" {
		return ErrEmptyCreatorID
	}
	if strings.TrimSpace(r.Location) == "" {
		return ErrEmptyLocation
	}
	if strings.TrimSpace(r.Program) == "" {
		return ErrEmptyProgram
	}
	if r.ScheduledAt.IsZero() {
		return ErrZeroScheduledAt
	}
	return nil
}

// HasAttendee reports whether the account is in the attendee set.
// INVARIANT: Run fields are not mutated
func (r *Run) HasAttendee(accountID string) bool {
	for _, id := range r.Attendees {
		if id == accountID {
			return true
		}
	}
	return false
}

// AddAttendee appends an account to the attendee set. Insertion order is
// preserved for display; the set never holds duplicates.
// PRE: accountID is non-empty
// POST: accountID is present exactly once
func (r *Run) AddAttendee(accountID string) {
	if r.HasAttendee(accountID) {
		return
	}
	r.Attendees = append(r.Attendees, accountID)
}

// RemoveAttendee removes an account from the attendee set if present.
// POST: accountID is not present; relative order of the rest is unchanged
func (r *Run) RemoveAttendee(accountID string) {
	kept := r.Attendees[:0]
	for _, id := range r.Attendees {
		if id != accountID {
			kept = append(kept, id)
		}
	}
	r.Attendees = kept
}

// IsApproved returns true if the run has passed the approval gate.
// INVARIANT: Run fields are not mutated
func (r *Run) IsApproved() bool {
	return r.ApprovalStatus == StatusApproved
}

// IsPending returns true if the run is awaiting admin approval.
// INVARIANT: Run fields are not mutated
func (r *Run) IsPending() bool {
	return r.ApprovalStatus == StatusPending
}

// Approve transitions the run from pending to approved. Approved is terminal.
// PRE: Run is in pending status
// POST: ApprovalStatus is approved
func (r *Run) Approve() error {
	if r.ApprovalStatus == StatusApproved {
		return ErrAlreadyApproved
	}
	r.ApprovalStatus = StatusApproved
	return nil
}
