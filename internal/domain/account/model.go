package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
)

// Role constants
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Approval status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleMember}

// Domain errors
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrEmptyEmail      = errors.New("email cannot be empty")
	ErrInvalidEmail    = errors.New("email must contain '@'")
	ErrInvalidRole     = errors.New("role must be one of: admin, member")
	ErrEmptySecret     = errors.New("secret cannot be empty")
	ErrWrongSecret     = errors.New("incorrect secret")
	ErrAlreadyApproved = errors.New("account is already approved")
)

// Account holds state for the Account concept. Role is fixed at creation and
// no operation changes it afterward.
type Account struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CredentialHash string    `json:"credentialHash"`
	Role           string    `json:"role"`
	ApprovalStatus string    `json:"approvalStatus"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if len(a.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if !isValidRole(a.Role) {
		return ErrInvalidRole
	}
	return nil
}

// SetSecret hashes and stores a credential secret using bcrypt with cost 12.
// PRE: plaintext is non-empty
// POST: CredentialHash is set to bcrypt hash; plaintext is never stored
func (a *Account) SetSecret(plaintext string) error {
	if plaintext == "" {
		return ErrEmptySecret
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	a.CredentialHash = string(hash)
	return nil
}

// CheckSecret verifies a submitted secret against the stored hash.
// PRE: CredentialHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckSecret(plaintext string) error {
	if a.CredentialHash == "" {
		return ErrWrongSecret
	}
	err := bcrypt.CompareHashAndPassword([]byte(a.CredentialHash), []byte(plaintext))
	if err != nil {
		return ErrWrongSecret
	}
	return nil
}

// EmailMatches reports whether the account's email equals the given address,
// compared case-insensitively. Email uniqueness across the collection uses
// the same comparison.
// INVARIANT: Account fields are not mutated
func (a *Account) EmailMatches(email string) bool {
	return strings.EqualFold(a.Email, email)
}

// IsAdmin returns true if the account has admin role.
// INVARIANT: Account fields are not mutated
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsApproved returns true if the account has passed the approval gate.
// INVARIANT: Account fields are not mutated
func (a *Account) IsApproved() bool {
	return a.ApprovalStatus == StatusApproved
}

// IsPending returns true if the account is awaiting admin approval.
// INVARIANT: Account fields are not mutated
func (a *Account) IsPending() bool {
	return a.ApprovalStatus == StatusPending
}

// Approve transitions the account from pending to approved. Approved is
// terminal; there is no path back to pending.
// PRE: Account is in pending status
// POST: ApprovalStatus is approved
func (a *Account) Approve() error {
	if a.ApprovalStatus == StatusApproved {
		return ErrAlreadyApproved
	}
	a.ApprovalStatus = StatusApproved
	return nil
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
