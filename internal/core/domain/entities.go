package domain

import "time"

// Role represents account role in the system
type Role string

const (
	// RolePreparer creates and owns Will documents ("WA" in the original fixtures)
	RolePreparer Role = "WA"
	// RoleAdministrator reviews every document ("PO" in the original fixtures)
	RoleAdministrator Role = "PO"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RolePreparer, RoleAdministrator:
		return true
	default:
		return false
	}
}

// Label returns the human readable role name
func (r Role) Label() string {
	switch r {
	case RolePreparer:
		return "preparer"
	case RoleAdministrator:
		return "administrator"
	default:
		return "unknown"
	}
}

// Account represents a registered person
type Account struct {
	ID         string
	Username   string // email or 10-digit mobile, unique
	SecretHash string // bcrypt hash, never leaves the service layer
	Role       Role
	NationalID string // Aadhaar, 12 digits
	TaxID      string // PAN, 10 characters
	CreatedAt  time.Time
}

// Redacted returns a copy of the account without its secret
func (a Account) Redacted() Account {
	a.SecretHash = ""
	return a
}

// Language of a Will document
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageMarathi Language = "Marathi"
)

// IsValid reports whether l is a supported language
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageMarathi:
		return true
	default:
		return false
	}
}

// Status of a Will document
type Status string

const (
	StatusDraft          Status = "Draft"
	StatusSubmitted      Status = "Submitted"
	StatusFullyPaid      Status = "Fully Paid"
	StatusReadyForReview Status = "Ready for Review"
	StatusFinalized      Status = "Finalized"
)

// transitions lists the only status moves allowed after creation.
var transitions = map[Status]Status{
	StatusDraft:          StatusSubmitted,
	StatusSubmitted:      StatusFullyPaid,
	StatusFullyPaid:      StatusReadyForReview,
	StatusReadyForReview: StatusFinalized,
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusFullyPaid, StatusReadyForReview, StatusFinalized:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a document in status s may move to next
func (s Status) CanTransitionTo(next Status) bool {
	to, ok := s.Next()
	return ok && to == next
}

// Next returns the status that follows s, if any
func (s Status) Next() (Status, bool) {
	to, ok := transitions[s]
	return to, ok
}

// PaymentStatus of a Will document
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// EmptyFormData is the serialized form data of a new draft
const EmptyFormData = "{}"

// Document represents one Will drafting case owned by a single account
type Document struct {
	ID            string
	OwnerID       string
	Language      Language
	Status        Status
	PaymentStatus PaymentStatus
	FormData      string
	CreatedAt     time.Time
}

// Session represents the currently authenticated account slot
type Session struct {
	ID        string
	AccountID string
	Username  string
	Role      Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session is past its expiry at now
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
