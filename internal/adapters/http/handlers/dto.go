package handlers

import (
	"time"

	"willeasy/internal/core/domain"
)

// AccountResponse is the public view of an account; the secret never appears
type AccountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	RoleLabel string    `json:"role_label"`
	Aadhaar   string    `json:"aadhaar"`
	PAN       string    `json:"pan"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountResponse converts a domain account
func NewAccountResponse(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Role:      string(a.Role),
		RoleLabel: a.Role.Label(),
		Aadhaar:   a.NationalID,
		PAN:       a.TaxID,
		CreatedAt: a.CreatedAt,
	}
}

// WillResponse is the public view of a will
type WillResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Language      string    `json:"language"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	FormData      string    `json:"form_data"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewWillResponse converts a domain document
func NewWillResponse(d *domain.Document) *WillResponse {
	return &WillResponse{
		ID:            d.ID,
		UserID:        d.OwnerID,
		Language:      string(d.Language),
		Status:        string(d.Status),
		PaymentStatus: string(d.PaymentStatus),
		FormData:      d.FormData,
		CreatedAt:     d.CreatedAt,
	}
}

// NewWillResponses converts a list, keeping order; never returns nil
func NewWillResponses(docs []*domain.Document) []*WillResponse {
	out := make([]*WillResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, NewWillResponse(d))
	}
	return out
}

// SessionResponse is returned after a successful sign-in
type SessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *AccountResponse `json:"user"`
}
