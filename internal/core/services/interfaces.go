package services

import (
	"context"

	"willeasy/internal/core/domain"
	"willeasy/internal/pkg/validation"
)

// Note: the HTTP handlers depend on these interfaces, not the concrete services

// AccountDirectory authenticates and registers accounts
type AccountDirectory interface {
	Authenticate(ctx context.Context, username, secret string) (*domain.Account, error)
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// DocumentRegistry creates, lists and advances wills
type DocumentRegistry interface {
	CreateDraft(ctx context.Context, ownerID string, language domain.Language) (*domain.Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error)
	ListAll(ctx context.Context) ([]*domain.Document, error)
	Advance(ctx context.Context, actor domain.Role, id string, to domain.Status) (*domain.Document, error)
}

// SignupWizard runs the three signup steps
type SignupWizard interface {
	Start(ctx context.Context, id validation.Identity) (*StartResult, error)
	VerifyOTP(ctx context.Context, signupID, code string) error
	Complete(ctx context.Context, input CompleteInput) (*domain.Account, error)
}

// SessionSlot signs accounts in and out
type SessionSlot interface {
	SignIn(ctx context.Context, account *domain.Account) (string, *domain.Session, error)
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
}

var (
	_ AccountDirectory = (*AccountService)(nil)
	_ DocumentRegistry = (*WillService)(nil)
	_ SignupWizard     = (*SignupService)(nil)
	_ SessionSlot      = (*SessionService)(nil)
)
