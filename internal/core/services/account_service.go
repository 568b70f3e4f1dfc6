package services

import (
	"context"
	"log/slog"
	"time"

	"willeasy/internal/adapters/persistence/repositories"
	"willeasy/internal/core/domain"
	"willeasy/internal/pkg/idgen"
	"willeasy/internal/pkg/metrics"
	"willeasy/internal/pkg/password"

	"github.com/pkg/errors"
)

// RegisterInput represents registration input
type RegisterInput struct {
	Username   string
	Password   string
	NationalID string
	TaxID      string
}

// AccountService is the Account Directory
type AccountService struct {
	accounts repositories.AccountRepository
	hasher   *password.Hasher
	ids      idgen.Generator
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewAccountService creates a new account service
func NewAccountService(
	accounts repositories.AccountRepository,
	hasher *password.Hasher,
	ids idgen.Generator,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		hasher:   hasher,
		ids:      ids,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Authenticate checks username and secret. Unknown usernames and wrong
// secrets both fail with domain.ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, secret string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.metrics.IncSignIn("failure")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, systemError(s.logger, "authenticate", err)
	}

	if !s.hasher.Verify(secret, account.SecretHash) {
		s.metrics.IncSignIn("failure")
		return nil, domain.ErrInvalidCredentials
	}

	s.metrics.IncSignIn("success")
	redacted := account.Redacted()
	return &redacted, nil
}

// Register adds a preparer account. Field format checks belong to the
// caller; only an empty username is rejected here.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if input.Username == "" {
		return nil, domain.NewValidationError("username", "Username is required")
	}

	// Create repeats this check under its lock
	exists, err := s.accounts.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, systemError(s.logger, "register", err)
	}
	if exists {
		return nil, domain.ErrDuplicateAccount
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, systemError(s.logger, "hash secret", err)
	}

	account := &domain.Account{
		ID:         s.ids.NewID(),
		Username:   input.Username,
		SecretHash: hash,
		Role:       domain.RolePreparer,
		NationalID: input.NationalID,
		TaxID:      input.TaxID,
		CreatedAt:  s.now(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return nil, domain.ErrDuplicateAccount
		}
		return nil, systemError(s.logger, "register", err)
	}

	s.metrics.IncAccountsRegistered()
	s.logger.Info("account registered", "account_id", account.ID, "username", account.Username)

	redacted := account.Redacted()
	return &redacted, nil
}

// GetByID returns an account without its secret
func (s *AccountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, systemError(s.logger, "get account", err)
	}
	redacted := account.Redacted()
	return &redacted, nil
}

// systemError logs an infrastructure failure and hides it behind domain.ErrSystem
func systemError(logger *slog.Logger, op string, err error) error {
	logger.Error("operation failed", "op", op, "error", err)
	return errors.WithMessage(domain.ErrSystem, op)
}
